package testutil

import (
	"io"

	"github.com/sirupsen/logrus"
)

func MakeNoopLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
