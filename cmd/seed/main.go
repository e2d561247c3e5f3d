package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()
	if err := NewSeedCmd().Execute(); err != nil {
		logrus.WithError(err).Error("seed failed")
		os.Exit(1)
	}
}
