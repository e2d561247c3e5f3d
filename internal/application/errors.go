package application

import (
	"errors"
	"strings"

	"github.com/oksasatya/go-ddd-registration/pkg/validation"
)

// Client faults carry enough detail for the caller to correct the request.
// Server faults are logged here and must be reported to callers without detail.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrDuplicateAccount = errors.New("user already exists")

	ErrCredentialFault = errors.New("credential fault")
	ErrSigningFault    = errors.New("signing fault")
)

// ValidationError lists every violated input rule. errors.Is(err, ErrValidationFailed) holds.
type ValidationError struct {
	Violations []validation.Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// IsServerFault reports whether err is an internal failure rather than a client mistake.
func IsServerFault(err error) bool {
	return errors.Is(err, ErrCredentialFault) || errors.Is(err, ErrSigningFault)
}
