package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-ddd-registration/internal/domain/entity"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned by Create when the email uniqueness constraint rejects the insert.
	ErrDuplicateEmail = errors.New("account email already exists")
)

// AccountRepository defines the persistence operations registration needs.
// Implementations own email uniqueness; GetByEmail is only a fast-path check.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	Create(ctx context.Context, a *entity.Account) error
}
