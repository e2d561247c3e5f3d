package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-registration/internal/domain/entity"
	"github.com/oksasatya/go-ddd-registration/internal/domain/repository"
)

// AccountRepository is an in-process account store. Emails are unique
// case-insensitively, matching the Postgres lower(email) index.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]entity.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]entity.Account)}
}

func emailKey(email string) string {
	return strings.ToLower(email)
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[emailKey(email)]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return &a, nil
}

func (r *AccountRepository) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(a.Email)
	if _, exists := r.accounts[key]; exists {
		return repository.ErrDuplicateEmail
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	r.accounts[key] = *a
	return nil
}

// Len reports the number of stored accounts.
func (r *AccountRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
