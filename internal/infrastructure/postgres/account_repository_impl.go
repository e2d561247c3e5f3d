package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-ddd-registration/internal/domain/entity"
	"github.com/oksasatya/go-ddd-registration/internal/domain/repository"
)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a := &entity.Account{}

	row := r.db.QueryRow(ctx, `
		SELECT id::text, name, email, avatar_url, password_hash, created_at
		FROM accounts
		WHERE lower(email) = lower($1)
	`, email)

	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.AvatarURL, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return a, nil
}

// Create inserts the account and fills in the store-assigned ID and CreatedAt.
func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO accounts (name, email, avatar_url, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at
	`, a.Name, a.Email, a.AvatarURL, a.PasswordHash)

	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
