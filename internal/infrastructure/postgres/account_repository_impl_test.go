package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-registration/internal/domain/entity"
	"github.com/oksasatya/go-ddd-registration/internal/domain/repository"
)

var accountColumns = []string{"id", "name", "email", "avatar_url", "password_hash", "created_at"}

func TestAccountRepository_GetByEmail(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      *entity.Account
		wantErr   error
		errMsg    string
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(accountColumns).
					AddRow("0b6f7a4e-0000-4000-8000-000000000001", "Ada", "ada@example.com", "https://www.gravatar.com/avatar/x", "$2a$10$hash", createdAt)
				mock.ExpectQuery(`SELECT (.+) FROM accounts`).
					WithArgs("ada@example.com").
					WillReturnRows(rows)
			},
			want: &entity.Account{
				ID:           "0b6f7a4e-0000-4000-8000-000000000001",
				Name:         "Ada",
				Email:        "ada@example.com",
				AvatarURL:    "https://www.gravatar.com/avatar/x",
				PasswordHash: "$2a$10$hash",
				CreatedAt:    createdAt,
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM accounts`).
					WithArgs("ada@example.com").
					WillReturnRows(pgxmock.NewRows(accountColumns))
			},
			wantErr: repository.ErrAccountNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM accounts`).
					WithArgs("ada@example.com").
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewAccountRepository(mock)
			got, err := repo.GetByEmail(context.Background(), "ada@example.com")

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.NotErrorIs(t, err, repository.ErrAccountNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestAccountRepository_Create(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO accounts`).
					WithArgs("Ada", "ada@example.com", "https://avatar", "$2a$10$hash").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("acc-1", createdAt))
			},
		},
		{
			name: "unique violation maps to duplicate email",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO accounts`).
					WithArgs("Ada", "ada@example.com", "https://avatar", "$2a$10$hash").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_email_lower_key"})
			},
			wantErr: repository.ErrDuplicateEmail,
		},
		{
			name: "other constraint error is not a duplicate",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO accounts`).
					WithArgs("Ada", "ada@example.com", "https://avatar", "$2a$10$hash").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.CheckViolation})
			},
			errMsg: "failed to create account",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewAccountRepository(mock)
			acc := &entity.Account{Name: "Ada", Email: "ada@example.com", AvatarURL: "https://avatar", PasswordHash: "$2a$10$hash"}
			err = repo.Create(context.Background(), acc)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, acc.ID)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.NotErrorIs(t, err, repository.ErrDuplicateEmail)
			default:
				require.NoError(t, err)
				assert.Equal(t, "acc-1", acc.ID)
				assert.Equal(t, createdAt, acc.CreatedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}
