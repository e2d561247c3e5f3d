package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-registration/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-registration/internal/domain/repository"
	"github.com/oksasatya/go-ddd-registration/internal/infrastructure/gravatar"
	"github.com/oksasatya/go-ddd-registration/internal/metrics"
	"github.com/oksasatya/go-ddd-registration/pkg/validation"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type TokenIssuer interface {
	Issue(accountID string) (string, time.Time, error)
}

// AvatarResolver maps an email to a fully-qualified image URL.
type AvatarResolver interface {
	Resolve(ctx context.Context, email string) (string, error)
}

// AccountListener is notified once an account has been persisted and its token
// issued. Listener failures are logged and never fail the registration.
type AccountListener interface {
	AccountRegistered(ctx context.Context, a entity.Account) error
}

const defaultListenerTimeout = 3 * time.Second

type Service struct {
	Repo      repo.AccountRepository
	Validator *validation.Validator
	Avatars   AvatarResolver
	Hasher    PasswordHasher
	Tokens    TokenIssuer
	Logger    *logrus.Logger
	Listeners []AccountListener

	ListenerTimeout time.Duration
}

func NewService(repo repo.AccountRepository, validator *validation.Validator, avatars AvatarResolver, hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger, listeners ...AccountListener) *Service {
	return &Service{
		Repo:            repo,
		Validator:       validator,
		Avatars:         avatars,
		Hasher:          hasher,
		Tokens:          tokens,
		Logger:          logger,
		Listeners:       listeners,
		ListenerTimeout: defaultListenerTimeout,
	}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"min=6,pwdbytes,nothashprefix"`
}

type RegisterResult struct {
	Token     string
	ExpiresAt time.Time
}

// Register validates the input, creates the account and issues its access token.
// Steps run strictly in order and nothing is retried.
func (s *Service) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	res, err := s.register(ctx, in)
	metrics.RecordRegistration(outcomeOf(err))
	return res, err
}

func (s *Service) register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	if violations := s.Validator.Struct(in); len(violations) > 0 {
		return RegisterResult{}, &ValidationError{Violations: violations}
	}

	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		s.Logger.WithField("email", in.Email).Info("registration rejected: account exists")
		return RegisterResult{}, ErrDuplicateAccount
	case err != nil && !errors.Is(err, repo.ErrAccountNotFound):
		s.Logger.WithError(err).WithField("email", in.Email).Error("account lookup failed")
		return RegisterResult{}, fmt.Errorf("%w: lookup account: %w", ErrCredentialFault, err)
	}

	avatarURL := s.resolveAvatar(ctx, in.Email)

	start := time.Now()
	hash, err := s.Hasher.Hash(in.Password)
	metrics.RecordPasswordHash(time.Since(start))
	if err != nil {
		s.Logger.WithError(err).WithField("email", in.Email).Error("password hashing failed")
		return RegisterResult{}, fmt.Errorf("%w: hash password: %w", ErrCredentialFault, err)
	}

	acc := &entity.Account{
		Name:         in.Name,
		Email:        in.Email,
		AvatarURL:    avatarURL,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, acc); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			s.Logger.WithField("email", in.Email).Info("registration rejected: email taken concurrently")
			return RegisterResult{}, ErrDuplicateAccount
		}
		s.Logger.WithError(err).WithField("email", in.Email).Error("create account failed")
		return RegisterResult{}, fmt.Errorf("%w: create account: %w", ErrCredentialFault, err)
	}

	token, exp, err := s.Tokens.Issue(acc.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("issue token failed")
		return RegisterResult{}, fmt.Errorf("%w: %w", ErrSigningFault, err)
	}

	s.notify(ctx, *acc)

	s.Logger.WithFields(logrus.Fields{"account_id": acc.ID, "email": acc.Email}).Info("account registered")
	return RegisterResult{Token: token, ExpiresAt: exp}, nil
}

func (s *Service) resolveAvatar(ctx context.Context, email string) string {
	if s.Avatars == nil {
		return gravatar.DefaultURL
	}
	u, err := s.Avatars.Resolve(ctx, email)
	if err != nil || u == "" {
		s.Logger.WithError(err).WithField("email", email).Warn("avatar resolution failed, using default")
		return gravatar.DefaultURL
	}
	return u
}

func (s *Service) notify(ctx context.Context, a entity.Account) {
	timeout := s.ListenerTimeout
	if timeout <= 0 {
		timeout = defaultListenerTimeout
	}
	for _, l := range s.Listeners {
		lctx, cancel := context.WithTimeout(ctx, timeout)
		if err := l.AccountRegistered(lctx, a); err != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Warn("account listener failed")
		}
		cancel()
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrValidationFailed):
		return metrics.OutcomeValidation
	case errors.Is(err, ErrDuplicateAccount):
		return metrics.OutcomeDuplicate
	case errors.Is(err, ErrSigningFault):
		return metrics.OutcomeSigningFault
	default:
		return metrics.OutcomeCredentialFault
	}
}
