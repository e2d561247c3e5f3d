package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/oksasatya/go-ddd-registration/config"
	"github.com/oksasatya/go-ddd-registration/internal/application"
	"github.com/oksasatya/go-ddd-registration/internal/container"
	"github.com/oksasatya/go-ddd-registration/internal/domain/repository"
	"github.com/oksasatya/go-ddd-registration/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-registration/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-registration/internal/router"
	"github.com/oksasatya/go-ddd-registration/pkg/helpers"
)

type seedOptions struct {
	Name     string
	Email    string
	Password string
	DryRun   bool
}

// NewSeedCmd creates the seed command.
func NewSeedCmd() *cobra.Command {
	opts := seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Register a demo account",
		Long: `Registers a demo account through the regular registration flow.
An existing account with the same email is reported and is not an error.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			return runSeed(ctx, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "Demo User", "account name")
	cmd.Flags().StringVar(&opts.Email, "email", "demo@example.com", "account email")
	cmd.Flags().StringVar(&opts.Password, "password", "password123", "account password")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "use an in-memory store instead of Postgres")
	return cmd
}

func runSeed(ctx context.Context, out io.Writer, opts seedOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL))
	container.SetHasher(helpers.NewPasswordHasher(cfg.BcryptCost))

	var repo repository.AccountRepository
	if opts.DryRun {
		repo = memory.NewAccountRepository()
	} else {
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return err
		}
		defer pool.Close()
		if cfg.RunMigrations {
			if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
				return err
			}
		}
		repo = pginfra.NewAccountRepository(pool)
	}

	svc := router.NewRegistrationService(repo)
	res, err := svc.Register(ctx, application.RegisterInput{Name: opts.Name, Email: opts.Email, Password: opts.Password})
	switch {
	case errors.Is(err, application.ErrDuplicateAccount):
		_, _ = fmt.Fprintf(out, "account already exists: email=%s\n", opts.Email)
		return nil
	case err != nil:
		return fmt.Errorf("seed account %s: %w", opts.Email, err)
	}
	_, _ = fmt.Fprintf(out, "seeded account: email=%s expires_at=%s token=%s\n", opts.Email, res.ExpiresAt.Format(time.RFC3339), res.Token)
	return nil
}
