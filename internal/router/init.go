package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-registration/internal/application"
	"github.com/oksasatya/go-ddd-registration/internal/container"
	"github.com/oksasatya/go-ddd-registration/internal/domain/repository"
	"github.com/oksasatya/go-ddd-registration/internal/infrastructure/gravatar"
	"github.com/oksasatya/go-ddd-registration/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/go-ddd-registration/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-registration/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-ddd-registration/internal/interface/http"
	"github.com/oksasatya/go-ddd-registration/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-registration/internal/router/modules"
	"github.com/oksasatya/go-ddd-registration/pkg/validation"
)

type AccountModuleDeps struct {
	Repo    repository.AccountRepository
	Service *application.Service
	Handler *handlers.AccountHandler
}

// AccountListeners returns the post-registration listeners enabled in the container.
func AccountListeners() []application.AccountListener {
	cfg := container.GetConfig()
	var listeners []application.AccountListener
	if es := container.GetES(); es != nil {
		listeners = append(listeners, search.NewAccountIndexer(es, cfg.ESAccountsIndex))
	}
	if pub := container.GetRabbitPub(); pub != nil {
		listeners = append(listeners, messaging.NewWelcomeNotifier(pub, cfg.CompanyName, cfg.LoginURL))
	}
	return listeners
}

// NewRegistrationService builds the registration service over repo from container singletons.
func NewRegistrationService(repo repository.AccountRepository) *application.Service {
	return application.NewService(
		repo,
		validation.New(),
		gravatar.NewResolver(),
		container.GetHasher(),
		container.GetJWT(),
		container.GetLogger(),
		AccountListeners()...,
	)
}

func buildAccountDeps() AccountModuleDeps {
	repo := pginfra.NewAccountRepository(container.GetPGPool())
	service := NewRegistrationService(repo)
	handler := handlers.NewAccountHandler(service, container.GetLogger())

	return AccountModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	accountDeps := buildAccountDeps()
	var limiter gin.HandlerFunc
	if rdb := container.GetRedis(); rdb != nil {
		limiter = middleware.RateLimit(middleware.RedisCounter{RDB: rdb}, cfg.RegisterRateLimit, cfg.RegisterRateWindow, middleware.KeyByIPAndPath(), nil, container.GetLogger())
	}
	r.Add(modules.NewAccountModule(accountDeps.Handler, limiter))

	if cfg.MetricsEnabled && container.GetMetricsRegistry() != nil {
		r.Add(modules.NewMetricsModule(container.GetMetricsRegistry()))
	}
}
