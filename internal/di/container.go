// Package di provides dependency injection configuration for the Mealdex server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/simonrowe/mealdex-server/internal/auth"
	"github.com/simonrowe/mealdex-server/internal/config"
	"github.com/simonrowe/mealdex-server/internal/di/providers"
	"github.com/simonrowe/mealdex-server/internal/logger"
	"github.com/simonrowe/mealdex-server/internal/service"
	"github.com/simonrowe/mealdex-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideValidator)

	// Business services
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideIngredientService)
	do.Provide(injector, providers.ProvideRecipeService)

	// Workers
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of every provider in dependency order.
func Bootstrap(injector *do.RootScope) error {
	invocations := []func() error{
		func() error { _, err := do.Invoke[*config.Config](injector); return err },
		func() error { _, err := do.Invoke[*logger.Logger](injector); return err },
		func() error { _, err := do.Invoke[providers.AuthKey](injector); return err },
		func() error { _, err := do.Invoke[*providers.StoreHandle](injector); return err },
		func() error { _, err := do.Invoke[*auth.TokenService](injector); return err },
		func() error { _, err := do.Invoke[*validation.Validator](injector); return err },
		func() error { _, err := do.Invoke[*service.SessionService](injector); return err },
		func() error { _, err := do.Invoke[*service.AuthService](injector); return err },
		func() error { _, err := do.Invoke[*service.TagService](injector); return err },
		func() error { _, err := do.Invoke[*service.IngredientService](injector); return err },
		func() error { _, err := do.Invoke[*service.RecipeService](injector); return err },
		func() error { _, err := do.Invoke[*providers.SessionCleanupJob](injector); return err },
		func() error { _, err := do.Invoke[*providers.HTTPServerHandle](injector); return err },
	}

	for _, invoke := range invocations {
		if err := invoke(); err != nil {
			return err
		}
	}
	return nil
}
