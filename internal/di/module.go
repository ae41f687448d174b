package di

import (
	"github.com/marukota/curiomart/internal/adapter/paypay"
	"github.com/marukota/curiomart/internal/app"
	"github.com/marukota/curiomart/internal/config"
	"github.com/marukota/curiomart/internal/logger"
	"github.com/marukota/curiomart/internal/pkg/auth"
	"github.com/marukota/curiomart/internal/server/http/handlers"
	"github.com/marukota/curiomart/internal/server/http/router"
	"github.com/marukota/curiomart/internal/storage/postgres"
	"github.com/marukota/curiomart/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		paypay.Module,
		usecase.Module,
		fx.Provide(func(facade *app.StorefrontFacade) handlers.StorefrontFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
