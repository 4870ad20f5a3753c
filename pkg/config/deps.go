package config

import (
	"log/slog"

	"github.com/amirasaad/atm/pkg/cache"
	"github.com/amirasaad/atm/pkg/eventbus"
	"github.com/amirasaad/atm/pkg/repository"
)

// Deps holds all infrastructure dependencies for building the app and services.
type Deps struct {
	Uow       repository.UnitOfWork
	RateTable cache.RateTable
	EventBus  eventbus.Bus
	Logger    *slog.Logger
	Config    *App
}
