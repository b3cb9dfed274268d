//go:build wireinject

package main

import (
	"github.com/google/wire"

	"friendbot/companion-api/internal/domain"
	"friendbot/companion-api/internal/domain/chat"
	"friendbot/companion-api/internal/domain/tokenusage"
	"friendbot/companion-api/internal/infrastructure"
	"friendbot/companion-api/internal/infrastructure/database/transaction"
	"friendbot/companion-api/internal/interfaces"
	"friendbot/companion-api/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Bind(new(chat.UsageRecorder), new(*tokenusage.Service)),
		wire.Bind(new(chat.TxRunner), new(*transaction.Database)),
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
