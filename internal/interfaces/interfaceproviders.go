package interfaces

import (
	"github.com/google/wire"

	"friendbot/companion-api/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
