package loadboard

import (
	"github.com/haulware/carriergate/internal/loadboard/catalog"
	"github.com/haulware/carriergate/internal/loadboard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("loadboard.service",
	fx.Provide(catalog.New),
	fx.Provide(service.New),
)
