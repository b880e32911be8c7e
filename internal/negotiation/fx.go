package negotiation

import (
	"go.uber.org/fx"

	"github.com/haulware/carriergate/internal/negotiation/service"
)

var Module = fx.Module("negotiation.service",
	fx.Provide(service.New),
)
