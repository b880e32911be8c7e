package eligibility

import (
	"go.uber.org/fx"

	"github.com/haulware/carriergate/internal/eligibility/fmcsa"
	"github.com/haulware/carriergate/internal/eligibility/service"
)

var Module = fx.Module("eligibility.service",
	fx.Provide(fmcsa.New),
	fx.Provide(service.New),
)
