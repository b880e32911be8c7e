package calllog

import (
	"go.uber.org/fx"

	"github.com/haulware/carriergate/internal/calllog/service"
)

var Module = fx.Module("calllog.service",
	fx.Provide(service.New),
)
