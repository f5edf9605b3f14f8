package bootstrap

import (
	"stayhub/internal/infra/gateway"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		func(cfg config.Config) config.RazorpayConfig { return cfg.Razorpay },
		fx.Annotate(
			gateway.NewRazorpayGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)
