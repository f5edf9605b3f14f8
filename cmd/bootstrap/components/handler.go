package components

import (
	"stayhub/internal/handler"
	"stayhub/internal/handler/api"
	"stayhub/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewHotelHandler,
		api.NewRoomHandler,
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	hotel *api.HotelHandler,
	room *api.RoomHandler,
	booking *api.BookingHandler,
	payment *api.PaymentHandler,
	webhook *api.WebhookHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:    auth,
		Hotel:   hotel,
		Room:    room,
		Booking: booking,
		Payment: payment,
		Webhook: webhook,
	}
}
