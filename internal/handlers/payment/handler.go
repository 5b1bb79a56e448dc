package payment

import (
	"encoding/json"
	"hotel/infras/otel"
	"hotel/internal/domains/payment/model/dto"
	"hotel/internal/domains/payment/service"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// maxWebhookBytes bounds a transfer notification body.
const maxWebhookBytes = 64 << 10

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/webhook", handler.HandleWebhook)
	})
}

// HandleWebhook receives bank transfer notifications from the payment gateway.
// The gateway retries anything but a success, so every outcome is acknowledged.
// @Summary Payment gateway webhook
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.WebhookRequest true "Transfer notification"
// @Success 200 {object} dto.WebhookAck
// @Router /v1/payments/webhook [post]
func (handler *Handler) HandleWebhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HandleWebhook")
	defer scope.End()

	ack := dto.WebhookAck{Success: true}
	req := dto.WebhookRequest{}

	body := http.MaxBytesReader(writer, request.Body, maxWebhookBytes)

	if err := json.NewDecoder(body).Decode(&req); err != nil {
		scope.TraceError(err)
		log.Info().Err(err).Msg("discarded undecodable webhook payload")

		response.WithBody(writer, http.StatusOK, ack)

		return
	}

	result, err := handler.service.HandleWebhook(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("transaction", req.ID).Msg("failed to handle webhook")

		response.WithBody(writer, http.StatusOK, ack)

		return
	}

	scope.AddEvent("Webhook handled with outcome " + string(result.Outcome))

	response.WithBody(writer, http.StatusOK, ack)
}
