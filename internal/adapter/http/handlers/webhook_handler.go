package handlers

import (
	"errors"
	"io"
	"net/http"

	request "checkout_service/internal/adapter/http/dto/request"
	"checkout_service/internal/usecase"
	"checkout_service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxGatewayBodyBytes = 1 << 20

type WebhookHandler struct {
	webhooks usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{webhooks: uc}
}

// Handle godoc
// @Summary      WayForPay service notification
// @Description  Verifies the notification signature, records it and settles the order. Answers with the signed acknowledgement the gateway expects.
// @Tags         webhooks
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Success      200  {object}  usecase.WebhookAck
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /api/wfp/webhook [post]
func (h *WebhookHandler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxGatewayBodyBytes))
	if err != nil {
		writeError(c, errBadRequest)
		return
	}
	params, err := request.ParseGatewayParams(c.ContentType(), raw)
	if err != nil {
		logger.Warn(ctx, "webhook body rejected", zap.Error(err), zap.Int("body_len", len(raw)))
		writeError(c, errBadRequest.WithDetails(err.Error()))
		return
	}

	result, err := h.webhooks.Reconcile(ctx, params, raw)
	if err != nil {
		if errors.Is(err, usecase.ErrAuditWriteFailed) {
			// The order state is settled; the gateway must not redeliver.
			logger.Error(ctx, "webhook acknowledged without payment record", err, zap.String("order_ref", result.OrderRef))
			c.JSON(http.StatusOK, result.Ack)
			return
		}
		writeError(c, mapWebhookError(err))
		return
	}
	c.JSON(http.StatusOK, result.Ack)
}
