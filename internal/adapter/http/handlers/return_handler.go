package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	request "checkout_service/internal/adapter/http/dto/request"
	"checkout_service/internal/adapter/http/views"
	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase"
	"checkout_service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReturnHandler struct {
	returns usecase.IReturnUseCase
}

func NewReturnHandler(uc usecase.IReturnUseCase) *ReturnHandler {
	return &ReturnHandler{returns: uc}
}

// Handle godoc
// @Summary      Browser return from the payment page
// @Description  Redirects to the product's approved/declined page once the order is settled, otherwise renders a self-refreshing processing page.
// @Tags         checkout
// @Produce      html
// @Param        order_ref  query  string  false  "order reference"
// @Param        product    query  string  false  "product code"
// @Success      200  "processing page"
// @Success      303  "redirect to the outcome page"
// @Failure      400  "error page"
// @Router       /pay/return [get]
// @Router       /pay/return [post]
func (h *ReturnHandler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	query := request.FromValues(c.Request.URL.Query())
	body := entities.GatewayParams{}
	if c.Request.Method == http.MethodPost && c.Request.Body != nil {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxGatewayBodyBytes))
		if err == nil {
			if parsed, perr := request.ParseGatewayParams(c.ContentType(), raw); perr == nil {
				body = parsed
			} else {
				logger.Warn(ctx, "return body ignored", zap.Error(perr))
			}
		}
	}

	decision, err := h.returns.ResolveReturn(ctx, query, body)
	if err != nil {
		if errors.Is(err, usecase.ErrReturnMissingOrderRef) {
			renderHTML(c, http.StatusBadRequest, func(w io.Writer) error {
				return views.RenderError(w, views.ErrorPage{
					Title:   "Замовлення не знайдено / Order not found",
					Message: "Посилання не містить номера замовлення. The link does not contain an order reference.",
				})
			})
			return
		}
		logger.Error(ctx, "return resolution failed", err)
		renderHTML(c, http.StatusInternalServerError, func(w io.Writer) error {
			return views.RenderError(w, views.ErrorPage{Title: "Помилка / Error", Message: "Please try again later."})
		})
		return
	}

	if decision.Action == usecase.ReturnRedirect {
		c.Redirect(http.StatusSeeOther, decision.RedirectURL)
		return
	}

	c.Header("Cache-Control", "no-store")
	renderHTML(c, http.StatusOK, func(w io.Writer) error {
		return views.RenderProcessing(w, views.ProcessingPage{
			OrderRef:     decision.OrderRef,
			RefreshURL:   decision.RefreshURL,
			RefreshAfter: decision.RefreshAfter,
		})
	})
}

func renderHTML(c *gin.Context, status int, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logger.Error(c.Request.Context(), "failed to render page", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
