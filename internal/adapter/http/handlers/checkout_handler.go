package handlers

import (
	"net/http"

	request "checkout_service/internal/adapter/http/dto/request"
	response "checkout_service/internal/adapter/http/dto/response"
	"checkout_service/internal/domain/catalog"
	"checkout_service/internal/usecase"
	"checkout_service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler starts payments: the direct pay link, the landing
// checkout and the side-channel order creation.
type CheckoutHandler struct {
	invoices usecase.IInvoiceUseCase
	catalog  *catalog.Catalog
}

func NewCheckoutHandler(uc usecase.IInvoiceUseCase, cat *catalog.Catalog) *CheckoutHandler {
	return &CheckoutHandler{invoices: uc, catalog: cat}
}

// PayStart godoc
// @Summary      Start a payment
// @Description  Creates an order and a gateway invoice, then redirects to the payment page (or returns it as JSON with format=json).
// @Tags         checkout
// @Produce      json
// @Param        product  query  string  false  "product code (short, irem)"
// @Param        lang     query  string  false  "display locale (ua, en)"
// @Param        format   query  string  false  "json to skip the redirect"
// @Success      200  {object}  response.PayStartResponse
// @Success      302
// @Failure      500  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /api/pay/start [get]
func (h *CheckoutHandler) PayStart(c *gin.Context) {
	var q request.PayStartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, errBadRequest)
		return
	}

	inv, err := h.invoices.CreateInvoice(c.Request.Context(), usecase.InvoiceRequest{
		ProductCode: q.Product,
		Locale:      request.ResolveLocale(c.Request.URL.Query(), c.Request.Header),
	})
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}

	if q.WantsJSON() {
		c.JSON(http.StatusOK, response.FromInvoice(inv))
		return
	}
	c.Redirect(http.StatusFound, inv.PayURL)
}

// CheckoutStart godoc
// @Summary      Start a landing checkout
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        payload  body  request.CheckoutStartRequest  true  "landing checkout payload"
// @Success      200  {object}  response.CheckoutStartResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /api/checkout/start [post]
func (h *CheckoutHandler) CheckoutStart(c *gin.Context) {
	var payload request.CheckoutStartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errBadRequest.WithDetails(err.Error()))
		return
	}

	ctx := c.Request.Context()
	inv, err := h.invoices.CreateInvoice(ctx, usecase.InvoiceRequest{
		ProductCode: payload.ResolveProduct(h.catalog.Normalize),
		Locale:      request.ResolveLocale(c.Request.URL.Query(), c.Request.Header),
	})
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}

	leadID := request.LeadID(inv.OrderRef)
	logger.Info(ctx, "checkout started",
		zap.String("order_ref", inv.OrderRef),
		zap.String("product", string(inv.Product.Code)),
		zap.String("lead_id", leadID),
		zap.String("site", payload.Site),
		zap.String("offer_id", payload.OfferID),
		zap.String("utm_source", payload.UTMSource),
	)
	c.JSON(http.StatusOK, response.FromCheckoutInvoice(inv, leadID))
}

// CreateOrder godoc
// @Summary      Create an order without an invoice
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        payload  body  request.OrderCreateRequest  true  "product selection"
// @Success      200  {object}  response.OrderCreateResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /api/orders/create [post]
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	var payload request.OrderCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errBadRequest.WithDetails(err.Error()))
		return
	}

	order, err := h.invoices.CreateOrder(c.Request.Context(), payload.ProductCode)
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCreatedOrder(order))
}
