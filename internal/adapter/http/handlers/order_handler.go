package handlers

import (
	"net/http"

	response "checkout_service/internal/adapter/http/dto/response"
	"checkout_service/internal/usecase"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{orders: uc}
}

// GetOrder godoc
// @Summary      Get an order with its payment records
// @Tags         orders
// @Produce      json
// @Param        order_ref  path  string  true  "order reference"
// @Success      200  {object}  response.OrderDetailsResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /v1/orders/{order_ref} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	details, err := h.orders.GetByRef(c.Request.Context(), c.Param("order_ref"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrderDetails(details))
}
