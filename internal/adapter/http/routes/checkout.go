package routes

import (
	"net/http"

	"checkout_service/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayStart      = "/pay/start"
	PathCheckoutStart = "/checkout/start"
	PathOrdersCreate  = "/orders/create"
	PathWayForPayHook = "/wfp/webhook"
	PathPayReturn     = "/pay/return"
	PathOrderByRef    = "/orders/:order_ref"
	PathPing          = "/ping"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "pong"})
	})
}

func addCheckoutRoutes(rg *gin.RouterGroup, h *handlers.CheckoutHandler, cors, limit gin.HandlerFunc) {
	rg.GET(PathPayStart, limit, h.PayStart)

	// Called cross-origin from landing pages.
	public := rg.Group("", cors)
	{
		public.OPTIONS(PathCheckoutStart, noContent)
		public.POST(PathCheckoutStart, limit, h.CheckoutStart)
		public.OPTIONS(PathOrdersCreate, noContent)
		public.POST(PathOrdersCreate, limit, h.CreateOrder)
	}
}

func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.WebhookHandler) {
	rg.POST(PathWayForPayHook, h.Handle)
}

func addReturnRoutes(router *gin.Engine, h *handlers.ReturnHandler) {
	router.GET(PathPayReturn, h.Handle)
	router.POST(PathPayReturn, h.Handle)
}

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	rg.GET(PathOrderByRef, h.GetOrder)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
