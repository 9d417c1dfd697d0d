package handlers

import (
	"errors"
	"net/http"

	"checkout_service/internal/adapter/http/dto/response"
	"checkout_service/internal/usecase"
	"checkout_service/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errBadRequest = pkg.NewDomainErrorSimple("BAD_REQUEST", "Invalid request", http.StatusBadRequest)
	errInternal   = pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapInvoiceError(err error) *pkg.AppError {
	var invErr *usecase.InvoiceError
	details := func() any {
		if errors.As(err, &invErr) {
			return response.InvoiceErrorDetails{OrderRef: invErr.OrderRef, Raw: invErr.Raw}
		}
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrConfigMissing):
		return pkg.NewDomainError("CONFIG_MISSING", "Payment configuration is incomplete", err, http.StatusInternalServerError).WithDetails(err.Error())
	case errors.Is(err, usecase.ErrOrderInsertFailed):
		return pkg.NewDomainError("DB_WRITE_FAILED", "Order could not be stored", err, http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrGatewayNoURL):
		return pkg.NewDomainError("GATEWAY_NO_URL", "Payment gateway returned no payment URL", err, http.StatusBadGateway).WithDetails(details())
	case errors.Is(err, usecase.ErrGatewayUnreachable):
		return pkg.NewDomainError("GATEWAY_UNREACHABLE", "Payment gateway is unreachable", err, http.StatusBadGateway).WithDetails(details())
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrWebhookBadRequest):
		return pkg.NewDomainError("BAD_REQUEST", "orderReference is required", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrConfigMissing):
		return pkg.NewDomainError("CONFIG_MISSING", "Payment configuration is incomplete", err, http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrSignatureMismatch):
		return pkg.NewDomainError("BAD_SIGNATURE", "Signature verification failed", err, http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrOrderStatusWriteFailed):
		return pkg.NewDomainError("DB_WRITE_FAILED", "Order status could not be stored", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderRef):
		return pkg.NewDomainError("BAD_REQUEST", "Invalid order_ref", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainError("ORDER_NOT_FOUND", "Order not found", err, http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
