package usecase

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"checkout_service/internal/domain/catalog"
	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"
	"checkout_service/pkg/logger"

	"go.uber.org/zap"
)

var ErrReturnMissingOrderRef = errors.New("return redirect without order_ref")

const defaultReturnRefresh = 3 * time.Second

var (
	returnOrderRefKeys = []string{"order_ref", "orderReference", "ORDERREFERENCE", "orderreference"}
	returnProductKeys  = []string{"product", "PRODUCT", "product_code", "productCode"}
)

type ReturnAction int

const (
	// ReturnProcessing renders a page that polls the same return URL.
	ReturnProcessing ReturnAction = iota
	// ReturnRedirect sends the browser to the product's outcome page.
	ReturnRedirect
)

type ReturnDecision struct {
	Action       ReturnAction
	OrderRef     string
	Product      catalog.Product
	Status       entities.OrderStatus
	RedirectURL  string
	RefreshURL   string
	RefreshAfter time.Duration
}

// IReturnUseCase decides where a browser coming back from the gateway goes.
// It never writes and never trusts the redirect's own status parameters.
type IReturnUseCase interface {
	ResolveReturn(ctx context.Context, query, body entities.GatewayParams) (ReturnDecision, error)
}

type ReturnUseCase struct {
	orders       interfaces.IOrderRepository
	catalog      *catalog.Catalog
	refreshAfter time.Duration
	now          func() time.Time
}

var _ IReturnUseCase = (*ReturnUseCase)(nil)

type ReturnOption func(*ReturnUseCase)

func WithReturnClock(now func() time.Time) ReturnOption {
	return func(u *ReturnUseCase) { u.now = now }
}

func WithRefreshAfter(d time.Duration) ReturnOption {
	return func(u *ReturnUseCase) {
		if d > 0 {
			u.refreshAfter = d
		}
	}
}

func NewReturnUseCase(orders interfaces.IOrderRepository, cat *catalog.Catalog, opts ...ReturnOption) *ReturnUseCase {
	u := &ReturnUseCase{
		orders:       orders,
		catalog:      cat,
		refreshAfter: defaultReturnRefresh,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *ReturnUseCase) ResolveReturn(ctx context.Context, query, body entities.GatewayParams) (ReturnDecision, error) {
	orderRef := firstOf(returnOrderRefKeys, query, body)
	if orderRef == "" {
		logger.Warn(ctx, "return without order_ref")
		return ReturnDecision{}, ErrReturnMissingOrderRef
	}
	productParam := firstOf(returnProductKeys, query, body)

	order, err := u.orders.GetByRef(ctx, orderRef)
	if err != nil {
		logger.Error(ctx, "return order lookup failed, rendering processing", err, zap.String("order_ref", orderRef))
		order = entities.Order{}
	}

	product := u.resolveProduct(order, orderRef, productParam)
	decision := ReturnDecision{
		OrderRef:     orderRef,
		Product:      product,
		Status:       order.Status,
		RefreshAfter: u.refreshAfter,
	}

	if order.OrderRef == "" || !order.Status.IsTerminal() {
		decision.Action = ReturnProcessing
		decision.RefreshURL = processingRefreshURL(orderRef, product.Code)
		logger.Info(ctx, "return before terminal status",
			zap.String("order_ref", orderRef),
			zap.String("product", string(product.Code)),
			zap.String("status", string(order.Status)),
		)
		return decision, nil
	}

	decision.Action = ReturnRedirect
	decision.RedirectURL = u.destinationURL(product, order)
	logger.Info(ctx, "return resolved",
		zap.String("order_ref", orderRef),
		zap.String("product", string(product.Code)),
		zap.String("status", string(order.Status)),
	)
	return decision, nil
}

// resolveProduct prefers the stored order, then the order_ref prefix, then a
// known product parameter.
func (u *ReturnUseCase) resolveProduct(order entities.Order, orderRef, productParam string) catalog.Product {
	if order.ProductCode != "" {
		if p, ok := u.catalog.Lookup(string(order.ProductCode)); ok {
			return p
		}
	}
	if p, ok := u.catalog.FromOrderRef(orderRef); ok {
		return p
	}
	if p, ok := u.catalog.Lookup(productParam); ok {
		return p
	}
	return u.catalog.Fallback()
}

func (u *ReturnUseCase) destinationURL(product catalog.Product, order entities.Order) string {
	dest := product.Destination(order.Status == entities.OrderStatusPaid)
	extra := map[string]string{
		"order_ref": order.OrderRef,
		"product":   string(product.Code),
		"amount":    strconv.FormatFloat(order.Amount, 'f', -1, 64),
		"currency":  order.Currency,
		"ts":        strconv.FormatInt(u.now().UnixMilli(), 10),
	}

	parsed, err := url.Parse(dest)
	if err != nil {
		q := url.Values{}
		for k, v := range extra {
			q.Set(k, v)
		}
		return dest + "?" + q.Encode()
	}
	q := parsed.Query()
	for k, v := range extra {
		q.Set(k, v)
	}
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

func processingRefreshURL(orderRef string, product entities.ProductCode) string {
	q := url.Values{}
	q.Set("order_ref", orderRef)
	q.Set("product", string(product))
	return returnPath + "?" + q.Encode()
}

// firstOf looks keys up source by source, so any query key beats any body key.
func firstOf(keys []string, sources ...entities.GatewayParams) string {
	for _, src := range sources {
		if v := src.First(keys...); v != "" {
			return v
		}
	}
	return ""
}
