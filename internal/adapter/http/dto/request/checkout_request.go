package request

import (
	"strings"

	"checkout_service/internal/domain/entities"
)

// PayStartQuery is the query string of GET /api/pay/start.
type PayStartQuery struct {
	Product string `form:"product"`
	Format  string `form:"format"`
}

func (q PayStartQuery) WantsJSON() bool {
	return strings.EqualFold(strings.TrimSpace(q.Format), "json")
}

// CheckoutStartRequest is posted by landing pages. Only the product
// selectors are used here; attribution fields are accepted and ignored.
type CheckoutStartRequest struct {
	Site        string `json:"site"`
	OfferID     string `json:"offer_id"`
	EventID     string `json:"event_id"`
	Product     string `json:"product"`
	ProductCode string `json:"product_code"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	PageURL     string `json:"page_url"`
}

// ResolveProduct returns the product code for the checkout, or "" to let
// the catalog fallback decide. known reports whether a code is sellable.
func (r CheckoutStartRequest) ResolveProduct(known func(string) (entities.ProductCode, bool)) string {
	for _, v := range []string{r.Product, r.ProductCode} {
		if code, ok := known(v); ok {
			return string(code)
		}
	}

	switch site := strings.ToLower(strings.TrimSpace(r.Site)); site {
	case string(entities.ProductIrem), string(entities.ProductShort):
		return site
	}

	offer := strings.ToLower(strings.TrimSpace(r.OfferID))
	switch {
	case strings.Contains(offer, "irem"):
		return string(entities.ProductIrem)
	case strings.Contains(offer, "short"), strings.Contains(offer, "reboot"):
		return string(entities.ProductShort)
	}
	return ""
}

// LeadID is the identifier the landing uses to correlate its lead with the order.
func LeadID(orderRef string) string {
	return "lead_" + orderRef
}

// OrderCreateRequest is the side-channel order creation payload.
type OrderCreateRequest struct {
	ProductCode string `json:"product_code"`
}
