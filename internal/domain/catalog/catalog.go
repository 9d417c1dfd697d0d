package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"checkout_service/internal/domain/entities"
)

// maxGatewayNameLen is the longest productName the gateway accepts.
const maxGatewayNameLen = 255

var ErrUnknownFallbackProduct = errors.New("fallback product is not in the catalog")

// Locale is a display language for product copy.
type Locale string

const (
	LocaleUA Locale = "ua"
	LocaleEN Locale = "en"
)

type Copy struct {
	Heading     string
	Description string
}

// Product is the static configuration of one sellable product.
type Product struct {
	Code        entities.ProductCode
	Title       string
	Amount      float64
	Currency    string
	ApprovedURL string
	DeclinedURL string
	Copy        map[Locale]Copy
}

// Catalog is an immutable product lookup table with a fallback product for
// codes it does not know.
type Catalog struct {
	products map[entities.ProductCode]Product
	fallback entities.ProductCode
}

func New(products []Product, fallback entities.ProductCode) (*Catalog, error) {
	m := make(map[entities.ProductCode]Product, len(products))
	for _, p := range products {
		m[p.Code] = p
	}
	if _, ok := m[fallback]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFallbackProduct, fallback)
	}
	return &Catalog{products: m, fallback: fallback}, nil
}

// Normalize trims and lowercases s and reports whether it names a product.
func (c *Catalog) Normalize(s string) (entities.ProductCode, bool) {
	code := entities.ProductCode(strings.ToLower(strings.TrimSpace(s)))
	_, ok := c.products[code]
	return code, ok
}

func (c *Catalog) Lookup(code string) (Product, bool) {
	normalized, ok := c.Normalize(code)
	if !ok {
		return Product{}, false
	}
	return c.products[normalized], true
}

// Resolve never fails: unknown codes resolve to the fallback product.
func (c *Catalog) Resolve(code string) Product {
	if p, ok := c.Lookup(code); ok {
		return p
	}
	return c.Fallback()
}

func (c *Catalog) Fallback() Product {
	return c.products[c.fallback]
}

// FromOrderRef reads the product from the "{code}_" prefix of an order reference.
func (c *Catalog) FromOrderRef(orderRef string) (Product, bool) {
	prefix, _, found := strings.Cut(strings.TrimSpace(orderRef), "_")
	if !found {
		return Product{}, false
	}
	return c.Lookup(prefix)
}

func (c *Catalog) Codes() []entities.ProductCode {
	out := make([]entities.ProductCode, 0, len(c.products))
	for code := range c.products {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Destination returns the post-payment page for the outcome.
func (p Product) Destination(paid bool) string {
	if paid {
		return p.ApprovedURL
	}
	return p.DeclinedURL
}

// CopyFor returns the copy for the locale, falling back to English and then Title.
func (p Product) CopyFor(locale Locale) Copy {
	if c, ok := p.Copy[locale]; ok {
		return c
	}
	if c, ok := p.Copy[LocaleEN]; ok {
		return c
	}
	return Copy{Heading: p.Title}
}

// GatewayName is the productName sent to the gateway: "heading — description",
// sanitized and bounded.
func (p Product) GatewayName(locale Locale) string {
	c := p.CopyFor(locale)
	if strings.TrimSpace(c.Description) == "" {
		return SanitizeGatewayName(c.Heading)
	}
	return SanitizeGatewayName(c.Heading + " — " + c.Description)
}

var (
	brTag      = regexp.MustCompile(`(?i)<br\s*/?>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// SanitizeGatewayName drops <br> tags, collapses whitespace and truncates to
// 255 characters (252 + "...").
func SanitizeGatewayName(s string) string {
	s = brTag.ReplaceAllString(s, " ")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	if utf8.RuneCountInString(s) <= maxGatewayNameLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxGatewayNameLen-3]) + "..."
}

// NormalizeLocale maps a language tag (ua, uk-UA, en-US, ...) to a Locale.
func NormalizeLocale(tag string) (Locale, bool) {
	t := strings.ToLower(strings.TrimSpace(tag))
	t = strings.ReplaceAll(t, "_", "-")
	if t == "" {
		return "", false
	}
	lang, region, _ := strings.Cut(t, "-")
	switch {
	case lang == "ua" || lang == "uk":
		return LocaleUA, true
	case lang == "ru" && region == "ua":
		return LocaleUA, true
	case lang == "en":
		return LocaleEN, true
	}
	return "", false
}
