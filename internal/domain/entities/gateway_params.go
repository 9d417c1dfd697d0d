package entities

import "strings"

// GatewayParams is a gateway request (webhook or browser return) normalized
// into one string-keyed mapping, whatever its wire encoding was.
//
// Scalars hold one value. JSON arrays (productName, productCount, ...) keep
// every element, in order.
type GatewayParams map[string][]string

// Get returns the first value of key, or "".
func (p GatewayParams) Get(key string) string {
	if vs := p[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// List returns every value of key.
func (p GatewayParams) List(key string) []string {
	return p[key]
}

func (p GatewayParams) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// First returns the first non-blank value among keys, trimmed.
func (p GatewayParams) First(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(p.Get(k)); v != "" {
			return v
		}
	}
	return ""
}
