package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"checkout_service/internal/domain/entities"
)

var ErrMalformedBody = errors.New("malformed request body")

// ParseGatewayParams normalizes a gateway request body into GatewayParams.
//
// Accepted encodings:
//   - a JSON object
//   - application/x-www-form-urlencoded, including `key[]` arrays
//   - a form body whose single key is a JSON document, which WayForPay
//     sends for service notifications
//
// JSON numbers keep the exact text the gateway sent so that signatures
// computed over them still match.
func ParseGatewayParams(contentType string, body []byte) (entities.GatewayParams, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return entities.GatewayParams{}, nil
	}

	if strings.Contains(strings.ToLower(contentType), "json") || trimmed[0] == '{' {
		return parseJSONParams(trimmed)
	}

	values, err := url.ParseQuery(string(trimmed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(values) == 1 {
		for k, vs := range values {
			if strings.HasPrefix(strings.TrimSpace(k), "{") && (len(vs) == 0 || (len(vs) == 1 && vs[0] == "")) {
				return parseJSONParams([]byte(k))
			}
		}
	}
	return FromValues(values), nil
}

// FromValues converts query or form values, folding `key[]` into `key`.
func FromValues(values url.Values) entities.GatewayParams {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	// "name" sorts before "name[]", so a mixed form merges in a stable order.
	sort.Strings(keys)

	out := make(entities.GatewayParams, len(values))
	for _, k := range keys {
		key := strings.TrimSuffix(k, "[]")
		out[key] = append(out[key], values[k]...)
	}
	return out
}

func parseJSONParams(raw []byte) (entities.GatewayParams, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	out := make(entities.GatewayParams, len(obj))
	for k, v := range obj {
		if v == nil {
			continue
		}
		if arr, ok := v.([]any); ok {
			vals := make([]string, 0, len(arr))
			for _, el := range arr {
				vals = append(vals, scalarString(el))
			}
			out[k] = vals
			continue
		}
		out[k] = []string{scalarString(v)}
	}
	return out, nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
