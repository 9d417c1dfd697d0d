package request

import (
	"net/http"
	"net/url"
	"strings"

	"checkout_service/internal/domain/catalog"
)

// countryHeaders are the geo headers set by common CDNs and load balancers.
var countryHeaders = []string{
	"X-Vercel-IP-Country",
	"CF-IPCountry",
	"X-Country",
	"X-Geo-Country",
	"Fastly-Client-Country",
	"X-AppEngine-Country",
}

// ResolveLocale picks the display locale: an explicit lang/locale/language
// parameter, then a Ukrainian country header, then Accept-Language, then en.
func ResolveLocale(query url.Values, header http.Header) catalog.Locale {
	for _, key := range []string{"lang", "locale", "language"} {
		if v := query.Get(key); v != "" {
			if loc, ok := catalog.NormalizeLocale(v); ok {
				return loc
			}
			break
		}
	}

	if country := countryFromHeaders(header); country == "UA" {
		return catalog.LocaleUA
	}

	for _, part := range strings.Split(header.Get("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if loc, ok := catalog.NormalizeLocale(tag); ok {
			return loc
		}
	}
	return catalog.LocaleEN
}

func countryFromHeaders(header http.Header) string {
	for _, name := range countryHeaders {
		if v := strings.TrimSpace(header.Get(name)); v != "" {
			return strings.ToUpper(v)
		}
	}
	return ""
}
