package catalog

import "checkout_service/internal/domain/entities"

// DefaultProducts is the product table served by both landing brands.
func DefaultProducts() []Product {
	return []Product{
		{
			Code:        entities.ProductShort,
			Title:       "Short Reboot",
			Amount:      359,
			Currency:    "UAH",
			ApprovedURL: "https://reboot.centerway.net.ua/thanks",
			DeclinedURL: "https://reboot.centerway.net.ua/pay-failed",
			Copy: map[Locale]Copy{
				LocaleUA: {
					Heading:     "Short Reboot: перезавантаження за 7 днів",
					Description: "Короткий курс щоденних практик для відновлення енергії та фокусу",
				},
				LocaleEN: {
					Heading:     "Short Reboot: a 7-day reset",
					Description: "A short course of daily practices to restore energy and focus",
				},
			},
		},
		{
			Code:        entities.ProductIrem,
			Title:       "IREM",
			Amount:      4100,
			Currency:    "UAH",
			ApprovedURL: "https://irem.centerway.net.ua/thanks",
			DeclinedURL: "https://irem.centerway.net.ua/pay-failed",
			Copy: map[Locale]Copy{
				LocaleUA: {
					Heading:     "IREM: гімнастика для спини та суглобів",
					Description: "Онлайн-програма вправ з супроводом у Telegram-боті",
				},
				LocaleEN: {
					Heading:     "IREM: gymnastics for back and joints",
					Description: "Online exercise programme with a Telegram bot companion",
				},
			},
		},
	}
}

// URLOverrides replaces destination URLs per product; empty values are ignored.
type URLOverrides map[entities.ProductCode]struct {
	ApprovedURL string
	DeclinedURL string
}

func ApplyURLOverrides(products []Product, overrides URLOverrides) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	for i := range out {
		o, ok := overrides[out[i].Code]
		if !ok {
			continue
		}
		if o.ApprovedURL != "" {
			out[i].ApprovedURL = o.ApprovedURL
		}
		if o.DeclinedURL != "" {
			out[i].DeclinedURL = o.DeclinedURL
		}
	}
	return out
}
