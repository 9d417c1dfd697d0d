package entities

import "strings"

// PaymentOutcome is the coarse meaning of a provider status.
type PaymentOutcome int

const (
	// OutcomeNone means the notification does not move the order.
	OutcomeNone PaymentOutcome = iota
	OutcomePaid
	OutcomeFailed
)

func (o PaymentOutcome) String() string {
	switch o {
	case OutcomePaid:
		return "paid"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}

// OrderStatus returns the terminal order status for the outcome, if any.
func (o PaymentOutcome) OrderStatus() (OrderStatus, bool) {
	switch o {
	case OutcomePaid:
		return OrderStatusPaid, true
	case OutcomeFailed:
		return OrderStatusFailed, true
	default:
		return "", false
	}
}

// providerStatusOutcomes is the single place provider vocabulary is mapped.
// Keys are lowercase. Anything missing is OutcomeNone.
var providerStatusOutcomes = map[string]PaymentOutcome{
	"approved": OutcomePaid,
	"success":  OutcomePaid,
	"paid":     OutcomePaid,

	"declined": OutcomeFailed,
	"expired":  OutcomeFailed,
	"failed":   OutcomeFailed,
	"void":     OutcomeFailed,
	"refunded": OutcomeFailed,

	"created":             OutcomeNone,
	"pending":             OutcomeNone,
	"inprocessing":        OutcomeNone,
	"waitingauthcomplete": OutcomeNone,
	"refundinprocessing":  OutcomeNone,
}

// OutcomeForProviderStatus maps a raw provider status, case-insensitively.
func OutcomeForProviderStatus(raw string) PaymentOutcome {
	return providerStatusOutcomes[strings.ToLower(strings.TrimSpace(raw))]
}
