// Package signature implements the WayForPay merchantSignature scheme:
// hex(HMAC-MD5(secret, fields joined by ";")). Field order is part of the
// wire contract and must match the gateway bit for bit.
package signature

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"checkout_service/internal/domain/entities"
)

const (
	Delimiter = ";"

	// FieldSignature is the payload key carrying the declared signature.
	FieldSignature = "merchantSignature"

	AckStatusAccept = "accept"
)

// Callback payload keys, in signing order around the product lists.
var (
	callbackLeadingFields  = []string{"merchantAccount", "orderReference", "amount", "currency"}
	callbackListFields     = []string{"productName", "productCount", "productPrice"}
	callbackTrailingFields = []string{"authCode", "cardPan", "transactionStatus", "reasonCode"}
)

// Sign returns hex(HMAC-MD5(secret, join(fields, ";"))).
func Sign(secret string, fields ...string) string {
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write([]byte(strings.Join(fields, Delimiter)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares declared with the signature over fields in constant time.
// An empty declared signature never verifies.
func Verify(secret, declared string, fields ...string) bool {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared == "" {
		return false
	}
	expected := Sign(secret, fields...)
	return hmac.Equal([]byte(expected), []byte(declared))
}

// InvoiceInput holds the invoice fields covered by the request signature.
type InvoiceInput struct {
	MerchantAccount    string
	MerchantDomainName string
	OrderReference     string
	OrderDate          int64
	Amount             float64
	Currency           string
	ProductNames       []string
	ProductCounts      []int
	ProductPrices      []float64
}

// InvoiceFields returns the canonical field list of a CREATE_INVOICE request:
// merchantAccount;merchantDomainName;orderReference;orderDate;amount;currency;
// names...;counts...;prices...
func InvoiceFields(in InvoiceInput) []string {
	fields := []string{
		in.MerchantAccount,
		in.MerchantDomainName,
		in.OrderReference,
		strconv.FormatInt(in.OrderDate, 10),
		FormatNumber(in.Amount),
		in.Currency,
	}
	fields = append(fields, in.ProductNames...)
	for _, c := range in.ProductCounts {
		fields = append(fields, strconv.Itoa(c))
	}
	for _, p := range in.ProductPrices {
		fields = append(fields, FormatNumber(p))
	}
	return fields
}

func SignInvoice(secret string, in InvoiceInput) string {
	return Sign(secret, InvoiceFields(in)...)
}

// CallbackFields returns the canonical field list of a service-url
// notification. Product lists, when present, are flattened positionally
// between currency and the authCode trailer.
func CallbackFields(p entities.GatewayParams) []string {
	fields := make([]string, 0, len(callbackLeadingFields)+len(callbackTrailingFields))
	for _, k := range callbackLeadingFields {
		fields = append(fields, p.Get(k))
	}
	for _, k := range callbackListFields {
		fields = append(fields, p.List(k)...)
	}
	for _, k := range callbackTrailingFields {
		fields = append(fields, p.Get(k))
	}
	return fields
}

// VerifyInbound checks the merchantSignature of a gateway notification.
func VerifyInbound(secret string, p entities.GatewayParams) bool {
	return Verify(secret, p.Get(FieldSignature), CallbackFields(p)...)
}

// AckSignature signs the webhook acknowledgement: orderReference;accept;time.
func AckSignature(secret, orderRef string, unixTime int64) string {
	return Sign(secret, orderRef, AckStatusAccept, strconv.FormatInt(unixTime, 10))
}

// FormatNumber renders v the way the gateway does: shortest decimal form,
// no exponent, no trailing zeros (359 -> "359", 12.5 -> "12.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
