package wayforpay

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
)

// sign computes the gateway's keyed digest: HMAC-MD5 over the
// semicolon-joined fields, hex-encoded. Field order and formatting must
// match the gateway bit-for-bit or it rejects the transaction.
func sign(secret string, fields []string) string {
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write([]byte(strings.Join(fields, ";")))
	return hex.EncodeToString(mac.Sum(nil))
}

// sanitizeProductName strips the field separator from free-text names so a
// product title cannot shift the signature fields.
func sanitizeProductName(name string) string {
	return strings.ReplaceAll(name, ";", " ")
}

// SignPurchase builds the purchase signature: merchant identity, order
// identity, amount and currency, then the parallel product name/count/price
// arrays in that fixed order.
func SignPurchase(cfg *Config, order *PaymentOrder) string {
	fields := []string{
		cfg.MerchantAccount,
		cfg.DomainName,
		order.OrderReference,
		strconv.FormatInt(order.OrderDate, 10),
		order.Amount.StringFixed(2),
		order.Currency,
	}

	for _, p := range order.Products {
		fields = append(fields, sanitizeProductName(p.Name))
	}
	for _, p := range order.Products {
		fields = append(fields, strconv.Itoa(p.Count))
	}
	for _, p := range order.Products {
		fields = append(fields, p.Price.StringFixed(2))
	}

	return sign(cfg.SecretKey, fields)
}

// VerifyCallback recomputes the callback signature and compares it against
// the one supplied. This is the sole authenticity check for inbound
// notifications and runs before any state is touched.
func VerifyCallback(secret string, cb *Callback) bool {
	expected := sign(secret, []string{
		cb.MerchantAccount,
		cb.OrderReference,
		cb.Amount.String(),
		cb.Currency,
		cb.AuthCode,
		cb.CardPan,
		cb.TransactionStatus,
		cb.ReasonCode.String(),
	})

	return hmac.Equal([]byte(expected), []byte(cb.MerchantSignature))
}

// SignResponse produces the digest for the callback acknowledgement over
// (orderReference, status, time).
func SignResponse(secret, orderReference, status string, t int64) string {
	return sign(secret, []string{
		orderReference,
		status,
		strconv.FormatInt(t, 10),
	})
}
