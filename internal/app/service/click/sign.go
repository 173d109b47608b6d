package click

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Payload is the form-encoded body the gateway posts on both phases.
type Payload struct {
	ClickTransID      string `json:"click_trans_id" validate:"required,numeric"`
	ServiceID         string `json:"service_id" validate:"required,numeric"`
	MerchantTransID   string `json:"merchant_trans_id" validate:"required"`
	MerchantPrepareID string `json:"merchant_prepare_id,omitempty"`
	Amount            string `json:"amount" validate:"required"`
	Action            string `json:"action" validate:"required"`
	Error             string `json:"error"`
	ErrorNote         string `json:"error_note"`
	SignTime          string `json:"sign_time" validate:"required"`
	SignString        string `json:"sign_string" validate:"required"`
}

// Sign computes the md5 signature over the ordered field concatenation.
// The order is fixed by the gateway protocol: click_trans_id, service_id,
// secret, merchant_trans_id, [merchant_prepare_id on complete], amount,
// action, sign_time.
func Sign(secret string, p Payload) string {
	var b strings.Builder

	b.WriteString(p.ClickTransID)
	b.WriteString(p.ServiceID)
	b.WriteString(secret)
	b.WriteString(p.MerchantTransID)
	if p.Action == ActionComplete {
		b.WriteString(p.MerchantPrepareID)
	}
	b.WriteString(p.Amount)
	b.WriteString(p.Action)
	b.WriteString(p.SignTime)

	sum := md5.Sum([]byte(b.String()))

	return hex.EncodeToString(sum[:])
}

// Verify checks the caller-supplied signature. A payload missing any signed
// field fails verification instead of erroring.
func Verify(secret string, p Payload) bool {
	if p.ClickTransID == "" || p.ServiceID == "" || p.MerchantTransID == "" ||
		p.Amount == "" || p.Action == "" || p.SignTime == "" || p.SignString == "" {
		return false
	}
	if p.Action == ActionComplete && p.MerchantPrepareID == "" {
		return false
	}

	return Sign(secret, p) == p.SignString
}
