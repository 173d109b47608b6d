package click

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "TestSecretKey"

func preparePayload() Payload {
	return Payload{
		ClickTransID:    "1234567",
		ServiceID:       "219042",
		MerchantTransID: "c6f4b9bc-6e32-4f0d-9003-9f2b4e1d8a11",
		Amount:          "500000.00",
		Action:          ActionPrepare,
		SignTime:        "2023-08-01 12:00:00",
	}
}

func completePayload() Payload {
	return Payload{
		ClickTransID:      "1234567",
		ServiceID:         "219042",
		MerchantTransID:   "c6f4b9bc-6e32-4f0d-9003-9f2b4e1d8a11",
		MerchantPrepareID: "8c92ed54-3b5d-4c8e-9f10-5a7e2d9b0c42",
		Amount:            "500000.00",
		Action:            ActionComplete,
		SignTime:          "2023-08-01 12:05:00",
	}
}

func TestSignPrepare(t *testing.T) {
	got := Sign(testSecret, preparePayload())
	assert.Equal(t, "b7a01dffd52f37c3da31f64aa069bbff", got)
}

func TestSignComplete(t *testing.T) {
	// the prepare id participates in the digest only on complete
	got := Sign(testSecret, completePayload())
	assert.Equal(t, "ffe2a08428e8174c1f63958ecc307689", got)
}

func TestVerify(t *testing.T) {
	p := preparePayload()
	p.SignString = Sign(testSecret, p)
	assert.True(t, Verify(testSecret, p))

	p.Amount = "1.00"
	assert.False(t, Verify(testSecret, p), "tampered amount must fail")
}

func TestVerifyMissingFields(t *testing.T) {
	p := preparePayload()
	p.SignString = Sign(testSecret, p)
	p.SignTime = ""
	assert.False(t, Verify(testSecret, p))

	c := completePayload()
	c.MerchantPrepareID = ""
	c.SignString = Sign(testSecret, c)
	assert.False(t, Verify(testSecret, c), "complete without prepare id must fail")
}

func TestVerifyWrongSecret(t *testing.T) {
	p := preparePayload()
	p.SignString = Sign("OtherSecret", p)
	assert.False(t, Verify(testSecret, p))
}
