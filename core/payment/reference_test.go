package payment

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReference(t *testing.T) {
	at := time.Date(2023, time.March, 14, 10, 0, 0, 0, time.UTC)
	orderID := "3fa5138e-4050-4bb9-9d62-f9a1a9ff9d9c"

	ref := Reference(CashOnPickup, orderID, at)

	re := regexp.MustCompile(`^CP-` + orderID + `-20230314-[0-9a-f]{4}$`)
	assert.Regexp(t, re, ref)
}

func TestReferencePrefixes(t *testing.T) {
	at := time.Now().UTC()

	cases := map[Method]string{
		CreditCard:   "CC-",
		Paypal:       "PP-",
		BankTransfer: "BT-",
		CashOnPickup: "CP-",
	}

	for method, prefix := range cases {
		ref := Reference(method, "order", at)
		assert.Truef(t, len(ref) > len(prefix), "reference too short: %q", ref)
		assert.Equalf(t, prefix, ref[:len(prefix)], "reference %q for method %s", ref, method)
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, Completed, StatusFor(CreditCard))
	assert.Equal(t, Pending, StatusFor(CashOnPickup))
	assert.Equal(t, Pending, StatusFor(BankTransfer))
	assert.Equal(t, Pending, StatusFor(Paypal))
}
