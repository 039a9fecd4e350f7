package payment

import (
	"fmt"
	"time"

	"github.com/jbalanon/anihan-market/random"
)

var prefixes = map[Method]string{
	CreditCard:   "CC",
	Paypal:       "PP",
	BankTransfer: "BT",
	CashOnPickup: "CP",
}

// Reference builds a payment reference of the form
// {prefix}-{orderID}-{yyyymmdd}-{4 hex chars}. It identifies the attempt, it
// is not a bank-issued identifier.
func Reference(method Method, orderID string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%s", prefixes[method], orderID, at.Format("20060102"), random.Hex(4))
}

// StatusFor assigns the payment status by method. The rule is fixed: card
// payments complete immediately (simulated, there is no gateway round-trip),
// everything else starts pending.
func StatusFor(method Method) Status {
	if method == CreditCard {
		return Completed
	}
	return Pending
}
