package test

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/jbalanon/anihan-market/core/order"
	"github.com/jbalanon/anihan-market/core/payment"
)

type paymentTest struct {
	*TestEnv
}

func (pt *paymentTest) fetchOrderOK(t *testing.T, id string) order.Order {
	t.Helper()

	var ord order.Order
	code, err := pt.DoJSON(http.MethodGet, "/orders/"+id, nil, &ord)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK {
		t.Fatalf("fetching order: status code %d", code)
	}

	return ord
}

func TestCashOnPickupPayment(t *testing.T) {
	env := NewTestEnv(t, "payment_cop_test")
	ct := &catalogTest{env}
	ot := &orderTest{env}
	pt := &paymentTest{env}

	prd := ct.createProductOK(t, "Pechay", 20, 100)

	if err := pt.Login(pt.UserEmail, pt.UserPass); err != nil {
		t.Fatal(err)
	}
	defer pt.Logout()

	created := ot.createOrderOK(t, []map[string]any{{"productId": prd.ID, "quantity": 3}})

	var pay payment.Payment
	code, err := pt.DoJSON(http.MethodPost, "/payments", map[string]any{
		"orderId": created.OrderID,
		"method":  "cash_on_pickup",
	}, &pay)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusCreated {
		t.Fatalf("recording payment: status code %d", code)
	}

	// amount falls back to the sum of the order's items
	if pay.Amount != 60 {
		t.Fatalf("payment amount = %v, want 60", pay.Amount)
	}

	if pay.Status != payment.Pending {
		t.Fatalf("cash_on_pickup payment status = %s, want pending", pay.Status)
	}

	re := regexp.MustCompile(`^CP-` + created.OrderID + `-\d{8}-[0-9a-f]{4}$`)
	if !re.MatchString(pay.Reference) {
		t.Fatalf("reference %q does not match the expected pattern", pay.Reference)
	}

	if got := pt.fetchOrderOK(t, created.OrderID).Status; got != order.Pending {
		t.Fatalf("order status after pending payment = %s, want pending", got)
	}
}

func TestCreditCardPayment(t *testing.T) {
	env := NewTestEnv(t, "payment_card_test")
	ct := &catalogTest{env}
	ot := &orderTest{env}
	pt := &paymentTest{env}

	prd := ct.createProductOK(t, "Sibuyas", 45, 100)

	if err := pt.Login(pt.UserEmail, pt.UserPass); err != nil {
		t.Fatal(err)
	}
	defer pt.Logout()

	created := ot.createOrderOK(t, []map[string]any{{"productId": prd.ID, "quantity": 2}})

	var pay payment.Payment
	code, err := pt.DoJSON(http.MethodPost, "/payments", map[string]any{
		"orderId":    created.OrderID,
		"method":     "credit_card",
		"cardNumber": "4111111111111111",
		"cardBrand":  "visa",
	}, &pay)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusCreated {
		t.Fatalf("recording payment: status code %d", code)
	}

	if pay.Status != payment.Completed {
		t.Fatalf("credit_card payment status = %s, want completed", pay.Status)
	}

	if pay.CardLast4 == nil || *pay.CardLast4 != "1111" {
		t.Fatalf("expected card last4 1111, got %v", pay.CardLast4)
	}

	// the order completes with the payment
	if got := pt.fetchOrderOK(t, created.OrderID).Status; got != order.Completed {
		t.Fatalf("order status after card payment = %s, want completed", got)
	}

	// a second payment on a settled order is rejected
	code, err = pt.DoJSON(http.MethodPost, "/payments", map[string]any{
		"orderId": created.OrderID,
		"method":  "cash_on_pickup",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for double payment, got %d", code)
	}
}

func TestPaymentUnknownOrder(t *testing.T) {
	env := NewTestEnv(t, "payment_missing_test")
	pt := &paymentTest{env}

	if err := pt.Login(pt.UserEmail, pt.UserPass); err != nil {
		t.Fatal(err)
	}
	defer pt.Logout()

	code, err := pt.DoJSON(http.MethodPost, "/payments", map[string]any{
		"orderId": "3fa5138e-4050-4bb9-9d62-f9a1a9ff9d9c",
		"method":  "paypal",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", code)
	}
}

func TestPaymentMethodValidation(t *testing.T) {
	env := NewTestEnv(t, "payment_method_test")
	pt := &paymentTest{env}

	if err := pt.Login(pt.UserEmail, pt.UserPass); err != nil {
		t.Fatal(err)
	}
	defer pt.Logout()

	code, err := pt.DoJSON(http.MethodPost, "/payments", map[string]any{
		"orderId": "3fa5138e-4050-4bb9-9d62-f9a1a9ff9d9c",
		"method":  "gcash",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown method, got %d", code)
	}
}

func TestHealth(t *testing.T) {
	env := NewTestEnv(t, "health_test")

	var body struct {
		Status string `json:"status"`
	}
	code, err := env.DoJSON(http.MethodGet, "/health", nil, &body)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK || body.Status != "ok" {
		t.Fatalf("health check failed: code %d, status %q", code, body.Status)
	}
}
