package test

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jbalanon/anihan-market/core/order"
	"github.com/jbalanon/anihan-market/validate"
)

type orderTest struct {
	*TestEnv
}

type orderCreated struct {
	OrderID string  `json:"orderId"`
	Total   float64 `json:"total"`
}

func (ot *orderTest) createOrderOK(t *testing.T, items []map[string]any) orderCreated {
	t.Helper()

	var out orderCreated
	code, err := ot.DoJSON(http.MethodPost, "/orders", map[string]any{"items": items}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusCreated {
		t.Fatalf("creating order: status code %d", code)
	}

	return out
}

func TestOrderCheckout(t *testing.T) {
	env := NewTestEnv(t, "order_test")
	ct := &catalogTest{env}
	ot := &orderTest{env}

	pa := ct.createProductOK(t, "Kamatis", 35, 100)
	pb := ct.createProductOK(t, "Sili", 80, 50)

	if err := ot.Login(ot.UserEmail, ot.UserPass); err != nil {
		t.Fatal(err)
	}
	defer ot.Logout()

	created := ot.createOrderOK(t, []map[string]any{
		{"productId": pa.ID, "quantity": 2},
		{"productId": pb.ID, "quantity": 1},
	})

	want := 2*pa.Price + pb.Price
	if created.Total != want {
		t.Fatalf("order total = %v, want %v", created.Total, want)
	}

	var ord order.Order
	code, err := ot.DoJSON(http.MethodGet, "/orders/"+created.OrderID, nil, &ord)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK {
		t.Fatalf("fetching order: status code %d", code)
	}

	if ord.Status != order.Pending {
		t.Fatalf("new order status = %s, want pending", ord.Status)
	}

	// item prices are snapshots of the stored product prices
	prices := map[string]float64{}
	for _, it := range ord.Items {
		prices[it.ProductID] = it.Price
	}
	if diff := cmp.Diff(map[string]float64{pa.ID: pa.Price, pb.ID: pb.Price}, prices); diff != "" {
		t.Fatalf("item price mismatch (-want +got):\n%s", diff)
	}

	// stock decreased by exactly the ordered quantities
	if got := ct.fetchProductOK(t, pa.ID).Stock; got != pa.Stock-2 {
		t.Fatalf("stock of %s = %d, want %d", pa.Name, got, pa.Stock-2)
	}
	if got := ct.fetchProductOK(t, pb.ID).Stock; got != pb.Stock-1 {
		t.Fatalf("stock of %s = %d, want %d", pb.Name, got, pb.Stock-1)
	}
}

func TestOrderUnknownProductRollsBack(t *testing.T) {
	env := NewTestEnv(t, "order_rollback_test")
	ct := &catalogTest{env}
	ot := &orderTest{env}

	prd := ct.createProductOK(t, "Talong", 25, 30)

	if err := ot.Login(ot.UserEmail, ot.UserPass); err != nil {
		t.Fatal(err)
	}
	defer ot.Logout()

	items := []map[string]any{
		{"productId": prd.ID, "quantity": 5},
		{"productId": validate.GenerateID(), "quantity": 1},
	}

	code, err := ot.DoJSON(http.MethodPost, "/orders", map[string]any{"items": items}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", code)
	}

	// the whole transaction rolled back, stock untouched
	if got := ct.fetchProductOK(t, prd.ID).Stock; got != prd.Stock {
		t.Fatalf("stock changed on failed order: got %d, want %d", got, prd.Stock)
	}
}

func TestOrderValidation(t *testing.T) {
	env := NewTestEnv(t, "order_validation_test")
	ot := &orderTest{env}

	if err := ot.Login(ot.UserEmail, ot.UserPass); err != nil {
		t.Fatal(err)
	}
	defer ot.Logout()

	// empty cart
	code, err := ot.DoJSON(http.MethodPost, "/orders", map[string]any{"items": []map[string]any{}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty items, got %d", code)
	}

	// zero quantity
	items := []map[string]any{{"productId": validate.GenerateID(), "quantity": 0}}
	code, err = ot.DoJSON(http.MethodPost, "/orders", map[string]any{"items": items}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", code)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	env := NewTestEnv(t, "order_status_test")
	ct := &catalogTest{env}
	ot := &orderTest{env}

	prd := ct.createProductOK(t, "Mais", 18, 60)

	if err := ot.Login(ot.UserEmail, ot.UserPass); err != nil {
		t.Fatal(err)
	}
	created := ot.createOrderOK(t, []map[string]any{{"productId": prd.ID, "quantity": 4}})
	if err := ot.Logout(); err != nil {
		t.Fatal(err)
	}

	if err := ot.Login(ot.AdminEmail, ot.AdminPass); err != nil {
		t.Fatal(err)
	}
	defer ot.Logout()

	// cancel restocks the ordered quantity
	code, err := ot.DoJSON(http.MethodPut, "/orders/"+created.OrderID+"/status", map[string]string{"status": "canceled"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK {
		t.Fatalf("canceling order: status code %d", code)
	}

	if got := ct.fetchProductOK(t, prd.ID).Stock; got != prd.Stock {
		t.Fatalf("canceled order did not restock: got %d, want %d", got, prd.Stock)
	}

	// canceled is terminal
	code, err = ot.DoJSON(http.MethodPut, "/orders/"+created.OrderID+"/status", map[string]string{"status": "completed"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for canceled->completed, got %d", code)
	}
}
