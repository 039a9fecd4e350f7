package test

import (
	"net/http"
	"testing"

	"github.com/jbalanon/anihan-market/core/barangay"
	"github.com/jbalanon/anihan-market/core/product"
)

type catalogTest struct {
	*TestEnv
}

// createProductOK inserts a product as admin and returns it. The caller is
// expected to be logged out afterwards.
func (ct *catalogTest) createProductOK(t *testing.T, name string, price float64, stock int) product.Product {
	t.Helper()

	if err := ct.Login(ct.AdminEmail, ct.AdminPass); err != nil {
		t.Fatal(err)
	}
	defer ct.Logout()

	categories := ct.listCategoriesOK(t)
	barangays := ct.listBarangaysOK(t)

	pn := map[string]any{
		"name":       name,
		"categoryId": categories[0].ID,
		"barangayId": barangays[0].ID,
		"season":     "year_round",
		"farmer":     "Mang Tomas",
		"price":      price,
		"stock":      stock,
	}

	var prd product.Product
	code, err := ct.DoJSON(http.MethodPost, "/products", pn, &prd)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusCreated {
		t.Fatalf("creating product: status code %d", code)
	}

	return prd
}

func (ct *catalogTest) listCategoriesOK(t *testing.T) []product.Category {
	t.Helper()

	var categories []product.Category
	code, err := ct.DoJSON(http.MethodGet, "/categories", nil, &categories)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK {
		t.Fatalf("listing categories: status code %d", code)
	}
	if len(categories) == 0 {
		t.Fatal("expected seeded categories")
	}

	return categories
}

func (ct *catalogTest) listBarangaysOK(t *testing.T) []barangay.Barangay {
	t.Helper()

	var barangays []barangay.Barangay
	code, err := ct.DoJSON(http.MethodGet, "/barangays", nil, &barangays)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK {
		t.Fatalf("listing barangays: status code %d", code)
	}
	if len(barangays) == 0 {
		t.Fatal("expected seeded barangays")
	}

	return barangays
}

func (ct *catalogTest) fetchProductOK(t *testing.T, id string) product.Product {
	t.Helper()

	var prd product.Product
	code, err := ct.DoJSON(http.MethodGet, "/products/"+id, nil, &prd)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK {
		t.Fatalf("fetching product: status code %d", code)
	}

	return prd
}

func TestMarketListing(t *testing.T) {
	env := NewTestEnv(t, "market_test")
	ct := &catalogTest{env}

	ct.createProductOK(t, "Kamatis", 35, 100)
	ct.createProductOK(t, "Kalabasa", 50, 40)
	ct.createProductOK(t, "Kangkong", 15, 0)

	var page product.Page
	code, err := ct.DoJSON(http.MethodGet, "/products?per_page=2", nil, &page)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK {
		t.Fatalf("listing products: status code %d", code)
	}

	if page.Total != 3 {
		t.Fatalf("expected 3 products total, got %d", page.Total)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 products on the page, got %d", len(page.Items))
	}
	if page.PerPage != 2 || page.Page != 1 {
		t.Fatalf("unexpected page metadata: %+v", page)
	}

	code, err = ct.DoJSON(http.MethodGet, "/products?search=kam", nil, &page)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK || len(page.Items) != 1 || page.Items[0].Name != "Kamatis" {
		t.Fatalf("search filter failed: code %d, items %+v", code, page.Items)
	}

	code, err = ct.DoJSON(http.MethodGet, "/products?available=true", nil, &page)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK || page.Total != 2 {
		t.Fatalf("availability filter failed: code %d, total %d", code, page.Total)
	}
}

func TestProductRequiresStaff(t *testing.T) {
	env := NewTestEnv(t, "product_auth_test")
	ct := &catalogTest{env}

	if err := ct.Login(ct.UserEmail, ct.UserPass); err != nil {
		t.Fatal(err)
	}
	defer ct.Logout()

	code, err := ct.DoJSON(http.MethodPost, "/products", map[string]any{"name": "x"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusForbidden {
		t.Fatalf("expected 403 for consumer product create, got %d", code)
	}
}
