package test

import (
	"net/http"
	"testing"

	"github.com/jbalanon/anihan-market/core/user"
)

func TestRegisterLoginLogout(t *testing.T) {
	env := NewTestEnv(t, "auth_test")

	var resp struct {
		User user.User `json:"user"`
		CSRF string    `json:"csrfToken"`
	}
	code, err := env.DoJSON(http.MethodPost, "/auth/register", map[string]string{
		"firstName": "Maria",
		"lastName":  "Santos",
		"email":     "maria@example.com",
		"password":  "malunggay-123",
	}, &resp)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK {
		t.Fatalf("registering: status code %d", code)
	}

	if resp.User.Email != "maria@example.com" || resp.User.Role != "consumer" {
		t.Fatalf("unexpected registered user: %+v", resp.User)
	}
	if resp.CSRF == "" {
		t.Fatal("expected a csrf token on registration")
	}

	// registration logs the user in
	var current user.User
	code, err = env.DoJSON(http.MethodGet, "/users/current", nil, &current)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusOK || current.Email != "maria@example.com" {
		t.Fatalf("current user after register: code %d, user %+v", code, current)
	}

	// duplicate email
	code, err = env.DoJSON(http.MethodPost, "/auth/register", map[string]string{
		"firstName": "Maria",
		"lastName":  "Santos",
		"email":     "maria@example.com",
		"password":  "malunggay-123",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for duplicate email, got %d", code)
	}

	// logout without the csrf token is rejected
	r, err := http.NewRequest(http.MethodPost, env.URL+"/auth/logout", nil)
	if err != nil {
		t.Fatal(err)
	}
	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for logout without csrf, got %d", w.StatusCode)
	}

	// with the token it succeeds
	env.csrf = resp.CSRF
	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}

	code, err = env.DoJSON(http.MethodGet, "/users/current", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := NewTestEnv(t, "auth_wrong_test")

	if err := env.Login(env.UserEmail, "wrong-password"); err == nil {
		t.Fatal("expected login to fail with a wrong password")
	}
}
