package claims

import (
	"context"
	"testing"
)

func TestParseRole(t *testing.T) {
	valid := []string{"admin", "manager", "organization_head", "consumer"}
	for _, s := range valid {
		if _, err := ParseRole(s); err != nil {
			t.Errorf("ParseRole(%q) unexpected error: %v", s, err)
		}
	}

	if _, err := ParseRole("superuser"); err == nil {
		t.Error("ParseRole(\"superuser\") expected an error")
	}
}

func TestGetWithoutClaims(t *testing.T) {
	if _, err := Get(context.Background()); err == nil {
		t.Fatal("expected an error on a bare context")
	}
}

func TestIsStaff(t *testing.T) {
	cases := map[Role]bool{
		RoleAdmin:    true,
		RoleManager:  true,
		RoleOrgHead:  false,
		RoleConsumer: false,
	}

	for role, want := range cases {
		ctx := Set(context.Background(), Claims{UserID: "u", Role: role})
		if got := IsStaff(ctx); got != want {
			t.Errorf("IsStaff(%s) = %v, want %v", role, got, want)
		}
	}
}

func TestIsUser(t *testing.T) {
	ctx := Set(context.Background(), Claims{UserID: "u1", Role: RoleConsumer})

	if !IsUser(ctx, "u1") {
		t.Error("expected IsUser to match the claim's user")
	}
	if IsUser(ctx, "u2") {
		t.Error("expected IsUser to reject another user")
	}
}
