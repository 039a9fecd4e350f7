package claims

import (
	"context"
	"errors"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleOrgHead  Role = "organization_head"
	RoleConsumer Role = "consumer"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleOrgHead, RoleConsumer:
		return Role(s), nil
	}
	return "", errors.New("unknown role: " + s)
}

// Claims is the authenticated principal attached to the request context.
type Claims struct {
	UserID string
	Role   Role
}

type ctxKey int

const claimsKey ctxKey = 1

func Set(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func Get(ctx context.Context) (Claims, error) {
	v, ok := ctx.Value(claimsKey).(Claims)
	if !ok {
		return Claims{}, errors.New("claim value missing from context")
	}
	return v, nil
}

func IsAdmin(ctx context.Context) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}
	return c.Role == RoleAdmin
}

// IsStaff reports whether the principal can act on behalf of the market
// (admins and managers).
func IsStaff(ctx context.Context) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}
	return c.Role == RoleAdmin || c.Role == RoleManager
}

func IsUser(ctx context.Context, id string) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}
	return c.UserID == id
}
