package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/jbalanon/anihan-market/api/web"
	"github.com/jbalanon/anihan-market/api/weberr"
	"github.com/jbalanon/anihan-market/core/claims"
)

const (
	userIDKey = "user_id"
	roleKey   = "user_role"
	csrfKey   = "csrf_token"
)

// LoadAndSave adapts the scs session middleware to the web.Handler chain.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			sh := session.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				err = handler(r.Context(), w, r)
			}))

			sh.ServeHTTP(w, r)
			return err
		}
		return h
	}
	return m
}

// Authenticate resolves the session into claims on the context. Requests
// without a logged-in session are rejected.
func Authenticate(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			userID := session.GetString(ctx, userIDKey)
			if userID == "" {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			role, err := claims.ParseRole(session.GetString(ctx, roleKey))
			if err != nil {
				return weberr.NotAuthorized(err)
			}

			ctx = claims.Set(ctx, claims.Claims{UserID: userID, Role: role})
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// Admin allows admins only.
func Admin(session *scs.SessionManager) web.Middleware {
	return requireRole(session, claims.RoleAdmin)
}

// Staff allows admins and market managers.
func Staff(session *scs.SessionManager) web.Middleware {
	return requireRole(session, claims.RoleAdmin, claims.RoleManager)
}

// Reporter allows everyone who may read the dashboards.
func Reporter(session *scs.SessionManager) web.Middleware {
	return requireRole(session, claims.RoleAdmin, claims.RoleManager, claims.RoleOrgHead)
}

func requireRole(session *scs.SessionManager, roles ...claims.Role) web.Middleware {
	authen := Authenticate(session)

	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			clm, err := claims.Get(ctx)
			if err != nil {
				return weberr.NotAuthorized(err)
			}

			for _, role := range roles {
				if clm.Role == role {
					return handler(ctx, w, r)
				}
			}

			return weberr.Forbidden(errors.New("insufficient role: " + string(clm.Role)))
		}
		return h
	}

	return func(handler web.Handler) web.Handler {
		return authen(m(handler))
	}
}
