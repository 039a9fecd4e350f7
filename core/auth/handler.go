package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jbalanon/anihan-market/api/web"
	"github.com/jbalanon/anihan-market/api/weberr"
	"github.com/jbalanon/anihan-market/core/claims"
	"github.com/jbalanon/anihan-market/core/user"
	"github.com/jbalanon/anihan-market/random"
	"github.com/jbalanon/anihan-market/validate"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type session struct {
	User user.User `json:"user"`
	CSRF string    `json:"csrfToken"`
}

// HandleRegister signs up a new consumer and logs it in.
func HandleRegister(db *sqlx.DB, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var un user.UserNew
		if err := web.Decode(w, r, &un); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding user: %w", err))
		}

		if err := validate.Check(un); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(un.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		now := time.Now().UTC()
		usr := user.User{
			ID:           validate.GenerateID(),
			FirstName:    un.FirstName,
			LastName:     un.LastName,
			Email:        un.Email,
			Role:         claims.RoleConsumer,
			BarangayID:   un.BarangayID,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := user.Create(ctx, db, usr); err != nil {
			var pqerr *pq.Error
			if errors.As(err, &pqerr) && pqerr.Code == uniqueViolation {
				return weberr.Unprocessable(errors.New("email is already registered"))
			}
			return err
		}

		return login(ctx, w, sm, usr)
	}
}

// HandleLogin verifies the password and binds the user to the session.
func HandleLogin(db *sqlx.DB, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var creds credentials
		if err := web.Decode(w, r, &creds); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding credentials: %w", err))
		}

		if err := validate.Check(creds); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		usr, err := user.FetchByEmail(ctx, db, creds.Email)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return weberr.NotAuthorized(err)
			}
			return err
		}

		if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(creds.Password)); err != nil {
			return weberr.NotAuthorized(errors.New("wrong credentials"))
		}

		return login(ctx, w, sm, usr)
	}
}

// HandleLogout destroys the session. The request must carry the session's
// CSRF token, compared in constant time.
func HandleLogout(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		want := sm.GetString(ctx, csrfKey)
		got := r.Header.Get("X-CSRF-Token")

		if want == "" || subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
			return weberr.Forbidden(errors.New("csrf token mismatch"))
		}

		if err := sm.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func login(ctx context.Context, w http.ResponseWriter, sm *scs.SessionManager, usr user.User) error {
	if err := sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}

	csrf := random.String(32)
	sm.Put(ctx, userIDKey, usr.ID)
	sm.Put(ctx, roleKey, string(usr.Role))
	sm.Put(ctx, csrfKey, csrf)

	return web.Respond(ctx, w, session{User: usr, CSRF: csrf}, http.StatusOK)
}
