package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jbalanon/anihan-market/api"
	"github.com/jbalanon/anihan-market/api/background"
	"github.com/jbalanon/anihan-market/cache"
	"github.com/jbalanon/anihan-market/config"
	"github.com/jbalanon/anihan-market/core/claims"
	"github.com/jbalanon/anihan-market/core/user"
	"github.com/jbalanon/anihan-market/database"
	"github.com/jbalanon/anihan-market/validate"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// TestEnv spins up a throwaway postgres container and a full API server. It
// skips the calling test when no Docker endpoint is reachable.
type TestEnv struct {
	t      *testing.T
	DB     *sqlx.DB
	Server *httptest.Server
	URL    string

	UserEmail  string
	UserPass   string
	AdminEmail string
	AdminPass  string

	client *http.Client
	csrf   string
}

func NewTestEnv(t *testing.T, name string) *TestEnv {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("skipping, docker not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("skipping, docker not reachable: %v", err)
	}

	res, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=" + name,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(res) })

	cfg := config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       "localhost:" + res.GetPort("5432/tcp"),
		Name:       name,
		DisableTLS: true,
	}

	var db *sqlx.DB
	pool.MaxWait = 60 * time.Second
	if err := pool.Retry(func() error {
		db, err = database.Open(cfg)
		if err != nil {
			return err
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connecting to test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	sessionManager := scs.New()
	sessionManager.Lifetime = time.Hour

	bg := background.New(logger)

	mux := api.APIMux(api.APIConfig{
		CorsOrigin: "*",
		Log:        logger,
		DB:         db,
		Session:    sessionManager,
		Background: bg,
		DashCache:  cache.New(time.Minute),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("building cookie jar: %v", err)
	}

	te := &TestEnv{
		t:          t,
		DB:         db,
		Server:     srv,
		URL:        srv.URL,
		UserEmail:  "juan@example.com",
		UserPass:   "kape-barako-1",
		AdminEmail: "admin@example.com",
		AdminPass:  "talong-at-okra",
		client:     &http.Client{Jar: jar},
	}

	te.seedUser(te.UserEmail, te.UserPass, claims.RoleConsumer)
	te.seedUser(te.AdminEmail, te.AdminPass, claims.RoleAdmin)

	return te
}

func (te *TestEnv) Client() *http.Client { return te.client }

// CSRF is the token of the currently logged-in session.
func (te *TestEnv) CSRF() string { return te.csrf }

func (te *TestEnv) seedUser(email string, password string, role claims.Role) {
	te.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		te.t.Fatalf("hashing seed password: %v", err)
	}

	now := time.Now().UTC()
	usr := user.User{
		ID:           validate.GenerateID(),
		FirstName:    "Seed",
		LastName:     "User",
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := user.Create(context.Background(), te.DB, usr); err != nil {
		te.t.Fatalf("seeding user %s: %v", email, err)
	}
}

// Login authenticates the shared client and remembers the CSRF token.
func (te *TestEnv) Login(email string, password string) error {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	w, err := te.client.Post(te.URL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		return fmt.Errorf("login: status code %s", w.Status)
	}

	var resp struct {
		CSRF string `json:"csrfToken"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return err
	}

	te.csrf = resp.CSRF
	return nil
}

func (te *TestEnv) Logout() error {
	r, err := http.NewRequest(http.MethodPost, te.URL+"/auth/logout", nil)
	if err != nil {
		return err
	}
	r.Header.Set("X-CSRF-Token", te.csrf)

	w, err := te.client.Do(r)
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusNoContent {
		return fmt.Errorf("logout: status code %s", w.Status)
	}

	te.csrf = ""
	return nil
}

// DoJSON sends a request with a JSON body and decodes a JSON response into
// out when out is non-nil. It returns the response status code.
func (te *TestEnv) DoJSON(method string, path string, in any, out any) (int, error) {
	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	r, err := http.NewRequest(method, te.URL+path, body)
	if err != nil {
		return 0, err
	}
	if in != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := te.client.Do(r)
	if err != nil {
		return 0, err
	}
	defer w.Body.Close()

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			return w.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}

	return w.StatusCode, nil
}
