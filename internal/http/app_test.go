package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"bdc/internal/config"
	"bdc/internal/http/handlers"
	"bdc/internal/repos"
	"bdc/internal/storage"
)

const (
	adminEmail = "admin@bdc.test"
	adminPass  = "Passw0rd!"
)

type testEnv struct {
	app   *fiber.App
	deps  *handlers.Deps
	db    *sqlx.DB
	media string
}

// newTestEnv wires the real app on an in-memory database and a temp media dir.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	media := t.TempDir()
	store, err := storage.NewLocal(media, "")
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	cfg := config.Config{
		Session: config.SessionConfig{TTL: time.Hour},
		Storage: config.StorageConfig{Driver: "local", MaxUploadBytes: 5 << 20},
		Site: config.SiteConfig{
			WhatsAppNumber:  "+57 313 773 2492",
			WhatsAppMessage: "Hola, me interesa información",
			BannerInterval:  5 * time.Second,
		},
	}
	d := handlers.NewDeps(db, cfg, store, repos.NewSQLSessions(db))
	if _, err := d.Auth.EnsureAdmin(context.Background(), adminEmail, "Admin BDC", adminPass); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	app := handlers.NewApp(d, handlers.Options{
		Engine:     handlers.NewEngine("../../web/templates", false),
		StaticDir:  "../../web/static",
		MediaDir:   media,
		LoginLimit: 3,
	})
	return &testEnv{app: app, deps: d, db: db, media: media}
}

// client replays cookies between requests like a browser would.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func (e *testEnv) client(t *testing.T) *client {
	return &client{t: t, app: e.app, cookies: map[string]string{}}
}

func (c *client) do(req *http.Request) *http.Response {
	c.t.Helper()
	for k, v := range c.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := c.app.Test(req, -1)
	if err != nil {
		c.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	for _, ck := range resp.Cookies() {
		if ck.Value == "" || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck.Value
	}
	return resp
}

func (c *client) get(path string) *http.Response {
	c.t.Helper()
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post sends form with the current csrf token unless the form carries one.
func (c *client) post(path string, form url.Values, asJSON bool) *http.Response {
	c.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if _, set := form["csrf"]; !set {
		form.Set("csrf", c.cookies["csrf_"])
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if asJSON {
		req.Header.Set("Accept", "application/json")
	}
	return c.do(req)
}

// login fetches a csrf token from the login page and signs in.
func (c *client) login(email, password string) *http.Response {
	c.t.Helper()
	c.get("/login")
	if c.cookies["csrf_"] == "" {
		c.t.Fatal("csrf cookie missing after GET /login")
	}
	return c.post("/login", url.Values{"email": {email}, "password": {password}}, false)
}

// admin returns a client signed in as the bootstrap account.
func (e *testEnv) admin(t *testing.T) *client {
	t.Helper()
	c := e.client(t)
	resp := c.login(adminEmail, adminPass)
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("admin login status=%d", resp.StatusCode)
	}
	return c
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return out
}
