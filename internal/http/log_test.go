package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"testing"

	applog "bdc/internal/log"
)

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	Path   string         `json:"path"`
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// captureLogs points the app logger at a buffer while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	w := &lockedWriter{}
	restore := applog.SetOutput(w)
	defer restore()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) *logEntry {
	for i := range entries {
		if entries[i].Action == action {
			return &entries[i]
		}
	}
	return nil
}

func TestAuthEventsAreLogged(t *testing.T) {
	env := newTestEnv(t)
	entries := captureLogs(t, func() {
		c := env.client(t)
		c.get("/dashboard")
		c.login(adminEmail, "WrongPass1")
		c.login(adminEmail, adminPass)
	})

	denied := findLog(entries, "access.denied.dashboard")
	if denied == nil || denied.Kind != "security" || denied.Level != "warn" {
		t.Fatalf("dashboard denial not logged as security: %+v", denied)
	}
	fail := findLog(entries, "auth.login.fail")
	if fail == nil || fail.Fields["reason"] != "bad_credentials" {
		t.Fatalf("failed login not logged: %+v", fail)
	}
	if strings.Contains(fail.Fields["email"].(string), "WrongPass1") {
		t.Fatal("password leaked into the log")
	}
	ok := findLog(entries, "auth.login.success")
	if ok == nil || ok.Kind != "audit" || ok.Fields["email"] != adminEmail {
		t.Fatalf("login success not audited: %+v", ok)
	}
}

func TestDashboardChangesAreAudited(t *testing.T) {
	env := newTestEnv(t)
	c := env.admin(t)
	entries := captureLogs(t, func() {
		c.post("/dashboard/repuestos", url.Values{"name": {"Cadena 428"}, "price": {"80000"}, "is_active": {"on"}}, true)
		c.post("/dashboard/repuestos", url.Values{"name": {"Cadena"}, "csrf": {"forged"}}, true)
	})

	created := findLog(entries, "dashboard.repuestos.create")
	if created == nil || created.Kind != "audit" || created.UserID == "" || created.Fields["name"] != "Cadena 428" {
		t.Fatalf("create not audited with the acting user: %+v", created)
	}
	if e := findLog(entries, "csrf.fail"); e == nil || e.Path != "/dashboard/repuestos" {
		t.Fatalf("csrf failure not logged: %+v", e)
	}
}
