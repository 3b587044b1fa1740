package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/service"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

var t0 = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

func newAuth(t *testing.T, clk *clock, renewAfter time.Duration) *service.AuthService {
	t.Helper()
	encoded, err := service.EncodePasswordHash("pw", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	acc, err := service.NewAccount("admin", encoded)
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	return service.NewAuthService(service.AuthConfig{
		Account:    acc,
		Verifier:   service.NewCredentialVerifier(acc, zerolog.Nop()),
		Issuer:     service.NewSessionIssuer("secret", 24*time.Hour, service.WithClock(clk.Now)),
		RenewAfter: renewAfter,
		Now:        clk.Now,
	}, zerolog.Nop())
}

func login(t *testing.T, auth *service.AuthService) string {
	t.Helper()
	token, _, err := auth.Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return token
}

func serveGate(cfg GateConfig, target string, cookie *http.Cookie) (*httptest.ResponseRecorder, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Gate(cfg)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	return rec, called
}

// ---------------------------------------------------------------------------
// Gate
// ---------------------------------------------------------------------------

func TestGate_RedirectsWithoutSession(t *testing.T) {
	clk := &clock{t: t0}
	rec, called := serveGate(GateConfig{Auth: newAuth(t, clk, 0), Log: zerolog.Nop()}, "/diary?day=2024-01-15", nil)

	if called {
		t.Fatalf("next must not run without a session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad location: %v", err)
	}
	if loc.Path != "/login" || loc.Query().Get("callbackUrl") != "/diary?day=2024-01-15" {
		t.Fatalf("unexpected redirect: %s", loc)
	}
}

func TestGate_PublicPathsPassThrough(t *testing.T) {
	clk := &clock{t: t0}
	cfg := GateConfig{Auth: newAuth(t, clk, 0), Log: zerolog.Nop()}

	for _, p := range []string{"/login", "/api/entries", "/static/app.css", "/public/logo.png", "/favicon.ico", "/health/ready", "/metrics", "/swagger/index.html"} {
		if _, called := serveGate(cfg, p, nil); !called {
			t.Fatalf("expected %s to bypass the gate", p)
		}
	}
	if _, called := serveGate(cfg, "/apiary", nil); called {
		t.Fatalf("/apiary must not match the /api prefix")
	}
}

func TestGate_ValidSessionAndExpiry(t *testing.T) {
	clk := &clock{t: t0}
	auth := newAuth(t, clk, time.Hour)
	token := login(t, auth)
	cookie := &http.Cookie{Name: SessionCookie, Value: token}
	cfg := GateConfig{Auth: auth, Log: zerolog.Nop()}

	clk.t = t0.Add(24*time.Hour - time.Second)
	if rec, called := serveGate(cfg, "/", cookie); !called || rec.Code != http.StatusOK {
		t.Fatalf("expected access just before expiry, got %d", rec.Code)
	}

	clk.t = t0.Add(24 * time.Hour)
	rec, called := serveGate(cfg, "/", cookie)
	if called || rec.Code != http.StatusFound {
		t.Fatalf("expected redirect at expiry, got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "/login" {
		t.Fatalf("unexpected location %q", rec.Header().Get("Location"))
	}
}

func TestGate_RenewsCookie(t *testing.T) {
	clk := &clock{t: t0}
	auth := newAuth(t, clk, time.Hour)
	token := login(t, auth)

	clk.t = t0.Add(2 * time.Hour)
	rec, called := serveGate(GateConfig{Auth: auth, Log: zerolog.Nop()}, "/", &http.Cookie{Name: SessionCookie, Value: token})
	if !called {
		t.Fatalf("expected next to run")
	}

	var renewed *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie {
			renewed = ck
		}
	}
	if renewed == nil || renewed.Value == token {
		t.Fatalf("expected a fresh session cookie")
	}
	if !renewed.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}

	// The renewed token outlives the original.
	clk.t = t0.Add(25 * time.Hour)
	if _, err := auth.Authenticate(context.Background(), renewed.Value); err != nil {
		t.Fatalf("renewed token should still be valid: %v", err)
	}
}

func TestGate_Bypass(t *testing.T) {
	clk := &clock{t: t0}
	if _, called := serveGate(GateConfig{Auth: newAuth(t, clk, 0), Bypass: true, Log: zerolog.Nop()}, "/", nil); !called {
		t.Fatalf("bypass must let requests through")
	}
}

func TestGate_GarbageCookieIsCleared(t *testing.T) {
	clk := &clock{t: t0}
	rec, called := serveGate(GateConfig{Auth: newAuth(t, clk, 0), Log: zerolog.Nop()}, "/", &http.Cookie{Name: SessionCookie, Value: "junk"})
	if called {
		t.Fatalf("junk cookie must not pass")
	}
	cleared := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected the session cookie to be cleared")
	}
}

func TestSafeCallback(t *testing.T) {
	tests := map[string]string{
		"":                   "/",
		"/diary":             "/diary",
		"https://evil.test/": "/",
		"//evil.test":        "/",
		`/\evil.test`:        "/",
	}
	for in, want := range tests {
		if got := SafeCallback(in); got != want {
			t.Errorf("SafeCallback(%q) = %q, want %q", in, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// RequireSession
// ---------------------------------------------------------------------------

func TestRequireSession(t *testing.T) {
	clk := &clock{t: t0}
	auth := newAuth(t, clk, 0)
	token := login(t, auth)

	tests := []struct {
		name   string
		header string
		cookie string
		code   int
	}{
		{"bearer", "Bearer " + token, "", http.StatusOK},
		{"cookie", "", token, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, "", http.StatusUnauthorized},
		{"invalid", "Bearer nope", "", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := RequireSession(auth)(func(c echo.Context) error {
				s, ok := SessionFrom(c)
				if !ok || s.Name != "admin" {
					t.Fatalf("session not injected: %+v", s)
				}
				return c.NoContent(http.StatusOK)
			})

			err := h(c)
			code := rec.Code
			if he, ok := err.(*echo.HTTPError); ok {
				code = he.Code
			}
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestSessionFrom_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := SessionFrom(c); ok {
		t.Fatalf("expected no session")
	}
	c.Set(sessionKey, domain.Session{Name: "x"})
	if s, ok := SessionFrom(c); !ok || s.Name != "x" {
		t.Fatalf("expected stored session")
	}
}
