package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/andypowell00/food-notes-ui/internal/api/metrics"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/login"

// publicPrefixes are never gated. Each matches the exact path or any path
// below it.
var publicPrefixes = []string{
	LoginPath,
	"/api",
	"/static",
	"/public",
	"/favicon.ico",
	"/health",
	"/metrics",
	"/swagger",
}

// IsPublicPath reports whether path bypasses the gate.
func IsPublicPath(path string) bool {
	for _, p := range publicPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// GateConfig configures the page gate.
type GateConfig struct {
	Auth ports.AuthService
	// Bypass lets every request through without looking at the cookie.
	Bypass bool
	// SecureCookie sets the Secure flag on renewed cookies.
	SecureCookie bool
	Log          zerolog.Logger
}

// Gate guards page routes. Requests without a valid session are redirected
// to LoginPath with the original location in callbackUrl. Valid sessions are
// renewed according to the AuthService policy.
func Gate(cfg GateConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if cfg.Bypass || IsPublicPath(req.URL.Path) {
				return next(c)
			}

			token := TokenFromRequest(c)
			sess, err := cfg.Auth.Authenticate(req.Context(), token)
			if err != nil {
				if token != "" {
					ClearSessionCookie(c, cfg.SecureCookie)
				}
				metrics.GateRedirectsTotal.Inc()
				cfg.Log.Debug().Err(err).Str("path", req.URL.Path).Msg("redirecting to login")
				return c.Redirect(http.StatusFound, LoginURL(req.URL.RequestURI()))
			}

			fresh, renewedSess, renewed, err := cfg.Auth.Renew(req.Context(), sess)
			switch {
			case err != nil:
				cfg.Log.Warn().Err(err).Msg("session renewal failed")
			case renewed:
				SetSessionCookie(c, fresh, renewedSess, cfg.SecureCookie)
				metrics.SessionsRenewedTotal.Inc()
				sess = renewedSess
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// LoginURL builds the login location carrying callback.
func LoginURL(callback string) string {
	if callback == "" || callback == "/" {
		return LoginPath
	}
	return LoginPath + "?callbackUrl=" + url.QueryEscape(callback)
}

// SafeCallback returns callback when it is a local path, otherwise "/".
func SafeCallback(callback string) string {
	if callback == "" || !strings.HasPrefix(callback, "/") || strings.HasPrefix(callback, "//") || strings.Contains(callback, `\`) {
		return "/"
	}
	return callback
}
