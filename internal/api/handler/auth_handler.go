package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/andypowell00/food-notes-ui/internal/api/metrics"
	"github.com/andypowell00/food-notes-ui/internal/api/middleware"
	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

// msgInvalidCredentials is the only message a failed sign-in ever shows.
const msgInvalidCredentials = "Invalid credentials"

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
	log          zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie, log: log}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type authResponse struct {
	Token string      `json:"token,omitempty"`
	User  domain.User `json:"user"`
}

type sessionResponse struct {
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type loginPage struct {
	CallbackURL string
	Username    string
	Error       string
}

// signIn runs the credential check and, on success, sets the session cookie.
func (h *AuthHandler) signIn(c echo.Context, username, password string) (string, domain.Session, error) {
	token, sess, err := h.authService.Login(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			h.log.Info().Str("ip", c.RealIP()).Msg("login rejected")
		}
		return "", domain.Session{}, err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	middleware.SetSessionCookie(c, token, sess, h.secureCookie)
	return token, sess, nil
}

// Login authenticates the configured account and returns a session token.
// The token is also set as an HttpOnly cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	token, sess, err := h.signIn(c, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgInvalidCredentials})
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: sess.User()})
}

// Logout revokes the current session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.revoke(c)
	return c.NoContent(http.StatusNoContent)
}

// Session reports who is signed in.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		var err error
		sess, err = h.authService.Authenticate(c.Request().Context(), middleware.TokenFromRequest(c))
		if err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, sessionResponse{User: sess.User(), ExpiresAt: sess.ExpiresAt})
}

// LoginPage renders the sign-in form. A visitor who already holds a valid
// session goes straight to the callback.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	callback := middleware.SafeCallback(c.QueryParam("callbackUrl"))
	if token := middleware.TokenFromRequest(c); token != "" {
		if _, err := h.authService.Authenticate(c.Request().Context(), token); err == nil {
			return c.Redirect(http.StatusFound, callback)
		}
	}
	return c.Render(http.StatusOK, "login.html", loginPage{CallbackURL: callback})
}

// LoginSubmit handles the sign-in form and redirects to the callback.
func (h *AuthHandler) LoginSubmit(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		req = loginRequest{}
	}
	callback := middleware.SafeCallback(c.FormValue("callbackUrl"))

	if _, _, err := h.signIn(c, req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Render(http.StatusUnauthorized, "login.html", loginPage{
				CallbackURL: callback,
				Username:    req.Username,
				Error:       msgInvalidCredentials,
			})
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, callback)
}

// LogoutPage signs out from the page and returns to the login form.
func (h *AuthHandler) LogoutPage(c echo.Context) error {
	h.revoke(c)
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (h *AuthHandler) revoke(c echo.Context) {
	if token := middleware.TokenFromRequest(c); token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("session revocation failed")
		}
	}
	middleware.ClearSessionCookie(c, h.secureCookie)
}
