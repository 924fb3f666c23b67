package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/delgrossoviaggi/bus-booking/internal/auth"
	"github.com/delgrossoviaggi/bus-booking/internal/config"
	"github.com/delgrossoviaggi/bus-booking/internal/utils"
)

// AuthHandler exposes the access gate over HTTP.  There is a single
// shared admin credential; a successful login yields a short-lived
// ADMIN token that replaces the reference UI's in-memory "admin mode"
// flag.  There is no logout: privilege ends when the token expires.
type AuthHandler struct {
	Cfg  config.Config
	Gate *auth.Gate
}

// NewAuthHandler constructs an AuthHandler around the configured gate.
func NewAuthHandler(cfg config.Config, gate *auth.Gate) *AuthHandler {
	if gate == nil {
		panic("nil gate passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Gate: gate}
}

type loginReq struct {
	Secret string `json:"secret"`
}

// Login handles POST /v1/auth/login.  It checks the shared admin
// secret and, on success, returns a signed access token.  A wrong
// secret gets 401 and changes nothing.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	if _, err := h.Gate.Authenticate(req.Secret); err != nil {
		if errors.Is(err, auth.ErrInvalidCredential) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credential"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, "ADMIN", h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":   tok.Token,
		"expires": tok.Exp.Format(time.RFC3339),
		"role":    "ADMIN",
	})
}

// Me handles GET /v1/me on the protected group.  It confirms that the
// presented token still carries the privileged role.
func (h *AuthHandler) Me(c echo.Context) error {
	sess := sessionFrom(c)
	return c.JSON(http.StatusOK, echo.Map{"privileged": sess.Privileged})
}
