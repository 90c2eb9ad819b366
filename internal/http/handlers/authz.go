package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"bdc/internal/domain"
	applog "bdc/internal/log"
	"bdc/internal/services"
)

const sessionCookie = "sid"

// CookieOpts are the knobs of the session cookie.
type CookieOpts struct {
	TTL    time.Duration
	Secure bool
}

func setSessionCookie(c *fiber.Ctx, sid string, o CookieOpts) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   o.Secure,
		Expires:  time.Now().Add(o.TTL),
	})
}

func clearSessionCookie(c *fiber.Ctx, o CookieOpts) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   o.Secure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

// Session resolves the sid cookie into c.Locals("user") and slides the
// session's expiry. A cookie that no longer maps to a session is cleared.
// Asset requests skip the lookup.
func Session(auth *services.AuthService, o CookieOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAssets(c) {
			return c.Next()
		}
		sid := c.Cookies(sessionCookie)
		if sid == "" {
			return c.Next()
		}
		ctx := c.UserContext()
		u, err := auth.CurrentUser(ctx, sid)
		switch {
		case err == nil:
			if err := auth.Refresh(ctx, sid); err != nil {
				applog.Error(c, "auth.session.refresh.fail", err, nil)
			} else {
				setSessionCookie(c, sid, o)
			}
			c.Locals("user", u)
		case errors.Is(err, domain.ErrNotFound):
			clearSessionCookie(c, o)
		default:
			// Store outage: treat as anonymous for this request only.
			applog.Error(c, "auth.session.lookup.fail", err, nil)
		}
		return c.Next()
	}
}

// AuthRedirect sends anonymous visitors of /dashboard to /login and signed-in
// users away from /login. It must run after Session.
func AuthRedirect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := c.Path()
		u, _ := c.Locals("user").(*domain.User)
		switch {
		case u == nil && strings.HasPrefix(p, "/dashboard"):
			applog.Security(c, "access.denied.dashboard", nil)
			return c.Redirect("/login", fiber.StatusFound)
		case u != nil && (p == "/login" || p == "/login/"):
			return c.Redirect("/dashboard", fiber.StatusFound)
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
