package handlers

import (
	"errors"

	"bdc/internal/log"
	"bdc/internal/services"
	"bdc/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const badCredsMsg = "Correo o contraseña incorrectos"

type AuthHandler struct {
	Auth   *services.AuthService
	Cookie CookieOpts
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) loginFailed(c *fiber.Ctx, email, reason string) error {
	log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": reason})
	c.Status(fiber.StatusUnauthorized)
	return render(c, "login", fiber.Map{"Err": badCredsMsg, "Email": email})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email, okEmail := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")
	if !okEmail {
		return h.loginFailed(c, c.FormValue("email"), "bad_format")
	}
	if !validate.Password(pass) {
		return h.loginFailed(c, email, "bad_password_format")
	}

	// An old sid is dropped; login always opens a fresh session.
	if old := c.Cookies(sessionCookie); old != "" {
		_ = h.Auth.Logout(c.UserContext(), old)
	}
	sid, u, err := h.Auth.Login(c.UserContext(), email, pass)
	if errors.Is(err, services.ErrBadCreds) {
		return h.loginFailed(c, email, "bad_credentials")
	}
	if err != nil {
		log.Error(c, "auth.login.error", err, map[string]any{"email": email})
		c.Status(fiber.StatusInternalServerError)
		return render(c, "login", fiber.Map{"Err": "No pudimos iniciar sesión, intenta de nuevo", "Email": email})
	}

	setSessionCookie(c, sid, h.Cookie)
	c.Locals("user", u)
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies(sessionCookie); sid != "" {
		if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
			log.Error(c, "auth.logout.fail", err, nil)
		}
	}
	clearSessionCookie(c, h.Cookie)
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/", fiber.StatusSeeOther)
}
