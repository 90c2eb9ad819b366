package handlers

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"bdc/internal/domain"
	"bdc/internal/services"
	"bdc/internal/storage"
	"bdc/internal/validate"
)

const flashCookie = "flash"

// Flash is the one-shot toast shown after a redirect.
type Flash struct {
	Kind string // success | error
	Msg  string
}

func setFlash(c *fiber.Ctx, kind, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(time.Minute),
	})
}

func takeFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{Name: flashCookie, Value: "", Path: "/", Expires: time.Now().Add(-time.Hour)})
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(v, "|")
	if !ok || (kind != "success" && kind != "error") {
		return nil
	}
	return &Flash{Kind: kind, Msg: msg}
}

// wantsJSON is true for the dashboard's fetch calls.
func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

// done answers a successful mutation: JSON for fetch callers, redirect + toast otherwise.
func done(c *fiber.Ctx, back, msg string, extra fiber.Map) error {
	if wantsJSON(c) {
		body := fiber.Map{"success": true, "message": msg}
		for k, v := range extra {
			body[k] = v
		}
		return c.JSON(body)
	}
	setFlash(c, "success", msg)
	return c.Redirect(back, fiber.StatusSeeOther)
}

func fail(c *fiber.Ctx, back string, status int, msg string) error {
	if wantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
	}
	setFlash(c, "error", msg)
	return c.Redirect(back, fiber.StatusSeeOther)
}

// statusFor maps domain errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, services.ErrNotImage),
		errors.Is(err, storage.ErrBadName):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrTooLarge):
		return fiber.StatusRequestEntityTooLarge
	default:
		return fiber.StatusInternalServerError
	}
}

// userMessage turns an error into Spanish text that is safe to show.
// fallback is used for anything unexpected.
func userMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, services.ErrNoImage):
		return "Debes subir una imagen"
	case errors.Is(err, domain.ErrNotFound):
		return "El registro ya no existe"
	case errors.Is(err, services.ErrNotImage):
		return "El archivo debe ser una imagen"
	case errors.Is(err, services.ErrTooLarge):
		return "La imagen no debe superar 5MB"
	case errors.Is(err, storage.ErrBadName):
		return "Nombre de archivo no válido"
	case errors.Is(err, domain.ErrInvalidInput):
		if strings.HasPrefix(err.Error(), domain.ErrInvalidInput.Error()+": El campo") {
			return validate.Message(err)
		}
		return "Datos no válidos"
	default:
		return fallback
	}
}

// formBool reads an HTML checkbox or a "true"/"false" field.
func formBool(c *fiber.Ctx, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.FormValue(key))) {
	case "on", "true", "1", "si", "sí":
		return true
	}
	return false
}
