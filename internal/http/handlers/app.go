package handlers

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	applog "bdc/internal/log"
)

// Options tune the parts of the app tests need to change.
type Options struct {
	Engine      *html.Engine
	StaticDir   string
	MediaDir    string // empty disables /media (S3 serves its own URLs)
	GlobalLimit int
	LoginLimit  int
	AccessLog   bool
}

func skipAssets(c *fiber.Ctx) bool {
	p := c.Path()
	return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
}

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(d *Deps, o Options) *fiber.App {
	if o.GlobalLimit <= 0 {
		o.GlobalLimit = 120
	}
	if o.LoginLimit <= 0 {
		o.LoginLimit = 5
	}
	site := SiteFrom(d.Config.Site)

	app := fiber.New(fiber.Config{
		Views: o.Engine,
		// Uploads are capped at 5MiB by MediaService; leave room for the form.
		BodyLimit: int(d.Media.MaxBytes)*4 + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Algo salió mal. Por favor intenta de nuevo."
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
				if code == fiber.StatusNotFound {
					msg = "Página no encontrada"
				} else if code < 500 {
					msg = "Solicitud no válida"
				}
			}
			if code >= 500 {
				applog.Error(c, "server.error", err, nil)
			}
			c.Locals("site", site)
			if rerr := renderError(c, code, msg); rerr != nil {
				return c.Status(code).SendString(msg)
			}
			return nil
		},
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	if o.AccessLog {
		app.Use(logger.New(logger.Config{Next: skipAssets}))
	}
	app.Use(helmet.New(helmet.Config{
		// wa.me links and uploaded images from the S3 public URL
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("site", site)
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        o.GlobalLimit,
		Expiration: time.Minute,
		Next:       skipAssets,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Demasiadas solicitudes")
		},
	}))

	app.Use(Session(d.Auth, d.AuthH.Cookie))
	app.Use(AuthRedirect())

	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   d.AuthH.Cookie.Secure,
		Expiration:     2 * time.Hour,
		Next:           skipAssets,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			if wantsJSON(c) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Sesión de formulario vencida, recarga la página"})
			}
			return renderError(c, fiber.StatusForbidden, "Control de seguridad fallido. Recarga la página e intenta de nuevo.")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	if o.StaticDir != "" {
		app.Static("/static", o.StaticDir, fiber.Static{MaxAge: 3600})
	}
	if o.MediaDir != "" {
		mountMedia(app, o.MediaDir)
	}

	Routes(app, d, o.LoginLimit)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return renderError(c, fiber.StatusNotFound, "Página no encontrada")
	})
	return app
}

// mountMedia serves locally stored uploads and blocks traversal attempts.
func mountMedia(app *fiber.App, dir string) {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
		return c.SendFile(filepath.Join(dir, clean), false)
	})
}

// Routes mounts the public site, auth and dashboard.
func Routes(app *fiber.App, d *Deps, loginLimit int) {
	app.Get("/", d.Site.Home)
	app.Get("/repuestos", d.Site.Repuestos)
	app.Get("/motocargueros", d.Site.Motocargueros)
	app.Get("/buscar", limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|search"
		},
	}), d.Site.Search)

	api := app.Group("/api/v1")
	api.Get("/destacados", d.Site.Featured)

	app.Get("/login", d.AuthH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        loginLimit,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			c.Status(fiber.StatusTooManyRequests)
			return render(c, "login", fiber.Map{"Err": "Demasiados intentos. Intenta más tarde."})
		},
	}), d.AuthH.Login)
	app.Post("/logout", d.AuthH.Logout)

	h := d.Dashboard
	dash := app.Group("/dashboard")
	dash.Get("/", h.Home)

	dash.Get("/repuestos", h.RepuestosPage)
	dash.Post("/repuestos", h.CreateRepuesto)
	dash.Post("/repuestos/:id", h.UpdateRepuesto)
	dash.Post("/repuestos/:id/eliminar", h.DeleteRepuesto)
	dash.Post("/repuestos/:id/activo", h.ToggleRepuestoActive)
	dash.Post("/repuestos/:id/destacado", h.ToggleRepuestoFeatured)

	dash.Get("/motocargueros", h.MotocarguerosPage)
	dash.Get("/motos", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard/motocargueros", fiber.StatusMovedPermanently)
	})
	dash.Post("/motocargueros", h.CreateMotocarguero)
	dash.Post("/motocargueros/:id", h.UpdateMotocarguero)
	dash.Post("/motocargueros/:id/eliminar", h.DeleteMotocarguero)
	dash.Post("/motocargueros/:id/activo", h.ToggleMotocargueroActive)
	dash.Post("/motocargueros/:id/destacado", h.ToggleMotocargueroFeatured)

	dash.Get("/banner", h.BannerPage)
	dash.Post("/banner", h.CreateBanner)
	dash.Post("/banner/orden", h.ReorderBanners)
	dash.Post("/banner/:id", h.UpdateBanner)
	dash.Post("/banner/:id/eliminar", h.DeleteBanner)
	dash.Post("/banner/:id/activo", h.ToggleBannerActive)
	dash.Post("/banner/:id/mover", h.MoveBanner)

	dash.Get("/gallery", h.Gallery)
	dash.Post("/gallery", h.GalleryUpload)
	dash.Post("/gallery/eliminar", h.GalleryDelete)
	dash.Post("/upload", h.Upload)
}
