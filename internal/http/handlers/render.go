package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"bdc/internal/config"
	"bdc/internal/domain"
	"bdc/internal/format"
)

// Site is what every page needs from the configuration.
type Site struct {
	WhatsAppNumber  string
	WhatsAppMessage string
	BannerInterval  int // milliseconds
}

func SiteFrom(c config.SiteConfig) Site {
	return Site{
		WhatsAppNumber:  format.Digits(c.WhatsAppNumber),
		WhatsAppMessage: c.WhatsAppMessage,
		BannerInterval:  int(c.BannerInterval.Milliseconds()),
	}
}

// NewEngine loads the templates under dir with the view helpers registered.
func NewEngine(dir string, reload bool) *html.Engine {
	engine := html.New(dir, ".html")
	engine.Reload(reload)
	engine.AddFunc("price", format.COP)
	engine.AddFunc("whatsapp", format.WhatsApp)
	engine.AddFunc("productMessage", format.ProductMessage)
	engine.AddFunc("card", func(item, site any) map[string]any {
		s, _ := site.(Site)
		return map[string]any{"Item": item, "Wa": s.WhatsAppNumber}
	})
	engine.AddFunc("dict", func(kv ...any) map[string]any {
		m := make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				m[k] = kv[i+1]
			}
		}
		return m
	})
	engine.AddFunc("hasPrefix", strings.HasPrefix)
	engine.AddFunc("add", func(a, b int) int { return a + b })
	engine.AddFunc("sub", func(a, b int) int { return a - b })
	engine.AddFunc("priceInput", func(p *float64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	})
	return engine
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		data["User"] = u
	}
	if tok, ok := c.Locals("CSRFToken").(string); ok && tok != "" {
		data["CSRFToken"] = tok
	} else if tok := c.Cookies("csrf_"); tok != "" {
		data["CSRFToken"] = tok
	}
	if s, ok := c.Locals("site").(Site); ok {
		data["Site"] = s
	}
	if _, ok := data["Flash"]; !ok {
		if f := takeFlash(c); f != nil {
			data["Flash"] = f
		}
	}
	data["Path"] = c.Path()
	return c.Render(tmpl, data)
}

// renderError shows the friendly error page.
func renderError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("notfound", fiber.Map{"Message": msg, "Site": c.Locals("site")})
}
