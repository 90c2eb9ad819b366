package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bdc/internal/format"
	"bdc/internal/log"
	"bdc/internal/services"
	"bdc/internal/validate"
)

type SiteHandler struct {
	Catalog *services.CatalogService
}

// GET /
func (h *SiteHandler) Home(c *fiber.Ctx) error {
	tab := c.Query("tab", "repuestos")
	if tab != "motocargueros" {
		tab = "repuestos"
	}
	home := h.Catalog.Home(c.UserContext())
	return render(c, "home", fiber.Map{
		"Title":         "BDC | Repuestos y motocargueros",
		"Banners":       home.Banners,
		"Repuestos":     home.Repuestos,
		"Motocargueros": home.Motocargueros,
		"Tab":           tab,
	})
}

// GET /repuestos?categoria=
func (h *SiteHandler) Repuestos(c *fiber.Ctx) error {
	cat, ok := validate.Category(c.Query("categoria"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "categoria"})
		cat = ""
	}
	ctx := c.UserContext()
	return render(c, "repuestos", fiber.Map{
		"Title":      "Repuestos | BDC",
		"Items":      h.Catalog.Repuestos(ctx, cat),
		"Categories": h.Catalog.Categories(ctx),
		"Category":   cat,
	})
}

// GET /motocargueros
func (h *SiteHandler) Motocargueros(c *fiber.Ctx) error {
	return render(c, "motocargueros", fiber.Map{
		"Title": "Motocargueros | BDC",
		"Items": h.Catalog.Motocargueros(c.UserContext()),
	})
}

// GET /buscar?q=
func (h *SiteHandler) Search(c *fiber.Ctx) error {
	raw := c.Query("q")
	q, ok := validate.Q(raw)
	if !ok {
		if raw != "" {
			log.Security(c, "validation.fail", map[string]any{"field": "q"})
		}
		return render(c, "search", fiber.Map{"Title": "Buscar | BDC", "Query": raw, "Invalid": raw != ""})
	}
	res := h.Catalog.Search(c.UserContext(), q)
	log.Info(c, "search", map[string]any{"q": q, "hits": res.Total()})
	return render(c, "search", fiber.Map{"Title": "Buscar | BDC", "Query": q, "Result": res})
}

type card struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Desc     string      `json:"description"`
	ImageURL string      `json:"image_url"`
	Price    string      `json:"price"`
	Specs    [][2]string `json:"specs,omitempty"`
	WhatsApp string      `json:"whatsapp"`
}

// GET /api/v1/destacados?tab=repuestos|motocargueros
// Feeds the home tabs when switching without a reload.
func (h *SiteHandler) Featured(c *fiber.Ctx) error {
	tab := c.Query("tab", "repuestos")
	site, _ := c.Locals("site").(Site)
	ctx := c.UserContext()

	cards := []card{}
	switch tab {
	case "repuestos":
		for _, r := range h.Catalog.FeaturedRepuestos(ctx) {
			cards = append(cards, card{
				ID:       r.ID,
				Name:     r.Name,
				Desc:     r.Description,
				ImageURL: r.ImageURL,
				Price:    format.COP(r.Price),
				WhatsApp: format.WhatsApp(site.WhatsAppNumber, format.ProductMessage(r.Name)),
			})
		}
	case "motocargueros":
		for _, m := range h.Catalog.FeaturedMotocargueros(ctx) {
			cards = append(cards, card{
				ID:       m.ID,
				Name:     m.Name,
				Desc:     m.Description,
				ImageURL: m.ImageURL,
				Price:    format.COP(m.Price),
				Specs:    m.Specs.Rows(),
				WhatsApp: format.WhatsApp(site.WhatsAppNumber, format.ProductMessage(m.Name)),
			})
		}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tab must be repuestos or motocargueros"})
	}
	return c.JSON(fiber.Map{"tab": tab, "items": cards, "more": tab == "repuestos"})
}
