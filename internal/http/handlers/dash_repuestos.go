package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bdc/internal/domain"
	applog "bdc/internal/log"
	"bdc/internal/storage"
	"bdc/internal/validate"
)

const repuestosPath = "/dashboard/repuestos"

func (h *DashboardHandler) repuestoInput(c *fiber.Ctx) (domain.RepuestoInput, error) {
	price, okPrice := validate.Price(c.FormValue("price"))
	if !okPrice {
		return domain.RepuestoInput{}, formInvalid("precio")
	}
	stock, okStock := validate.Stock(c.FormValue("stock"))
	if !okStock {
		return domain.RepuestoInput{}, formInvalid("stock")
	}
	img, err := h.imageField(c, storage.BucketProducts, "image", "image_url")
	if err != nil {
		return domain.RepuestoInput{}, err
	}
	return domain.RepuestoInput{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
		ImageURL:    img,
		Price:       price,
		Stock:       stock,
		Category:    strings.TrimSpace(c.FormValue("category")),
		IsActive:    formBool(c, "is_active"),
		IsFeatured:  formBool(c, "is_featured"),
	}, nil
}

// GET /dashboard/repuestos[?editar=id]
func (h *DashboardHandler) RepuestosPage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	items, err := h.Repuestos.List(ctx)
	if err != nil {
		applog.Error(c, "dashboard.repuestos.list.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "No pudimos cargar los repuestos")
	}
	data := fiber.Map{"Title": "Repuestos | BDC", "Items": items}
	if raw := c.Query("editar"); raw != "" {
		if id, ok := validate.ID(raw); ok {
			if p, err := h.Repuestos.Get(ctx, id); err == nil {
				data["Edit"] = p
			}
		}
	}
	return render(c, "dash_repuestos", data)
}

// POST /dashboard/repuestos
func (h *DashboardHandler) CreateRepuesto(c *fiber.Ctx) error {
	in, err := h.repuestoInput(c)
	if err == nil {
		var p domain.Repuesto
		if p, err = h.Repuestos.Create(c.UserContext(), in); err == nil {
			applog.Audit(c, "dashboard.repuestos.create", map[string]any{"id": p.ID, "name": p.Name})
			return done(c, repuestosPath, "Repuesto creado correctamente", fiber.Map{"item": p})
		}
	}
	h.discardUploads(c)
	if !errors.Is(err, domain.ErrInvalidInput) {
		applog.Error(c, "dashboard.repuestos.create.fail", err, nil)
	}
	return fail(c, repuestosPath, statusFor(err), userMessage(err, "Error al crear"))
}

// POST /dashboard/repuestos/:id
func (h *DashboardHandler) UpdateRepuesto(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, repuestosPath, fiber.StatusNotFound, userMessage(err, genericErr))
	}
	in, err := h.repuestoInput(c)
	if err == nil {
		if err = h.Repuestos.Update(c.UserContext(), id, in); err == nil {
			applog.Audit(c, "dashboard.repuestos.update", map[string]any{"id": id})
			p, _ := h.Repuestos.Get(c.UserContext(), id)
			return done(c, repuestosPath, "Repuesto actualizado correctamente", fiber.Map{"item": p})
		}
	}
	h.discardUploads(c)
	if !errors.Is(err, domain.ErrInvalidInput) {
		applog.Error(c, "dashboard.repuestos.update.fail", err, map[string]any{"id": id})
	}
	return fail(c, repuestosPath+"?editar="+id, statusFor(err), userMessage(err, "Error al actualizar"))
}

// POST /dashboard/repuestos/:id/eliminar
func (h *DashboardHandler) DeleteRepuesto(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err == nil {
		err = h.Repuestos.Delete(c.UserContext(), id)
	}
	if err != nil {
		applog.Error(c, "dashboard.repuestos.delete.fail", err, map[string]any{"id": c.Params("id")})
		return fail(c, repuestosPath, statusFor(err), userMessage(err, "Error al eliminar"))
	}
	applog.Audit(c, "dashboard.repuestos.delete", map[string]any{"id": id})
	return done(c, repuestosPath, "Repuesto eliminado correctamente", fiber.Map{"id": id})
}

// POST /dashboard/repuestos/:id/activo
func (h *DashboardHandler) ToggleRepuestoActive(c *fiber.Ctx) error {
	return toggle(c, "dashboard.repuestos.active", repuestosPath, h.Repuestos.SetActive)
}

// POST /dashboard/repuestos/:id/destacado
func (h *DashboardHandler) ToggleRepuestoFeatured(c *fiber.Ctx) error {
	return toggle(c, "dashboard.repuestos.featured", repuestosPath, h.Repuestos.SetFeatured)
}
