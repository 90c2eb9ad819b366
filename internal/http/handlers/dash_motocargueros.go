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

const motocarguerosPath = "/dashboard/motocargueros"

func (h *DashboardHandler) motocargueroInput(c *fiber.Ctx) (domain.MotocargueroInput, error) {
	price, okPrice := validate.Price(c.FormValue("price"))
	if !okPrice {
		return domain.MotocargueroInput{}, formInvalid("precio")
	}
	img, err := h.imageField(c, storage.BucketProducts, "image", "image_url")
	if err != nil {
		return domain.MotocargueroInput{}, err
	}
	return domain.MotocargueroInput{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
		ImageURL:    img,
		Price:       price,
		Motor:       strings.TrimSpace(c.FormValue("motor")),
		Carga:       strings.TrimSpace(c.FormValue("carga")),
		Combustible: strings.TrimSpace(c.FormValue("combustible")),
		IsActive:    formBool(c, "is_active"),
		IsFeatured:  formBool(c, "is_featured"),
	}, nil
}

// GET /dashboard/motocargueros[?editar=id]
func (h *DashboardHandler) MotocarguerosPage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	items, err := h.Motocargueros.List(ctx)
	if err != nil {
		applog.Error(c, "dashboard.motocargueros.list.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "No pudimos cargar los motocargueros")
	}
	data := fiber.Map{"Title": "Motocargueros | BDC", "Items": items}
	if raw := c.Query("editar"); raw != "" {
		if id, ok := validate.ID(raw); ok {
			if p, err := h.Motocargueros.Get(ctx, id); err == nil {
				data["Edit"] = p
			}
		}
	}
	return render(c, "dash_motocargueros", data)
}

// POST /dashboard/motocargueros
func (h *DashboardHandler) CreateMotocarguero(c *fiber.Ctx) error {
	in, err := h.motocargueroInput(c)
	if err == nil {
		var p domain.Motocarguero
		if p, err = h.Motocargueros.Create(c.UserContext(), in); err == nil {
			applog.Audit(c, "dashboard.motocargueros.create", map[string]any{"id": p.ID, "name": p.Name})
			return done(c, motocarguerosPath, "Motocarguero creado correctamente", fiber.Map{"item": p})
		}
	}
	h.discardUploads(c)
	if !errors.Is(err, domain.ErrInvalidInput) {
		applog.Error(c, "dashboard.motocargueros.create.fail", err, nil)
	}
	return fail(c, motocarguerosPath, statusFor(err), userMessage(err, "Error al crear"))
}

// POST /dashboard/motocargueros/:id
func (h *DashboardHandler) UpdateMotocarguero(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, motocarguerosPath, fiber.StatusNotFound, userMessage(err, genericErr))
	}
	in, err := h.motocargueroInput(c)
	if err == nil {
		if err = h.Motocargueros.Update(c.UserContext(), id, in); err == nil {
			applog.Audit(c, "dashboard.motocargueros.update", map[string]any{"id": id})
			p, _ := h.Motocargueros.Get(c.UserContext(), id)
			return done(c, motocarguerosPath, "Motocarguero actualizado correctamente", fiber.Map{"item": p})
		}
	}
	h.discardUploads(c)
	if !errors.Is(err, domain.ErrInvalidInput) {
		applog.Error(c, "dashboard.motocargueros.update.fail", err, map[string]any{"id": id})
	}
	return fail(c, motocarguerosPath+"?editar="+id, statusFor(err), userMessage(err, "Error al actualizar"))
}

// POST /dashboard/motocargueros/:id/eliminar
func (h *DashboardHandler) DeleteMotocarguero(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err == nil {
		err = h.Motocargueros.Delete(c.UserContext(), id)
	}
	if err != nil {
		applog.Error(c, "dashboard.motocargueros.delete.fail", err, map[string]any{"id": c.Params("id")})
		return fail(c, motocarguerosPath, statusFor(err), userMessage(err, "Error al eliminar"))
	}
	applog.Audit(c, "dashboard.motocargueros.delete", map[string]any{"id": id})
	return done(c, motocarguerosPath, "Motocarguero eliminado correctamente", fiber.Map{"id": id})
}

// POST /dashboard/motocargueros/:id/activo
func (h *DashboardHandler) ToggleMotocargueroActive(c *fiber.Ctx) error {
	return toggle(c, "dashboard.motocargueros.active", motocarguerosPath, h.Motocargueros.SetActive)
}

// POST /dashboard/motocargueros/:id/destacado
func (h *DashboardHandler) ToggleMotocargueroFeatured(c *fiber.Ctx) error {
	return toggle(c, "dashboard.motocargueros.featured", motocarguerosPath, h.Motocargueros.SetFeatured)
}
