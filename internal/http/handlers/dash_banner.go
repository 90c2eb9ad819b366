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

const bannerPath = "/dashboard/banner"

func (h *DashboardHandler) bannerInput(c *fiber.Ctx) (domain.BannerInput, error) {
	img, err := h.imageField(c, storage.BucketBanners, "image", "image_url")
	if err != nil {
		return domain.BannerInput{}, err
	}
	mobile, err := h.imageField(c, storage.BucketBanners, "image_mobile", "image_url_mobile")
	if err != nil {
		return domain.BannerInput{}, err
	}
	return domain.BannerInput{
		ImageURL:       img,
		ImageURLMobile: mobile,
		Title:          strings.TrimSpace(c.FormValue("title")),
		Subtitle:       strings.TrimSpace(c.FormValue("subtitle")),
		ShowTitle:      formBool(c, "show_title"),
		ShowSubtitle:   formBool(c, "show_subtitle"),
		IsActive:       formBool(c, "is_active"),
	}, nil
}

// GET /dashboard/banner[?editar=id]
func (h *DashboardHandler) BannerPage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	items, err := h.Banners.List(ctx)
	if err != nil {
		applog.Error(c, "dashboard.banner.list.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "No pudimos cargar los banners")
	}
	data := fiber.Map{"Title": "Banner | BDC", "Items": items}
	if raw := c.Query("editar"); raw != "" {
		if id, ok := validate.ID(raw); ok {
			if b, err := h.Banners.Get(ctx, id); err == nil {
				data["Edit"] = b
			}
		}
	}
	return render(c, "dash_banner", data)
}

// POST /dashboard/banner
func (h *DashboardHandler) CreateBanner(c *fiber.Ctx) error {
	in, err := h.bannerInput(c)
	if err == nil {
		var b domain.BannerImage
		if b, err = h.Banners.Create(c.UserContext(), in); err == nil {
			applog.Audit(c, "dashboard.banner.create", map[string]any{"id": b.ID, "order": b.DisplayOrder})
			return done(c, bannerPath, "Banner creado correctamente", fiber.Map{"item": b})
		}
	}
	h.discardUploads(c)
	if !errors.Is(err, domain.ErrInvalidInput) {
		applog.Error(c, "dashboard.banner.create.fail", err, nil)
	}
	return fail(c, bannerPath, statusFor(err), userMessage(err, "Error al crear"))
}

// POST /dashboard/banner/:id
func (h *DashboardHandler) UpdateBanner(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, bannerPath, fiber.StatusNotFound, userMessage(err, genericErr))
	}
	in, err := h.bannerInput(c)
	if err == nil {
		if err = h.Banners.Update(c.UserContext(), id, in); err == nil {
			applog.Audit(c, "dashboard.banner.update", map[string]any{"id": id})
			b, _ := h.Banners.Get(c.UserContext(), id)
			return done(c, bannerPath, "Banner actualizado correctamente", fiber.Map{"item": b})
		}
	}
	h.discardUploads(c)
	if !errors.Is(err, domain.ErrInvalidInput) {
		applog.Error(c, "dashboard.banner.update.fail", err, map[string]any{"id": id})
	}
	return fail(c, bannerPath+"?editar="+id, statusFor(err), userMessage(err, "Error al actualizar"))
}

// POST /dashboard/banner/:id/eliminar
func (h *DashboardHandler) DeleteBanner(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err == nil {
		err = h.Banners.Delete(c.UserContext(), id)
	}
	if err != nil {
		applog.Error(c, "dashboard.banner.delete.fail", err, map[string]any{"id": c.Params("id")})
		return fail(c, bannerPath, statusFor(err), userMessage(err, "Error al eliminar"))
	}
	applog.Audit(c, "dashboard.banner.delete", map[string]any{"id": id})
	return done(c, bannerPath, "Banner eliminado correctamente", fiber.Map{"id": id})
}

// POST /dashboard/banner/:id/activo
func (h *DashboardHandler) ToggleBannerActive(c *fiber.Ctx) error {
	return toggle(c, "dashboard.banner.active", bannerPath, h.Banners.SetActive)
}

// POST /dashboard/banner/:id/mover with dir=up|down
func (h *DashboardHandler) MoveBanner(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, bannerPath, fiber.StatusNotFound, userMessage(err, genericErr))
	}
	dir := c.FormValue("dir")
	if dir != "up" && dir != "down" {
		return fail(c, bannerPath, fiber.StatusBadRequest, "Dirección no válida")
	}
	if err := h.Banners.Move(c.UserContext(), id, dir == "up"); err != nil {
		applog.Error(c, "dashboard.banner.move.fail", err, map[string]any{"id": id})
		return fail(c, bannerPath, statusFor(err), userMessage(err, "Error al reordenar"))
	}
	applog.Audit(c, "dashboard.banner.move", map[string]any{"id": id, "dir": dir})
	return done(c, bannerPath, "Orden actualizado", nil)
}

// POST /dashboard/banner/orden with ids as a comma separated list.
func (h *DashboardHandler) ReorderBanners(c *fiber.Ctx) error {
	ids, ok := validate.IDs(strings.Split(c.FormValue("ids"), ","))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "ids"})
		return fail(c, bannerPath, fiber.StatusBadRequest, "Orden no válido")
	}
	if err := h.Banners.Reorder(c.UserContext(), ids); err != nil {
		applog.Error(c, "dashboard.banner.reorder.fail", err, nil)
		return fail(c, bannerPath, statusFor(err), userMessage(err, "Error al reordenar"))
	}
	applog.Audit(c, "dashboard.banner.reorder", map[string]any{"ids": ids})
	return done(c, bannerPath, "Orden actualizado", fiber.Map{"ids": ids})
}
