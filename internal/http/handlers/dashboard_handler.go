package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bdc/internal/domain"
	applog "bdc/internal/log"
	"bdc/internal/services"
	"bdc/internal/storage"
	"bdc/internal/validate"
)

// DashboardHandler serves everything under /dashboard. Routes are only reachable
// through AuthRedirect, so every request here has a user.
type DashboardHandler struct {
	Repuestos     *services.RepuestoService
	Motocargueros *services.MotocargueroService
	Banners       *services.BannerService
	Media         *services.MediaService
	Overview      *services.OverviewService
}

const genericErr = "Ocurrió un error, intenta de nuevo"

// GET /dashboard
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	o, err := h.Overview.Counts(c.UserContext())
	if err != nil {
		applog.Error(c, "dashboard.overview.fail", err, nil)
	}
	return render(c, "dashboard", fiber.Map{"Title": "Dashboard | BDC", "Overview": o})
}

// formInvalid builds an ErrInvalidInput carrying a message for the admin.
func formInvalid(field string) error {
	return fmt.Errorf("%w: El campo %s no es válido", domain.ErrInvalidInput, field)
}

func pathID(c *fiber.Ctx) (string, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return "", domain.ErrNotFound
	}
	return id, nil
}

// imageField returns the uploaded file's URL when the form carries one in
// fileKey, else the text field urlKey set by the upload widget.
func (h *DashboardHandler) imageField(c *fiber.Ctx, bucket, fileKey, urlKey string) (string, error) {
	fh, err := c.FormFile(fileKey)
	if err != nil || fh == nil || fh.Size == 0 {
		return strings.TrimSpace(c.FormValue(urlKey)), nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	url, err := h.Media.Upload(c.UserContext(), bucket, fh.Filename, fh.Header.Get(fiber.HeaderContentType), f)
	if err != nil {
		return "", err
	}
	applog.Audit(c, "dashboard.media.upload", map[string]any{"bucket": bucket, "url": url})
	uploaded, _ := c.Locals(uploadsKey).([]string)
	c.Locals(uploadsKey, append(uploaded, url))
	return url, nil
}

const uploadsKey = "form_uploads"

// discardUploads deletes the files imageField stored for a form that was then
// rejected, so they do not linger in the gallery unreferenced.
func (h *DashboardHandler) discardUploads(c *fiber.Ctx) {
	urls, _ := c.Locals(uploadsKey).([]string)
	for _, u := range urls {
		if err := h.Media.Delete(c.UserContext(), "", u); err != nil {
			applog.Error(c, "dashboard.media.discard.fail", err, map[string]any{"url": u})
			continue
		}
		applog.Audit(c, "dashboard.media.discard", map[string]any{"url": u})
	}
}

// toggle handles the is_active / is_featured switches.
func toggle(c *fiber.Ctx, action, back string, set func(ctx context.Context, id string, v bool) error) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, back, fiber.StatusNotFound, userMessage(err, genericErr))
	}
	v, err := strconv.ParseBool(c.FormValue("value"))
	if err != nil {
		return fail(c, back, fiber.StatusBadRequest, "Valor no válido")
	}
	if err := set(c.UserContext(), id, v); err != nil {
		applog.Error(c, action+".fail", err, map[string]any{"id": id})
		return fail(c, back, statusFor(err), userMessage(err, "Error al actualizar"))
	}
	applog.Audit(c, action, map[string]any{"id": id, "value": v})
	return done(c, back, "Cambios guardados", fiber.Map{"id": id, "value": v})
}

// GET /dashboard/gallery
func (h *DashboardHandler) Gallery(c *fiber.Ctx) error {
	objs, err := h.Media.Gallery(c.UserContext())
	if err != nil {
		applog.Error(c, "dashboard.gallery.list.fail", err, nil)
		objs = []storage.Object{}
	}
	return render(c, "dash_gallery", fiber.Map{
		"Title":   "Galería | BDC",
		"Images":  objs,
		"Buckets": storage.Buckets,
		"Failed":  err != nil,
	})
}

// POST /dashboard/gallery accepts one or more files in "files".
func (h *DashboardHandler) GalleryUpload(c *fiber.Ctx) error {
	const back = "/dashboard/gallery"
	bucket := c.FormValue("bucket", storage.BucketProducts)
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		return fail(c, back, fiber.StatusBadRequest, "Selecciona al menos una imagen")
	}
	urls := []string{}
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			return fail(c, back, fiber.StatusBadRequest, genericErr)
		}
		url, err := h.Media.Upload(c.UserContext(), bucket, fh.Filename, fh.Header.Get(fiber.HeaderContentType), f)
		_ = f.Close()
		if err != nil {
			applog.Error(c, "dashboard.gallery.upload.fail", err, map[string]any{"file": fh.Filename})
			return fail(c, back, statusFor(err), userMessage(err, "Error al subir la imagen"))
		}
		urls = append(urls, url)
	}
	applog.Audit(c, "dashboard.gallery.upload", map[string]any{"bucket": bucket, "count": len(urls)})
	return done(c, back, fmt.Sprintf("%d imagen(es) subida(s) correctamente", len(urls)), fiber.Map{"urls": urls})
}

// POST /dashboard/gallery/eliminar with repeated "urls" fields.
func (h *DashboardHandler) GalleryDelete(c *fiber.Ctx) error {
	const back = "/dashboard/gallery"
	var urls []string
	for _, v := range c.Context().PostArgs().PeekMulti("urls") {
		urls = append(urls, string(v))
	}
	if form, err := c.MultipartForm(); err == nil {
		urls = append(urls, form.Value["urls"]...)
	}
	if len(urls) == 0 {
		return fail(c, back, fiber.StatusBadRequest, "No seleccionaste imágenes")
	}
	n, err := h.Media.DeleteMany(c.UserContext(), urls)
	if err != nil {
		applog.Error(c, "dashboard.gallery.delete.fail", err, map[string]any{"deleted": n})
		return fail(c, back, statusFor(err), userMessage(err, "Error al eliminar"))
	}
	applog.Audit(c, "dashboard.gallery.delete", map[string]any{"count": n})
	return done(c, back, fmt.Sprintf("%d imagen(es) eliminada(s)", n), fiber.Map{"deleted": n})
}

// POST /dashboard/upload is the JSON endpoint of the image-upload widget.
func (h *DashboardHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "No se envió ningún archivo"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": genericErr})
	}
	defer f.Close()

	bucket := c.FormValue("bucket", storage.BucketProducts)
	url, err := h.Media.Upload(c.UserContext(), bucket, fh.Filename, fh.Header.Get(fiber.HeaderContentType), f)
	if err != nil {
		if statusFor(err) == fiber.StatusInternalServerError {
			applog.Error(c, "dashboard.media.upload.fail", err, map[string]any{"file": fh.Filename})
		}
		return c.Status(statusFor(err)).JSON(fiber.Map{"success": false, "error": userMessage(err, "Error al subir la imagen")})
	}
	applog.Audit(c, "dashboard.media.upload", map[string]any{"bucket": bucket, "url": url})
	return c.JSON(fiber.Map{"success": true, "url": url})
}
