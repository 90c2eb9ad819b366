package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bdc/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const repuestoCols = `id, name, description, image_url, price, stock, category,
    is_active, is_featured, created_at, updated_at`

type RepuestoRepo struct{ db *sqlx.DB }

func NewRepuestoRepo(db *sqlx.DB) *RepuestoRepo { return &RepuestoRepo{db: db} }

// List returns every repuesto for the dashboard, newest first.
func (r *RepuestoRepo) List(ctx context.Context) ([]domain.Repuesto, error) {
	out := []domain.Repuesto{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+repuestoCols+` FROM repuestos ORDER BY created_at DESC`)
	return out, err
}

// ListActive returns the public catalog. An empty category means all of them.
func (r *RepuestoRepo) ListActive(ctx context.Context, category string) ([]domain.Repuesto, error) {
	q := `SELECT ` + repuestoCols + ` FROM repuestos WHERE is_active = ?`
	args := []any{true}
	if category != "" {
		q += ` AND LOWER(category) = LOWER(?)`
		args = append(args, category)
	}
	q += ` ORDER BY created_at DESC`

	out := []domain.Repuesto{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...)
	return out, err
}

func (r *RepuestoRepo) ListFeatured(ctx context.Context, limit int) ([]domain.Repuesto, error) {
	out := []domain.Repuesto{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT `+repuestoCols+`
  FROM repuestos
  WHERE is_active = ? AND is_featured = ?
  ORDER BY created_at DESC
  LIMIT ?`), true, true, limit)
	return out, err
}

// Categories lists the distinct categories used by active repuestos.
func (r *RepuestoRepo) Categories(ctx context.Context) ([]string, error) {
	out := []string{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT DISTINCT category FROM repuestos
  WHERE is_active = ? AND category <> ''
  ORDER BY category`), true)
	return out, err
}

func (r *RepuestoRepo) Search(ctx context.Context, q string, limit int) ([]domain.Repuesto, error) {
	like := containsPattern(q)
	out := []domain.Repuesto{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT `+repuestoCols+`
  FROM repuestos
  WHERE is_active = ?
    AND (LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\')
  ORDER BY created_at DESC
  LIMIT ?`), true, like, like, like, limit)
	return out, err
}

func (r *RepuestoRepo) Get(ctx context.Context, id string) (domain.Repuesto, error) {
	var p domain.Repuesto
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT `+repuestoCols+` FROM repuestos WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.ErrNotFound
	}
	return p, err
}

func (r *RepuestoRepo) Create(ctx context.Context, in domain.RepuestoInput) (domain.Repuesto, error) {
	return r.insert(ctx, in, now())
}

func (r *RepuestoRepo) insert(ctx context.Context, in domain.RepuestoInput, t time.Time) (domain.Repuesto, error) {
	p := domain.Repuesto{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		IsActive:    in.IsActive,
		IsFeatured:  in.IsFeatured,
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	_, err := r.db.NamedExecContext(ctx, `
  INSERT INTO repuestos(`+repuestoCols+`)
  VALUES (:id, :name, :description, :image_url, :price, :stock, :category,
    :is_active, :is_featured, :created_at, :updated_at)`, p)
	if err != nil {
		return domain.Repuesto{}, err
	}
	return p, nil
}

// Update replaces every editable field of the row.
func (r *RepuestoRepo) Update(ctx context.Context, id string, in domain.RepuestoInput) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
  UPDATE repuestos
  SET name = ?, description = ?, image_url = ?, price = ?, stock = ?, category = ?,
      is_active = ?, is_featured = ?, updated_at = ?
  WHERE id = ?`),
		in.Name, in.Description, in.ImageURL, in.Price, in.Stock, in.Category,
		in.IsActive, in.IsFeatured, now(), id)
	return mustAffect(res, err)
}

func (r *RepuestoRepo) SetActive(ctx context.Context, id string, v bool) error {
	return setFlag(ctx, r.db, "repuestos", "is_active", id, v)
}

func (r *RepuestoRepo) SetFeatured(ctx context.Context, id string, v bool) error {
	return setFlag(ctx, r.db, "repuestos", "is_featured", id, v)
}

func (r *RepuestoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM repuestos WHERE id = ?`), id)
	return mustAffect(res, err)
}

func (r *RepuestoRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM repuestos WHERE is_active = ?`), true)
	return n, err
}
