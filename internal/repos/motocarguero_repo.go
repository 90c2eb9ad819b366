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

const motocargueroCols = `id, name, description, image_url, price, specs,
    is_active, is_featured, created_at, updated_at`

type MotocargueroRepo struct{ db *sqlx.DB }

func NewMotocargueroRepo(db *sqlx.DB) *MotocargueroRepo { return &MotocargueroRepo{db: db} }

func (r *MotocargueroRepo) List(ctx context.Context) ([]domain.Motocarguero, error) {
	out := []domain.Motocarguero{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+motocargueroCols+` FROM motocargueros ORDER BY created_at DESC`)
	return out, err
}

func (r *MotocargueroRepo) ListActive(ctx context.Context) ([]domain.Motocarguero, error) {
	out := []domain.Motocarguero{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT `+motocargueroCols+`
  FROM motocargueros
  WHERE is_active = ?
  ORDER BY created_at DESC`), true)
	return out, err
}

func (r *MotocargueroRepo) ListFeatured(ctx context.Context, limit int) ([]domain.Motocarguero, error) {
	out := []domain.Motocarguero{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT `+motocargueroCols+`
  FROM motocargueros
  WHERE is_active = ? AND is_featured = ?
  ORDER BY created_at DESC
  LIMIT ?`), true, true, limit)
	return out, err
}

func (r *MotocargueroRepo) Search(ctx context.Context, q string, limit int) ([]domain.Motocarguero, error) {
	like := containsPattern(q)
	out := []domain.Motocarguero{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT `+motocargueroCols+`
  FROM motocargueros
  WHERE is_active = ? AND (LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')
  ORDER BY created_at DESC
  LIMIT ?`), true, like, like, limit)
	return out, err
}

func (r *MotocargueroRepo) Get(ctx context.Context, id string) (domain.Motocarguero, error) {
	var m domain.Motocarguero
	err := r.db.GetContext(ctx, &m, r.db.Rebind(`SELECT `+motocargueroCols+` FROM motocargueros WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return m, domain.ErrNotFound
	}
	return m, err
}

func (r *MotocargueroRepo) Create(ctx context.Context, in domain.MotocargueroInput) (domain.Motocarguero, error) {
	return r.insert(ctx, in, now())
}

func (r *MotocargueroRepo) insert(ctx context.Context, in domain.MotocargueroInput, t time.Time) (domain.Motocarguero, error) {
	m := domain.Motocarguero{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		Specs:       in.Specs(),
		IsActive:    in.IsActive,
		IsFeatured:  in.IsFeatured,
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	_, err := r.db.NamedExecContext(ctx, `
  INSERT INTO motocargueros(`+motocargueroCols+`)
  VALUES (:id, :name, :description, :image_url, :price, :specs,
    :is_active, :is_featured, :created_at, :updated_at)`, m)
	if err != nil {
		return domain.Motocarguero{}, err
	}
	return m, nil
}

func (r *MotocargueroRepo) Update(ctx context.Context, id string, in domain.MotocargueroInput) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
  UPDATE motocargueros
  SET name = ?, description = ?, image_url = ?, price = ?, specs = ?,
      is_active = ?, is_featured = ?, updated_at = ?
  WHERE id = ?`),
		in.Name, in.Description, in.ImageURL, in.Price, in.Specs(),
		in.IsActive, in.IsFeatured, now(), id)
	return mustAffect(res, err)
}

func (r *MotocargueroRepo) SetActive(ctx context.Context, id string, v bool) error {
	return setFlag(ctx, r.db, "motocargueros", "is_active", id, v)
}

func (r *MotocargueroRepo) SetFeatured(ctx context.Context, id string, v bool) error {
	return setFlag(ctx, r.db, "motocargueros", "is_featured", id, v)
}

func (r *MotocargueroRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM motocargueros WHERE id = ?`), id)
	return mustAffect(res, err)
}

func (r *MotocargueroRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM motocargueros WHERE is_active = ?`), true)
	return n, err
}
