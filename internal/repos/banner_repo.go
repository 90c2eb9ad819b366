package repos

import (
	"context"
	"database/sql"
	"errors"

	"bdc/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const bannerCols = `id, image_url, image_url_mobile, title, subtitle, show_title, show_subtitle,
    is_active, display_order, created_at, updated_at`

type BannerRepo struct{ db *sqlx.DB }

func NewBannerRepo(db *sqlx.DB) *BannerRepo { return &BannerRepo{db: db} }

func (r *BannerRepo) List(ctx context.Context) ([]domain.BannerImage, error) {
	out := []domain.BannerImage{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+bannerCols+` FROM banner_images ORDER BY display_order ASC, created_at ASC`)
	return out, err
}

// ListActive feeds the landing page carousel.
func (r *BannerRepo) ListActive(ctx context.Context) ([]domain.BannerImage, error) {
	out := []domain.BannerImage{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT `+bannerCols+`
  FROM banner_images
  WHERE is_active = ?
  ORDER BY display_order ASC, created_at ASC`), true)
	return out, err
}

func (r *BannerRepo) Get(ctx context.Context, id string) (domain.BannerImage, error) {
	var b domain.BannerImage
	err := r.db.GetContext(ctx, &b, r.db.Rebind(`SELECT `+bannerCols+` FROM banner_images WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return b, domain.ErrNotFound
	}
	return b, err
}

func (r *BannerRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM banner_images`)
	return n, err
}

// Create appends the banner after the existing ones.
func (r *BannerRepo) Create(ctx context.Context, in domain.BannerInput) (domain.BannerImage, error) {
	n, err := r.Count(ctx)
	if err != nil {
		return domain.BannerImage{}, err
	}
	t := now()
	b := domain.BannerImage{
		ID:             uuid.NewString(),
		ImageURL:       in.ImageURL,
		ImageURLMobile: in.ImageURLMobile,
		Title:          in.Title,
		Subtitle:       in.Subtitle,
		ShowTitle:      in.ShowTitle,
		ShowSubtitle:   in.ShowSubtitle,
		IsActive:       in.IsActive,
		DisplayOrder:   n,
		CreatedAt:      t,
		UpdatedAt:      t,
	}
	_, err = r.db.NamedExecContext(ctx, `
  INSERT INTO banner_images(`+bannerCols+`)
  VALUES (:id, :image_url, :image_url_mobile, :title, :subtitle, :show_title, :show_subtitle,
    :is_active, :display_order, :created_at, :updated_at)`, b)
	if err != nil {
		return domain.BannerImage{}, err
	}
	return b, nil
}

// Update leaves display_order alone; use Reorder for that.
func (r *BannerRepo) Update(ctx context.Context, id string, in domain.BannerInput) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
  UPDATE banner_images
  SET image_url = ?, image_url_mobile = ?, title = ?, subtitle = ?,
      show_title = ?, show_subtitle = ?, is_active = ?, updated_at = ?
  WHERE id = ?`),
		in.ImageURL, in.ImageURLMobile, in.Title, in.Subtitle,
		in.ShowTitle, in.ShowSubtitle, in.IsActive, now(), id)
	return mustAffect(res, err)
}

func (r *BannerRepo) SetActive(ctx context.Context, id string, v bool) error {
	return setFlag(ctx, r.db, "banner_images", "is_active", id, v)
}

func (r *BannerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM banner_images WHERE id = ?`), id)
	return mustAffect(res, err)
}

// Reorder sets display_order to each id's position in ids.
func (r *BannerRepo) Reorder(ctx context.Context, ids []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	q := tx.Rebind(`UPDATE banner_images SET display_order = ?, updated_at = ? WHERE id = ?`)
	t := now()
	for i, id := range ids {
		res, err := tx.ExecContext(ctx, q, i, t, id)
		if err := mustAffect(res, err); err != nil {
			return err
		}
	}
	return tx.Commit()
}
