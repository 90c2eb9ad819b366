package services

import (
	"context"
	"errors"
	"fmt"

	"bdc/internal/domain"
	"bdc/internal/repos"
	"bdc/internal/validate"
)

// ErrNoImage: a banner was saved without an uploaded image.
var ErrNoImage = errors.New("banner image required")

type BannerService struct {
	Repo *repos.BannerRepo
}

func NewBannerService(r *repos.BannerRepo) *BannerService { return &BannerService{Repo: r} }

func (s *BannerService) List(ctx context.Context) ([]domain.BannerImage, error) {
	return s.Repo.List(ctx)
}

func (s *BannerService) Get(ctx context.Context, id string) (domain.BannerImage, error) {
	return s.Repo.Get(ctx, id)
}

func (s *BannerService) check(in domain.BannerInput) error {
	if in.ImageURL == "" {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, ErrNoImage)
	}
	return validate.Struct(in)
}

// Create appends the banner at the end of the carousel.
func (s *BannerService) Create(ctx context.Context, in domain.BannerInput) (domain.BannerImage, error) {
	if err := s.check(in); err != nil {
		return domain.BannerImage{}, err
	}
	return s.Repo.Create(ctx, in)
}

func (s *BannerService) Update(ctx context.Context, id string, in domain.BannerInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	return s.Repo.Update(ctx, id, in)
}

func (s *BannerService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *BannerService) SetActive(ctx context.Context, id string, v bool) error {
	return s.Repo.SetActive(ctx, id, v)
}

// Reorder takes the full list of banner ids in their new order.
func (s *BannerService) Reorder(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %s", domain.ErrInvalidInput, id)
		}
		seen[id] = true
	}
	return s.Repo.Reorder(ctx, ids)
}

// Move swaps the banner with its neighbour and rewrites a dense order.
func (s *BannerService) Move(ctx context.Context, id string, up bool) error {
	list, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, len(list))
	pos := -1
	for i, b := range list {
		ids[i] = b.ID
		if b.ID == id {
			pos = i
		}
	}
	if pos < 0 {
		return domain.ErrNotFound
	}
	to := pos + 1
	if up {
		to = pos - 1
	}
	if to < 0 || to >= len(ids) {
		return nil
	}
	ids[pos], ids[to] = ids[to], ids[pos]
	return s.Repo.Reorder(ctx, ids)
}
