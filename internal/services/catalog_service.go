package services

import (
	"context"

	"bdc/internal/domain"
	applog "bdc/internal/log"
	"bdc/internal/repos"
)

// FeaturedLimit is how many cards each home tab shows.
const FeaturedLimit = 6

const searchLimit = 30

// Home is everything the landing page renders.
type Home struct {
	Banners       []domain.BannerImage
	Repuestos     []domain.Repuesto
	Motocargueros []domain.Motocarguero
}

// SearchResult groups hits from both catalogs.
type SearchResult struct {
	Query         string
	Repuestos     []domain.Repuesto
	Motocargueros []domain.Motocarguero
}

func (r SearchResult) Total() int { return len(r.Repuestos) + len(r.Motocargueros) }

// CatalogService serves the public pages. Read failures are logged and
// degrade to empty lists so the page still renders.
type CatalogService struct {
	Reps    *repos.RepuestoRepo
	Motos   *repos.MotocargueroRepo
	Banners *repos.BannerRepo
}

func NewCatalogService(reps *repos.RepuestoRepo, motos *repos.MotocargueroRepo, banners *repos.BannerRepo) *CatalogService {
	return &CatalogService{Reps: reps, Motos: motos, Banners: banners}
}

func orEmpty[T any](op string, v []T, err error) []T {
	if err != nil {
		applog.L().Error().Err(err).Str("action", op).Msg("catalog read failed")
		return []T{}
	}
	return v
}

func (s *CatalogService) Home(ctx context.Context) Home {
	b, err := s.Banners.ListActive(ctx)
	banners := orEmpty("catalog.banners", b, err)
	r, err := s.Reps.ListFeatured(ctx, FeaturedLimit)
	reps := orEmpty("catalog.featured_repuestos", r, err)
	m, err := s.Motos.ListFeatured(ctx, FeaturedLimit)
	motos := orEmpty("catalog.featured_motocargueros", m, err)
	return Home{Banners: banners, Repuestos: reps, Motocargueros: motos}
}

func (s *CatalogService) FeaturedRepuestos(ctx context.Context) []domain.Repuesto {
	r, err := s.Reps.ListFeatured(ctx, FeaturedLimit)
	return orEmpty("catalog.featured_repuestos", r, err)
}

func (s *CatalogService) FeaturedMotocargueros(ctx context.Context) []domain.Motocarguero {
	m, err := s.Motos.ListFeatured(ctx, FeaturedLimit)
	return orEmpty("catalog.featured_motocargueros", m, err)
}

func (s *CatalogService) Repuestos(ctx context.Context, category string) []domain.Repuesto {
	r, err := s.Reps.ListActive(ctx, category)
	return orEmpty("catalog.repuestos", r, err)
}

func (s *CatalogService) Categories(ctx context.Context) []string {
	c, err := s.Reps.Categories(ctx)
	return orEmpty("catalog.categories", c, err)
}

func (s *CatalogService) Motocargueros(ctx context.Context) []domain.Motocarguero {
	m, err := s.Motos.ListActive(ctx)
	return orEmpty("catalog.motocargueros", m, err)
}

func (s *CatalogService) Search(ctx context.Context, q string) SearchResult {
	r, err := s.Reps.Search(ctx, q, searchLimit)
	reps := orEmpty("catalog.search_repuestos", r, err)
	m, err := s.Motos.Search(ctx, q, searchLimit)
	motos := orEmpty("catalog.search_motocargueros", m, err)
	return SearchResult{Query: q, Repuestos: reps, Motocargueros: motos}
}
