package services

import (
	"context"

	"bdc/internal/domain"
	"bdc/internal/repos"
	"bdc/internal/validate"
)

// RepuestoService backs the dashboard CRUD for spare parts.
type RepuestoService struct {
	Repo *repos.RepuestoRepo
}

func NewRepuestoService(r *repos.RepuestoRepo) *RepuestoService { return &RepuestoService{Repo: r} }

func (s *RepuestoService) List(ctx context.Context) ([]domain.Repuesto, error) {
	return s.Repo.List(ctx)
}

func (s *RepuestoService) Get(ctx context.Context, id string) (domain.Repuesto, error) {
	return s.Repo.Get(ctx, id)
}

func (s *RepuestoService) Create(ctx context.Context, in domain.RepuestoInput) (domain.Repuesto, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Repuesto{}, err
	}
	return s.Repo.Create(ctx, in)
}

func (s *RepuestoService) Update(ctx context.Context, id string, in domain.RepuestoInput) error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	return s.Repo.Update(ctx, id, in)
}

func (s *RepuestoService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *RepuestoService) SetActive(ctx context.Context, id string, v bool) error {
	return s.Repo.SetActive(ctx, id, v)
}

func (s *RepuestoService) SetFeatured(ctx context.Context, id string, v bool) error {
	return s.Repo.SetFeatured(ctx, id, v)
}
