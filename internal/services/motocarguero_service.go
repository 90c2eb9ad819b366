package services

import (
	"context"

	"bdc/internal/domain"
	"bdc/internal/repos"
	"bdc/internal/validate"
)

// MotocargueroService backs the dashboard CRUD for cargo motorcycles.
type MotocargueroService struct {
	Repo *repos.MotocargueroRepo
}

func NewMotocargueroService(r *repos.MotocargueroRepo) *MotocargueroService { return &MotocargueroService{Repo: r} }

func (s *MotocargueroService) List(ctx context.Context) ([]domain.Motocarguero, error) {
	return s.Repo.List(ctx)
}

func (s *MotocargueroService) Get(ctx context.Context, id string) (domain.Motocarguero, error) {
	return s.Repo.Get(ctx, id)
}

func (s *MotocargueroService) Create(ctx context.Context, in domain.MotocargueroInput) (domain.Motocarguero, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Motocarguero{}, err
	}
	return s.Repo.Create(ctx, in)
}

func (s *MotocargueroService) Update(ctx context.Context, id string, in domain.MotocargueroInput) error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	return s.Repo.Update(ctx, id, in)
}

func (s *MotocargueroService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *MotocargueroService) SetActive(ctx context.Context, id string, v bool) error {
	return s.Repo.SetActive(ctx, id, v)
}

func (s *MotocargueroService) SetFeatured(ctx context.Context, id string, v bool) error {
	return s.Repo.SetFeatured(ctx, id, v)
}
