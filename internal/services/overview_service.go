package services

import (
	"context"

	"bdc/internal/repos"
)

// Overview is the dashboard landing card row.
type Overview struct {
	Repuestos     int
	Motocargueros int
	Banners       int
	Images        int
}

type OverviewService struct {
	Reps    *repos.RepuestoRepo
	Motos   *repos.MotocargueroRepo
	Banners *repos.BannerRepo
	Media   *MediaService
}

func (s *OverviewService) Counts(ctx context.Context) (Overview, error) {
	var o Overview
	var err error
	if o.Repuestos, err = s.Reps.CountActive(ctx); err != nil {
		return o, err
	}
	if o.Motocargueros, err = s.Motos.CountActive(ctx); err != nil {
		return o, err
	}
	if o.Banners, err = s.Banners.Count(ctx); err != nil {
		return o, err
	}
	imgs, err := s.Media.Gallery(ctx)
	if err != nil {
		return o, err
	}
	o.Images = len(imgs)
	return o, nil
}
