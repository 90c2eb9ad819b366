package handlers

import (
	"bdc/internal/config"
	"bdc/internal/repos"
	"bdc/internal/services"
	"bdc/internal/storage"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Config    config.Config
	Auth      *services.AuthService
	Media     *services.MediaService
	Site      *SiteHandler
	AuthH     *AuthHandler
	Dashboard *DashboardHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, store storage.Store, sessions services.SessionStore) *Deps {
	repRepo := repos.NewRepuestoRepo(db)
	motoRepo := repos.NewMotocargueroRepo(db)
	bannerRepo := repos.NewBannerRepo(db)
	userRepo := repos.NewUserRepo(db)

	authSvc := services.NewAuthService(userRepo, sessions, cfg.Session.TTL)
	catalogSvc := services.NewCatalogService(repRepo, motoRepo, bannerRepo)
	mediaSvc := services.NewMediaService(store, cfg.Storage.MaxUploadBytes)

	return &Deps{
		Config: cfg,
		Auth:   authSvc,
		Media:  mediaSvc,
		Site:   &SiteHandler{Catalog: catalogSvc},
		AuthH: &AuthHandler{
			Auth:   authSvc,
			Cookie: CookieOpts{TTL: authSvc.TTL, Secure: cfg.Session.CookieSecure},
		},
		Dashboard: &DashboardHandler{
			Repuestos:     services.NewRepuestoService(repRepo),
			Motocargueros: services.NewMotocargueroService(motoRepo),
			Banners:       services.NewBannerService(bannerRepo),
			Media:         mediaSvc,
			Overview: &services.OverviewService{
				Reps: repRepo, Motos: motoRepo, Banners: bannerRepo, Media: mediaSvc,
			},
		},
	}
}
