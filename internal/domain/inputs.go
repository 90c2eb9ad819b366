package domain

// Inputs carry what an admin form submits; the services validate the tags.

type RepuestoInput struct {
	Name        string   `validate:"required,max=120"`
	Description string   `validate:"max=2000"`
	ImageURL    string   `validate:"max=1024"`
	Price       *float64 `validate:"omitempty,gte=0"`
	Stock       int      `validate:"gte=0"`
	Category    string   `validate:"max=80"`
	IsActive    bool
	IsFeatured  bool
}

type MotocargueroInput struct {
	Name        string   `validate:"required,max=120"`
	Description string   `validate:"max=2000"`
	ImageURL    string   `validate:"max=1024"`
	Price       *float64 `validate:"omitempty,gte=0"`
	Motor       string   `validate:"max=80"`
	Carga       string   `validate:"max=80"`
	Combustible string   `validate:"max=80"`
	IsActive    bool
	IsFeatured  bool
}

func (in MotocargueroInput) Specs() Specs {
	return Specs{Motor: in.Motor, Carga: in.Carga, Combustible: in.Combustible}
}

type BannerInput struct {
	ImageURL       string `validate:"required,max=1024"`
	ImageURLMobile string `validate:"max=1024"`
	Title          string `validate:"max=120"`
	Subtitle       string `validate:"max=240"`
	ShowTitle      bool
	ShowSubtitle   bool
	IsActive       bool
}
