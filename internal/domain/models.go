package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repuesto is a spare part shown on /repuestos.
type Repuesto struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	Price       *float64  `db:"price" json:"price"`
	Stock       int       `db:"stock" json:"stock"`
	Category    string    `db:"category" json:"category"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	IsFeatured  bool      `db:"is_featured" json:"is_featured"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Motocarguero is a cargo motorcycle shown on /motocargueros.
type Motocarguero struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	Price       *float64  `db:"price" json:"price"`
	Specs       Specs     `db:"specs" json:"specs"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	IsFeatured  bool      `db:"is_featured" json:"is_featured"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Specs is stored as a JSON object in a text column.
type Specs struct {
	Motor       string `json:"motor,omitempty"`
	Carga       string `json:"carga,omitempty"`
	Combustible string `json:"combustible,omitempty"`
}

func (s Specs) IsZero() bool { return s == Specs{} }

// Rows lists the filled specs as label/value pairs in display order.
func (s Specs) Rows() [][2]string {
	var out [][2]string
	for _, kv := range [][2]string{{"Motor", s.Motor}, {"Carga", s.Carga}, {"Combustible", s.Combustible}} {
		if kv[1] != "" {
			out = append(out, kv)
		}
	}
	return out
}

func (s Specs) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Specs) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*s = Specs{}
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("specs: unsupported type %T", src)
	}
	if len(b) == 0 {
		*s = Specs{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// BannerImage is one slide of the landing page carousel.
type BannerImage struct {
	ID             string    `db:"id" json:"id"`
	ImageURL       string    `db:"image_url" json:"image_url"`
	ImageURLMobile string    `db:"image_url_mobile" json:"image_url_mobile"`
	Title          string    `db:"title" json:"title"`
	Subtitle       string    `db:"subtitle" json:"subtitle"`
	ShowTitle      bool      `db:"show_title" json:"show_title"`
	ShowSubtitle   bool      `db:"show_subtitle" json:"show_subtitle"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	DisplayOrder   int       `db:"display_order" json:"display_order"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
