package validate

import (
	"errors"
	"testing"

	"bdc/internal/domain"
)

func TestStructMessages(t *testing.T) {
	neg := -5.0
	err := Struct(domain.RepuestoInput{Name: "Filtro", Price: &neg})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if Message(err) != "El campo precio no puede ser negativo" {
		t.Fatalf("message: %q", Message(err))
	}

	err = Struct(domain.BannerInput{Title: "Hola"})
	if Message(err) != "El campo imagen es obligatorio" {
		t.Fatalf("message: %q", Message(err))
	}

	if err := Struct(domain.RepuestoInput{Name: "Filtro"}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestPrice(t *testing.T) {
	cases := map[string]float64{
		"1250000":    1250000,
		"1.250.000":  1250000,
		"$ 35.000":   35000,
		"1250000,50": 1250000.5,
		"99.5":       99.5,
	}
	for in, want := range cases {
		got, ok := Price(in)
		if !ok || got == nil || *got != want {
			t.Errorf("Price(%q) = %v %v, want %v", in, got, ok, want)
		}
	}
	if p, ok := Price(""); !ok || p != nil {
		t.Fatal("empty price should be nil and valid")
	}
	if _, ok := Price("-3"); ok {
		t.Fatal("negative price accepted")
	}
	if _, ok := Price("abc"); ok {
		t.Fatal("garbage price accepted")
	}
	for _, in := range []string{"Inf", "+Inf", "infinity", "NaN", "1e400"} {
		if p, ok := Price(in); ok {
			t.Errorf("Price(%q) = %v, want rejected", in, *p)
		}
	}
}

func TestQAndID(t *testing.T) {
	if q, ok := Q("  bujía iridium "); !ok || q != "bujía iridium" {
		t.Fatalf("Q: %q %v", q, ok)
	}
	if _, ok := Q("<script>"); ok {
		t.Fatal("markup accepted in query")
	}
	if _, ok := ID("1; DROP TABLE repuestos"); ok {
		t.Fatal("non-uuid id accepted")
	}
	if _, ok := ID("6f1c2a2e-3c7b-4b8e-9d2a-0a1b2c3d4e5f"); !ok {
		t.Fatal("uuid rejected")
	}
	if _, ok := IDs([]string{"6f1c2a2e-3c7b-4b8e-9d2a-0a1b2c3d4e5f", "x"}); ok {
		t.Fatal("list with a bad id accepted")
	}
}

func TestPasswords(t *testing.T) {
	if Password("short") {
		t.Fatal("short password accepted")
	}
	if !Password("cualquier-cosa") {
		t.Fatal("login length window too strict")
	}
	if StrongPassword("todominusculas1") || !StrongPassword("Repuestos2024") {
		t.Fatal("strong password rules")
	}
}
