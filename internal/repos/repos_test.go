package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"bdc/internal/domain"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// clock makes now() advance one second per call.
func clock(t *testing.T) {
	t.Helper()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	prev := now
	now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	t.Cleanup(func() { now = prev })
}

func TestRepuestoFeaturedLimitAndOrder(t *testing.T) {
	clock(t)
	ctx := context.Background()
	r := NewRepuestoRepo(memdb(t))

	for i := 0; i < 8; i++ {
		_, err := r.Create(ctx, domain.RepuestoInput{
			Name:       string(rune('A' + i)),
			IsActive:   i != 7,
			IsFeatured: true,
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	got, err := r.ListFeatured(ctx, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 6 {
		t.Fatalf("want 6 featured, got %d", len(got))
	}
	// H is inactive, so the newest visible one is G.
	if got[0].Name != "G" || got[5].Name != "B" {
		t.Fatalf("unexpected order: first=%s last=%s", got[0].Name, got[5].Name)
	}
}

func TestRepuestoTogglesAndNotFound(t *testing.T) {
	clock(t)
	ctx := context.Background()
	r := NewRepuestoRepo(memdb(t))

	p, err := r.Create(ctx, domain.RepuestoInput{Name: "Cadena", Category: "Transmisión", IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SetFeatured(ctx, p.ID, true); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsFeatured || !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("toggle not applied: %+v", got)
	}

	if err := r.SetActive(ctx, "missing", true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := r.Delete(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := r.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRepuestoCategoryAndSearch(t *testing.T) {
	clock(t)
	ctx := context.Background()
	r := NewRepuestoRepo(memdb(t))

	for _, in := range []domain.RepuestoInput{
		{Name: "Disco de Freno", Category: "Frenos", IsActive: true},
		{Name: "Pastillas", Description: "para freno trasero", Category: "Frenos", IsActive: true},
		{Name: "Bujía", Category: "Motor", IsActive: true},
		{Name: "Freno oculto", Category: "Frenos"},
	} {
		if _, err := r.Create(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	frenos, err := r.ListActive(ctx, "frenos")
	if err != nil {
		t.Fatal(err)
	}
	if len(frenos) != 2 {
		t.Fatalf("want 2 active frenos, got %d", len(frenos))
	}

	cats, err := r.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 || cats[0] != "Frenos" || cats[1] != "Motor" {
		t.Fatalf("categories: %v", cats)
	}

	hits, err := r.Search(ctx, "FRENO", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("want 2 hits, got %d", len(hits))
	}

	// LIKE wildcards in the query match themselves only.
	if _, err := r.Create(ctx, domain.RepuestoInput{Name: "Kit 100_A 50%", IsActive: true}); err != nil {
		t.Fatal(err)
	}
	for q, want := range map[string]int{"_": 1, "%": 1, "0_a": 1, "d_s": 0, "100%": 0} {
		hits, err := r.Search(ctx, q, 20)
		if err != nil {
			t.Fatal(err)
		}
		if len(hits) != want {
			t.Errorf("Search(%q): want %d hits, got %d", q, want, len(hits))
		}
	}
}

func TestUpdatesReplaceFields(t *testing.T) {
	clock(t)
	ctx := context.Background()
	db := memdb(t)

	reps := NewRepuestoRepo(db)
	p, err := reps.Create(ctx, domain.RepuestoInput{Name: "Filtro", Stock: 3, IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	price := 12000.0
	if err := reps.Update(ctx, p.ID, domain.RepuestoInput{Name: "Filtro K&N", Price: &price, Stock: 7, Category: "Motor"}); err != nil {
		t.Fatal(err)
	}
	got, err := reps.Get(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Filtro K&N" || got.Price == nil || *got.Price != price || got.Stock != 7 || got.IsActive || !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("after update: %+v", got)
	}
	if err := reps.Update(ctx, "missing", domain.RepuestoInput{Name: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	motos := NewMotocargueroRepo(db)
	m, err := motos.Create(ctx, domain.MotocargueroInput{Name: "Carguero", Motor: "150cc"})
	if err != nil {
		t.Fatal(err)
	}
	if err := motos.Update(ctx, m.ID, domain.MotocargueroInput{Name: "Carguero 200", Motor: "200cc", Carga: "800 kg"}); err != nil {
		t.Fatal(err)
	}
	gm, err := motos.Get(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gm.Name != "Carguero 200" || gm.Specs != (domain.Specs{Motor: "200cc", Carga: "800 kg"}) {
		t.Fatalf("after update: %+v", gm)
	}

	banners := NewBannerRepo(db)
	var ids []string
	for _, u := range []string{"/a.jpg", "/b.jpg"} {
		b, err := banners.Create(ctx, domain.BannerInput{ImageURL: u, IsActive: true})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, b.ID)
	}
	if err := banners.Update(ctx, ids[1], domain.BannerInput{ImageURL: "/b2.jpg", Title: "Nuevo"}); err != nil {
		t.Fatal(err)
	}
	b, err := banners.Get(ctx, ids[1])
	if err != nil {
		t.Fatal(err)
	}
	if b.ImageURL != "/b2.jpg" || b.Title != "Nuevo" || b.IsActive || b.DisplayOrder != 1 {
		t.Fatalf("banner update must keep display_order: %+v", b)
	}
}

func TestMotocargueroSpecsRoundTrip(t *testing.T) {
	clock(t)
	ctx := context.Background()
	r := NewMotocargueroRepo(memdb(t))

	m, err := r.Create(ctx, domain.MotocargueroInput{
		Name: "Carguero 200", Motor: "200cc", Carga: "800 kg", IsActive: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Specs.Motor != "200cc" || got.Specs.Carga != "800 kg" || got.Specs.Combustible != "" {
		t.Fatalf("specs: %+v", got.Specs)
	}
	if got.Price != nil {
		t.Fatalf("price should stay NULL, got %v", *got.Price)
	}
}

func TestBannerAppendAndReorder(t *testing.T) {
	clock(t)
	ctx := context.Background()
	r := NewBannerRepo(memdb(t))

	var ids []string
	for _, u := range []string{"/a.jpg", "/b.jpg", "/c.jpg"} {
		b, err := r.Create(ctx, domain.BannerInput{ImageURL: u, IsActive: true})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, b.ID)
	}
	list, _ := r.List(ctx)
	for i, b := range list {
		if b.DisplayOrder != i || b.ID != ids[i] {
			t.Fatalf("slot %d: %+v", i, b)
		}
	}

	if err := r.Reorder(ctx, []string{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatal(err)
	}
	list, _ = r.ListActive(ctx)
	if list[0].ImageURL != "/c.jpg" || list[1].ImageURL != "/a.jpg" || list[2].DisplayOrder != 2 {
		t.Fatalf("after reorder: %+v", list)
	}

	// an unknown id rolls the whole reorder back
	if err := r.Reorder(ctx, []string{ids[0], "nope"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	list, _ = r.List(ctx)
	if list[0].ImageURL != "/c.jpg" {
		t.Fatalf("reorder was not rolled back: %+v", list[0])
	}
}

func TestSessionsExpire(t *testing.T) {
	clock(t)
	ctx := context.Background()
	db := memdb(t)
	u, err := NewUserRepo(db).Upsert(ctx, "admin@bdc.co", "Admin", "$2a$10$x")
	if err != nil {
		t.Fatal(err)
	}
	s := NewSQLSessions(db)

	sid, err := s.Create(ctx, u.ID, 3*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if got, err := s.Lookup(ctx, sid); err != nil || got != u.ID {
		t.Fatalf("lookup: %q %v", got, err)
	}
	// clock has moved past the 3s lifetime by now
	for i := 0; i < 3; i++ {
		now()
	}
	if _, err := s.Lookup(ctx, sid); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want expired session, got %v", err)
	}
	n, err := s.PurgeExpired(ctx)
	if err != nil || n != 1 {
		t.Fatalf("purge: %d %v", n, err)
	}
}

func TestSeedDemoOnlyOnce(t *testing.T) {
	ctx := context.Background()
	db := memdb(t)
	if err := SeedDemo(ctx, db); err != nil {
		t.Fatal(err)
	}
	if err := SeedDemo(ctx, db); err != nil {
		t.Fatal(err)
	}
	reps, _ := NewRepuestoRepo(db).List(ctx)
	motos, _ := NewMotocargueroRepo(db).List(ctx)
	if len(reps) != 6 || len(motos) != 6 {
		t.Fatalf("seed counts: %d repuestos, %d motos", len(reps), len(motos))
	}
	if reps[0].Name != "Filtro de Aceite Premium" {
		t.Fatalf("seed order: first is %q", reps[0].Name)
	}
}
