package services_test

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"bdc/internal/domain"
	"bdc/internal/repos"
	"bdc/internal/services"
	"bdc/internal/storage"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAuthLoginIssuesFreshSessions(t *testing.T) {
	ctx := context.Background()
	db := memdb(t)
	users := repos.NewUserRepo(db)
	auth := services.NewAuthService(users, repos.NewSQLSessions(db), time.Hour)

	if _, err := auth.EnsureAdmin(ctx, "Admin@BDC.co", "Admin", "weak"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("weak password accepted: %v", err)
	}
	if _, err := auth.EnsureAdmin(ctx, "Admin@BDC.co", "Admin", "Repuestos2024"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := auth.Login(ctx, "admin@bdc.co", "wrong-pass"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, _, err := auth.Login(ctx, "nobody@bdc.co", "Repuestos2024"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("unknown user: want ErrBadCreds, got %v", err)
	}

	sid1, u, err := auth.Login(ctx, "admin@bdc.co", "Repuestos2024")
	if err != nil {
		t.Fatal(err)
	}
	sid2, _, err := auth.Login(ctx, "ADMIN@bdc.co", "Repuestos2024")
	if err != nil {
		t.Fatal(err)
	}
	if sid1 == sid2 {
		t.Fatal("each login must open a new session")
	}

	cur, err := auth.CurrentUser(ctx, sid1)
	if err != nil || cur.ID != u.ID {
		t.Fatalf("current user: %+v %v", cur, err)
	}
	if err := auth.Refresh(ctx, sid1); err != nil {
		t.Fatal(err)
	}
	if err := auth.Logout(ctx, sid1); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.CurrentUser(ctx, sid1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("session survived logout: %v", err)
	}
	if _, err := auth.CurrentUser(ctx, sid2); err != nil {
		t.Fatalf("other session should be untouched: %v", err)
	}
}

func TestBannerRequiresImageAndMoves(t *testing.T) {
	ctx := context.Background()
	svc := services.NewBannerService(repos.NewBannerRepo(memdb(t)))

	_, err := svc.Create(ctx, domain.BannerInput{Title: "Sin imagen"})
	if !errors.Is(err, services.ErrNoImage) || !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("want ErrNoImage, got %v", err)
	}

	var ids []string
	for _, u := range []string{"/media/banners/a.png", "/media/banners/b.png", "/media/banners/c.png"} {
		b, err := svc.Create(ctx, domain.BannerInput{ImageURL: u, IsActive: true})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, b.ID)
	}

	if err := svc.Move(ctx, ids[2], true); err != nil {
		t.Fatal(err)
	}
	// moving the first one up is a no-op
	if err := svc.Move(ctx, ids[0], true); err != nil {
		t.Fatal(err)
	}
	list, _ := svc.List(ctx)
	got := []string{list[0].ID, list[1].ID, list[2].ID}
	want := []string{ids[0], ids[2], ids[1]}
	for i := range want {
		if got[i] != want[i] || list[i].DisplayOrder != i {
			t.Fatalf("order after move: %v (want %v)", got, want)
		}
	}

	if err := svc.Reorder(ctx, []string{ids[0], ids[0]}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("duplicate ids accepted: %v", err)
	}
	if err := svc.Move(ctx, "missing", false); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRepuestoServiceValidates(t *testing.T) {
	ctx := context.Background()
	svc := services.NewRepuestoService(repos.NewRepuestoRepo(memdb(t)))

	if _, err := svc.Create(ctx, domain.RepuestoInput{Stock: -1, Name: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative stock accepted: %v", err)
	}
	p, err := svc.Create(ctx, domain.RepuestoInput{Name: "Bujía", IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.SetFeatured(ctx, p.ID, true); err != nil {
		t.Fatal(err)
	}
	got, _ := svc.Get(ctx, p.ID)
	if !got.IsFeatured {
		t.Fatal("featured flag not stored")
	}
	if err := svc.Update(ctx, p.ID, domain.RepuestoInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("update without name accepted: %v", err)
	}
}

func TestMediaUploadRules(t *testing.T) {
	ctx := context.Background()
	st, err := storage.NewLocal(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	media := services.NewMediaService(st, 64)

	if _, err := media.Upload(ctx, storage.BucketProducts, "notes.txt", "text/plain", strings.NewReader("hola")); !errors.Is(err, services.ErrNotImage) {
		t.Fatalf("declared text accepted: %v", err)
	}
	if _, err := media.Upload(ctx, storage.BucketProducts, "fake.png", "image/png", strings.NewReader("not really a png")); !errors.Is(err, services.ErrNotImage) {
		t.Fatalf("sniffed text accepted: %v", err)
	}
	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	if _, err := media.Upload(ctx, storage.BucketProducts, "big.png", "image/png", bytes.NewReader(big)); !errors.Is(err, services.ErrTooLarge) {
		t.Fatalf("oversize accepted: %v", err)
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`
	if _, err := media.Upload(ctx, storage.BucketProducts, "x.svg", "image/svg+xml", strings.NewReader(svg)); !errors.Is(err, services.ErrNotImage) {
		t.Fatalf("svg accepted: %v", err)
	}

	url, err := media.Upload(ctx, storage.BucketBanners, "Foto.PNG", "image/png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`^/media/banners/\d{13}-[0-9a-z]{7}\.png$`).MatchString(url) {
		t.Fatalf("unexpected url %q", url)
	}

	objs, err := media.Gallery(ctx)
	if err != nil || len(objs) != 1 || objs[0].Bucket != storage.BucketBanners {
		t.Fatalf("gallery: %+v %v", objs, err)
	}

	if err := media.Delete(ctx, storage.BucketProducts, url); err != nil {
		t.Fatal(err)
	}
	objs, _ = media.Gallery(ctx)
	if len(objs) != 0 {
		t.Fatalf("delete by url left %d objects", len(objs))
	}
}

func TestCatalogSearchAndFallback(t *testing.T) {
	ctx := context.Background()
	db := memdb(t)
	if err := repos.SeedDemo(ctx, db); err != nil {
		t.Fatal(err)
	}
	cat := services.NewCatalogService(repos.NewRepuestoRepo(db), repos.NewMotocargueroRepo(db), repos.NewBannerRepo(db))

	home := cat.Home(ctx)
	if len(home.Repuestos) != services.FeaturedLimit || len(home.Motocargueros) != services.FeaturedLimit {
		t.Fatalf("home: %d repuestos, %d motos", len(home.Repuestos), len(home.Motocargueros))
	}
	if len(home.Banners) != 0 {
		t.Fatalf("no banners expected, got %d", len(home.Banners))
	}

	res := cat.Search(ctx, "freno")
	if len(res.Repuestos) != 1 || res.Total() != 1 {
		t.Fatalf("search: %+v", res)
	}

	// a closed db degrades to empty lists instead of failing the page
	_ = db.Close()
	if got := cat.Repuestos(ctx, ""); got == nil || len(got) != 0 {
		t.Fatalf("fallback: %v", got)
	}
}
