package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gvn/lending-platform/internal/core/domain"
	"github.com/gvn/lending-platform/internal/core/ports"
)

func newProductFixture() (*ProductService, *stubProductRepo, *stubCache, *journal) {
	log := &journal{}
	repo := newStubProductRepo()
	repo.log = log
	cache := newStubCache()
	cache.log = log
	svc := NewProductService(repo, cache, time.Minute, zerolog.Nop())
	return svc, repo, cache, log
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestProductService_List_ReadThrough(t *testing.T) {
	svc, repo, cache, _ := newProductFixture()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.Product{Name: "Bronze", Tenor: 12, InterestRate: 5.0}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// First read misses and populates the collection key.
	products, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Bronze" {
		t.Fatalf("unexpected products: %+v", products)
	}
	if _, ok := cache.data["products:allProducts"]; !ok {
		t.Fatalf("list result not cached")
	}

	// Second read is served from cache even if the store changes underneath.
	repo.products[1].Name = "Changed"
	cached, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if cached[0].Name != "Bronze" {
		t.Fatalf("expected cached value, got %s", cached[0].Name)
	}
}

func TestProductService_GetByID_CachesSingleton(t *testing.T) {
	svc, repo, cache, _ := newProductFixture()
	ctx := context.Background()

	created, _ := repo.Create(ctx, &domain.Product{Name: "Silver", Tenor: 24, InterestRate: 7.0})

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Tenor != 24 {
		t.Fatalf("unexpected tenor: %d", got.Tenor)
	}
	if _, ok := cache.data["products:product_1"]; !ok {
		t.Fatalf("singleton not cached under id key")
	}
}

func TestProductService_GetByID_NotFoundNotCached(t *testing.T) {
	svc, _, cache, _ := newProductFixture()

	if _, err := svc.GetByID(context.Background(), 99); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(cache.data) != 0 {
		t.Fatalf("absent value must not be cached, got %v", cache.data)
	}
}

func TestProductService_Create_EvictsAfterCommit(t *testing.T) {
	svc, _, _, log := newProductFixture()

	if _, err := svc.Create(context.Background(), ports.CreateProductInput{Name: "Gold", Tenor: 36, InterestRate: 9.0}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if len(log.entries) < 2 {
		t.Fatalf("expected store write then evict, got %v", log.entries)
	}
	if log.entries[0] != "store.create product" || log.entries[1] != "cache.evict products" {
		t.Fatalf("evict must follow the store commit, got %v", log.entries)
	}
}

func TestProductService_WriteInvalidatesListKey(t *testing.T) {
	svc, _, cache, _ := newProductFixture()
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateProductInput{Name: "Bronze", Tenor: 12, InterestRate: 5.0}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if _, ok := cache.data["products:allProducts"]; !ok {
		t.Fatalf("list key missing after read")
	}

	if _, err := svc.Create(ctx, ports.CreateProductInput{Name: "Silver", Tenor: 24, InterestRate: 7.0}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, ok := cache.data["products:allProducts"]; ok {
		t.Fatalf("list key survived a write to the group")
	}

	// The next read reflects the committed write.
	products, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products after repopulation, got %d", len(products))
	}
}

func TestProductService_Update_Partial(t *testing.T) {
	svc, repo, _, _ := newProductFixture()
	ctx := context.Background()

	created, _ := repo.Create(ctx, &domain.Product{Name: "Bronze", Tenor: 12, InterestRate: 5.0})

	updated, err := svc.Update(ctx, created.ID, ports.UpdateProductInput{Name: strPtr("X")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "X" {
		t.Fatalf("name not applied: %s", updated.Name)
	}
	if updated.Tenor != 12 || updated.InterestRate != 5.0 {
		t.Fatalf("omitted fields must keep stored values, got %+v", updated)
	}

	// Numeric-only update keeps the name.
	updated, err = svc.Update(ctx, created.ID, ports.UpdateProductInput{Tenor: intPtr(48), InterestRate: floatPtr(11.5)})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "X" || updated.Tenor != 48 || updated.InterestRate != 11.5 {
		t.Fatalf("unexpected product after numeric update: %+v", updated)
	}
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc, _, _, _ := newProductFixture()

	if _, err := svc.Update(context.Background(), 42, ports.UpdateProductInput{Name: strPtr("X")}); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	svc, repo, _, log := newProductFixture()
	ctx := context.Background()

	created, _ := repo.Create(ctx, &domain.Product{Name: "Gold", Tenor: 36, InterestRate: 9.0})
	log.entries = nil

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if log.entries[0] != "store.delete product" || log.entries[1] != "cache.evict products" {
		t.Fatalf("evict must follow the store delete, got %v", log.entries)
	}

	if err := svc.Delete(ctx, created.ID); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}
}
