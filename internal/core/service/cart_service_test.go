package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
	"github.com/shopflow/storefront-api/internal/core/ports"
)

func newCartSvc(store *stubCartStore, products *stubProductRepo) *CartService {
	return NewCartService(store, products, discardLogger)
}

func TestCartService_Get_EmptyCart(t *testing.T) {
	svc := newCartSvc(newStubCartStore(), newStubProductRepo())

	snap, err := svc.Get(context.Background(), asUser("u1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Version != domain.CartSnapshotVersion {
		t.Errorf("expected current snapshot version %d, got %d", domain.CartSnapshotVersion, snap.Version)
	}
	if len(snap.Items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(snap.Items))
	}
}

func TestCartService_Add_SnapshotsProduct(t *testing.T) {
	products := newStubProductRepo(catalogProduct("p1", "Keyboard", 100.00, 5))
	store := newStubCartStore()
	svc := newCartSvc(store, products)

	snap, err := svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(snap.Items))
	}
	entry := snap.Items[0]
	if entry.Name != "Keyboard" || entry.Price != 100.00 || entry.StockSeen != 5 {
		t.Errorf("entry must snapshot the catalog row: %+v", entry)
	}
	if entry.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", entry.Quantity)
	}
	if entry.AddedAt.IsZero() {
		t.Error("AddedAt must be set")
	}

	// And the snapshot must be persisted, not just returned.
	stored, _ := store.Load(context.Background(), "u1")
	if len(stored.Items) != 1 {
		t.Errorf("expected the entry persisted, got %d items", len(stored.Items))
	}
}

func TestCartService_Add_MergesQuantities(t *testing.T) {
	products := newStubProductRepo(catalogProduct("p1", "Keyboard", 100.00, 9))
	svc := newCartSvc(newStubCartStore(), products)

	_, _ = svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 2})
	snap, err := svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Items) != 1 {
		t.Fatalf("expected a single merged entry, got %d", len(snap.Items))
	}
	if snap.Items[0].Quantity != 3 {
		t.Errorf("expected merged quantity 3, got %d", snap.Items[0].Quantity)
	}
}

func TestCartService_Add_ClampsToStock(t *testing.T) {
	// Requesting 5 of a product with 3 in stock keeps the entry at 3.
	products := newStubProductRepo(catalogProduct("p1", "Keyboard", 100.00, 3))
	svc := newCartSvc(newStubCartStore(), products)

	snap, err := svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Items[0].Quantity != 3 {
		t.Errorf("expected quantity clamped to 3, got %d", snap.Items[0].Quantity)
	}
}

func TestCartService_Add_UnknownProduct(t *testing.T) {
	svc := newCartSvc(newStubCartStore(), newStubProductRepo())

	_, err := svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "ghost", Quantity: 1})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	var notFound *domain.ProductNotFoundError
	if !errors.As(err, &notFound) || notFound.ProductID != "ghost" {
		t.Errorf("error must name the missing product, got %v", err)
	}
}

func TestCartService_Add_RejectsNonPositiveQuantity(t *testing.T) {
	products := newStubProductRepo(catalogProduct("p1", "Keyboard", 100.00, 5))
	svc := newCartSvc(newStubCartStore(), products)

	for _, qty := range []int{0, -1} {
		_, err := svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: qty})
		if !errors.Is(err, domain.ErrMalformedInput) {
			t.Errorf("quantity %d: expected ErrMalformedInput, got %v", qty, err)
		}
	}
}

func TestCartService_SetQuantity_Updates(t *testing.T) {
	products := newStubProductRepo(catalogProduct("p1", "Keyboard", 100.00, 9))
	svc := newCartSvc(newStubCartStore(), products)

	_, _ = svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 1})
	snap, err := svc.SetQuantity(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Items[0].Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", snap.Items[0].Quantity)
	}
}

func TestCartService_SetQuantity_ZeroRemovesEntry(t *testing.T) {
	products := newStubProductRepo(catalogProduct("p1", "Keyboard", 100.00, 9))
	svc := newCartSvc(newStubCartStore(), products)

	_, _ = svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 2})
	snap, err := svc.SetQuantity(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Items) != 0 {
		t.Errorf("expected entry removed, got %d items", len(snap.Items))
	}
}

func TestCartService_SetQuantity_MissingEntry(t *testing.T) {
	svc := newCartSvc(newStubCartStore(), newStubProductRepo())

	_, err := svc.SetQuantity(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 2})
	if !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartService_Remove(t *testing.T) {
	products := newStubProductRepo(
		catalogProduct("p1", "Keyboard", 100.00, 9),
		catalogProduct("p2", "Mouse", 25.00, 9),
	)
	svc := newCartSvc(newStubCartStore(), products)

	_, _ = svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 1})
	_, _ = svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p2", Quantity: 1})

	snap, err := svc.Remove(context.Background(), asUser("u1"), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Items) != 1 || snap.Items[0].ProductID != "p2" {
		t.Errorf("expected only p2 to remain, got %+v", snap.Items)
	}

	// Removing an absent entry is a no-op, not an error.
	snap, err = svc.Remove(context.Background(), asUser("u1"), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Items) != 1 {
		t.Errorf("expected cart unchanged, got %d items", len(snap.Items))
	}
}

func TestCartService_Clear(t *testing.T) {
	products := newStubProductRepo(catalogProduct("p1", "Keyboard", 100.00, 9))
	store := newStubCartStore()
	svc := newCartSvc(store, products)

	_, _ = svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 1})
	if err := svc.Clear(context.Background(), asUser("u1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, _ := svc.Get(context.Background(), asUser("u1"))
	if len(snap.Items) != 0 {
		t.Errorf("expected empty cart after clear, got %d items", len(snap.Items))
	}
}

func TestCartService_Replace_RebuildsFromCatalog(t *testing.T) {
	products := newStubProductRepo(
		catalogProduct("p1", "Keyboard", 100.00, 9),
		catalogProduct("p2", "Mouse", 25.00, 2),
	)
	svc := newCartSvc(newStubCartStore(), products)

	// Pre-existing content is discarded by a replace.
	_, _ = svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 1})

	snap, err := svc.Replace(context.Background(), asUser("u1"), []ports.CartItemInput{
		{ProductID: "p2", Quantity: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Items) != 1 || snap.Items[0].ProductID != "p2" {
		t.Fatalf("expected cart rebuilt with p2 only, got %+v", snap.Items)
	}
	if snap.Items[0].Quantity != 2 {
		t.Errorf("expected restored quantity clamped to stock 2, got %d", snap.Items[0].Quantity)
	}
}

func TestCartService_Replace_UnknownProductFailsWholeRestore(t *testing.T) {
	products := newStubProductRepo(catalogProduct("p1", "Keyboard", 100.00, 9))
	store := newStubCartStore()
	svc := newCartSvc(store, products)

	_, err := svc.Replace(context.Background(), asUser("u1"), []ports.CartItemInput{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	// Nothing may have been persisted for a failed restore.
	if _, ok := store.snapshots["u1"]; ok {
		t.Error("failed restore must not persist a partial cart")
	}
}

func TestCartService_Subtotal_IsAdvisory(t *testing.T) {
	products := newStubProductRepo(catalogProduct("p1", "Keyboard", 99.99, 9))
	svc := newCartSvc(newStubCartStore(), products)

	snap, _ := svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 2})
	if got := snap.Subtotal(); got != 199.98 {
		t.Errorf("expected subtotal 199.98, got %v", got)
	}
}

func TestCartService_RequiresIdentity(t *testing.T) {
	svc := newCartSvc(newStubCartStore(), newStubProductRepo())
	anon := policy.Principal{}

	if _, err := svc.Get(context.Background(), anon); !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("Get: expected ErrAuthRequired, got %v", err)
	}
	if _, err := svc.Add(context.Background(), anon, ports.CartItemInput{ProductID: "p1", Quantity: 1}); !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("Add: expected ErrAuthRequired, got %v", err)
	}
	if err := svc.Clear(context.Background(), anon); !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("Clear: expected ErrAuthRequired, got %v", err)
	}
}

func TestCartService_CartsAreIsolatedPerUser(t *testing.T) {
	products := newStubProductRepo(catalogProduct("p1", "Keyboard", 100.00, 9))
	svc := newCartSvc(newStubCartStore(), products)

	_, _ = svc.Add(context.Background(), asUser("u1"), ports.CartItemInput{ProductID: "p1", Quantity: 2})

	other, err := svc.Get(context.Background(), asUser("u2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other.Items) != 0 {
		t.Errorf("u2 must not see u1's cart, got %d items", len(other.Items))
	}
}
