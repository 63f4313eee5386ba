package redis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopflow/storefront-api/internal/core/domain"
)

func discardLogger() zerolog.Logger { return zerolog.Nop() }

func TestDecodeSnapshot_CurrentVersion(t *testing.T) {
	snap := domain.NewCartSnapshot()
	snap.Items = []domain.CartEntry{
		{ProductID: "p1", Name: "Keyboard", Price: 100.00, StockSeen: 5, Quantity: 2, AddedAt: time.Now().UTC()},
	}
	snap.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	decoded, result, decodeErr := decodeSnapshot(payload)
	if decodeErr != nil {
		t.Fatalf("unexpected decode error: %v", decodeErr)
	}
	if result != restoreCurrent {
		t.Errorf("expected result %q, got %q", restoreCurrent, result)
	}
	if len(decoded.Items) != 1 || decoded.Items[0].ProductID != "p1" {
		t.Errorf("items lost in round trip: %+v", decoded.Items)
	}
	if decoded.Items[0].Quantity != 2 || decoded.Items[0].Price != 100.00 {
		t.Errorf("entry fields lost in round trip: %+v", decoded.Items[0])
	}
}

func TestDecodeSnapshot_MigratesUnversionedObject(t *testing.T) {
	// An object written before snapshots carried a version stamp.
	payload := []byte(`{"items":[{"product_id":"p1","name":"Keyboard","price":100,"stock_seen":5,"quantity":1}]}`)

	decoded, result, _ := decodeSnapshot(payload)
	if result != restoreMigrated {
		t.Fatalf("expected result %q, got %q", restoreMigrated, result)
	}
	if decoded.Version != domain.CartSnapshotVersion {
		t.Errorf("expected version stamped to %d, got %d", domain.CartSnapshotVersion, decoded.Version)
	}
	if len(decoded.Items) != 1 || decoded.Items[0].ProductID != "p1" {
		t.Errorf("items must survive the migration: %+v", decoded.Items)
	}
}

func TestDecodeSnapshot_MigratesBareArray(t *testing.T) {
	// The oldest shape: a bare JSON array of entries.
	payload := []byte(`[{"product_id":"p1","name":"Keyboard","price":100,"stock_seen":5,"quantity":3}]`)

	decoded, result, _ := decodeSnapshot(payload)
	if result != restoreMigrated {
		t.Fatalf("expected result %q, got %q", restoreMigrated, result)
	}
	if decoded.Version != domain.CartSnapshotVersion {
		t.Errorf("expected current version, got %d", decoded.Version)
	}
	if len(decoded.Items) != 1 || decoded.Items[0].Quantity != 3 {
		t.Errorf("items must survive the migration: %+v", decoded.Items)
	}
}

func TestDecodeSnapshot_ResetsUnparseablePayload(t *testing.T) {
	for name, payload := range map[string][]byte{
		"garbage":    []byte(`{{{not json`),
		"wrong type": []byte(`"just a string"`),
	} {
		decoded, result, decodeErr := decodeSnapshot(payload)
		if result != restoreReset {
			t.Errorf("%s: expected result %q, got %q", name, restoreReset, result)
		}
		if decodeErr == nil {
			t.Errorf("%s: expected a diagnostic error", name)
		}
		if decoded == nil || len(decoded.Items) != 0 || decoded.Version != domain.CartSnapshotVersion {
			t.Errorf("%s: reset must yield a usable empty snapshot, got %+v", name, decoded)
		}
	}
}

func TestDecodeSnapshot_ResetsFutureVersion(t *testing.T) {
	payload := []byte(`{"version":99,"items":[]}`)

	decoded, result, decodeErr := decodeSnapshot(payload)
	if result != restoreReset {
		t.Fatalf("expected result %q, got %q", restoreReset, result)
	}
	if decodeErr == nil {
		t.Error("expected a diagnostic error for an unsupported version")
	}
	if len(decoded.Items) != 0 {
		t.Errorf("expected an empty snapshot, got %+v", decoded.Items)
	}
}

func TestCartStore_KeyFormat(t *testing.T) {
	store := NewCartStore(nil, 0, discardLogger())
	if got := store.key("u1"); got != "cart:u1" {
		t.Errorf("expected key cart:u1, got %q", got)
	}
}

func TestNewCartStore_DefaultTTL(t *testing.T) {
	store := NewCartStore(nil, 0, discardLogger())
	if store.ttl != defaultCartTTL {
		t.Errorf("expected default TTL %v, got %v", defaultCartTTL, store.ttl)
	}
}
