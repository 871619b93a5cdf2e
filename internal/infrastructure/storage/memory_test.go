package storage

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, KeyCompanyName, "Ateliê da Rita"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	var name string
	if !store.Load(ctx, KeyCompanyName, &name) {
		t.Fatal("Load returned false for a saved key")
	}
	if name != "Ateliê da Rita" {
		t.Errorf("loaded %q", name)
	}
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemoryStore()

	name := "untouched"
	if store.Load(context.Background(), KeyCompanyName, &name) {
		t.Error("Load returned true for a missing key")
	}
	if name != "untouched" {
		t.Error("Load must leave dest untouched on a miss")
	}
}

func TestMemoryStoreCorruptValue(t *testing.T) {
	store := NewMemoryStore()
	store.SetRaw(KeyInvoices, []byte("{not json"))

	var invoices []map[string]any
	if store.Load(context.Background(), KeyInvoices, &invoices) {
		t.Error("Load returned true for a corrupt value")
	}
	if invoices != nil {
		t.Error("Load must leave dest untouched on corrupt data")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, KeyLogo, "data:image/png;base64,AAAA"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, KeyLogo); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var logo string
	if store.Load(ctx, KeyLogo, &logo) {
		t.Error("Load returned true after Delete")
	}
}
