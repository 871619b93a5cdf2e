// Package storage provides the local key-value persistence behind the
// invoice collection, the company name and the logo. Values are opaque
// JSON documents; schema awareness lives in the repositories above it.
package storage

import "context"

// Persisted keys. The whole application state lives under these three.
const (
	KeyLogo        = "logo"
	KeyInvoices    = "invoices"
	KeyCompanyName = "company-name"
)

// Store is a per-device key-value store. Writes are last-write-wins per key.
type Store interface {
	// Load reads the value stored under key into dest. When the key is
	// missing or the stored data cannot be decoded it returns false and
	// leaves dest untouched, so callers keep whatever default dest held.
	Load(ctx context.Context, key string, dest any) bool

	// Save serializes value and stores it under key.
	Save(ctx context.Context, key string, value any) error

	// Delete removes the value under key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
