package repository

import (
	"context"

	"github.com/rjnotas/notas-api/internal/domain/entity"
)

// InvoiceRepository persists the invoice collection as a whole. The
// collection is small (one local user) and ordered newest-first, so it is
// loaded and written in one piece; last write wins.
type InvoiceRepository interface {
	// LoadAll returns the persisted collection. Entries that fail the
	// structural check are dropped; missing or corrupt data yields an
	// empty collection.
	LoadAll(ctx context.Context) []entity.Invoice
	SaveAll(ctx context.Context, invoices []entity.Invoice) error
}

// SettingsRepository persists the process-wide company name and logo.
type SettingsRepository interface {
	// CompanyName returns the stored default company name, falling back
	// to entity.DefaultCompanyName.
	CompanyName(ctx context.Context) string
	SetCompanyName(ctx context.Context, name string) error

	// Logo returns the stored logo data URL, or "" when absent.
	Logo(ctx context.Context) string
	SetLogo(ctx context.Context, dataURL string) error
	ClearLogo(ctx context.Context) error
}
