package repository

import (
	"context"
	"log"

	"github.com/rjnotas/notas-api/internal/domain/entity"
	"github.com/rjnotas/notas-api/internal/domain/repository"
	"github.com/rjnotas/notas-api/internal/domain/validation"
	"github.com/rjnotas/notas-api/internal/infrastructure/storage"
)

type invoiceRepository struct {
	store storage.Store
}

// NewInvoiceRepository creates an invoice repository over the key-value store
func NewInvoiceRepository(store storage.Store) repository.InvoiceRepository {
	return &invoiceRepository{store: store}
}

// LoadAll reads the collection back from storage. The store itself has no
// schema awareness, so entries are checked here and invalid ones dropped.
func (r *invoiceRepository) LoadAll(ctx context.Context) []entity.Invoice {
	var invoices []entity.Invoice
	if !r.store.Load(ctx, storage.KeyInvoices, &invoices) {
		return nil
	}
	valid := invoices[:0]
	for i := range invoices {
		if validation.ValidStored(&invoices[i]) {
			valid = append(valid, invoices[i])
		}
	}
	if dropped := len(invoices) - len(valid); dropped > 0 {
		log.Printf("invoices: dropped %d invalid stored entries", dropped)
	}
	return valid
}

func (r *invoiceRepository) SaveAll(ctx context.Context, invoices []entity.Invoice) error {
	return r.store.Save(ctx, storage.KeyInvoices, invoices)
}
