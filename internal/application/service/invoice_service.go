package service

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/rjnotas/notas-api/internal/domain/entity"
	"github.com/rjnotas/notas-api/internal/domain/repository"
	"github.com/rjnotas/notas-api/internal/domain/validation"
	"github.com/rjnotas/notas-api/pkg/apperror"
)

// InvoiceService manages the invoice collection and the active invoice.
//
// The collection state is explicit and owned here: it is loaded once at
// construction, mutated under the lock, and written back through the
// repository on every change. New invoices are persisted immediately, so the
// active invoice id is a collection member at all times.
type InvoiceService struct {
	mu           sync.Mutex
	invoiceRepo  repository.InvoiceRepository
	settingsRepo repository.SettingsRepository
	invoices     []entity.Invoice
	activeID     string
}

// NewInvoiceService loads the persisted collection and seeds it with one
// default invoice when it is observed empty. The first entry becomes active.
func NewInvoiceService(ctx context.Context, invoiceRepo repository.InvoiceRepository, settingsRepo repository.SettingsRepository) *InvoiceService {
	s := &InvoiceService{
		invoiceRepo:  invoiceRepo,
		settingsRepo: settingsRepo,
	}
	s.invoices = invoiceRepo.LoadAll(ctx)
	if len(s.invoices) == 0 {
		seed := entity.NewInvoice(settingsRepo.CompanyName(ctx))
		s.invoices = []entity.Invoice{*seed}
		if err := invoiceRepo.SaveAll(ctx, s.invoices); err != nil {
			log.Printf("Warning: failed to persist seeded invoice: %v", err)
		}
	}
	s.activeID = s.invoices[0].ID
	return s
}

// CreateInvoice builds a fresh invoice seeded with the default company name,
// prepends it to the collection and makes it active.
func (s *InvoiceService) CreateInvoice(ctx context.Context) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv := entity.NewInvoice(s.settingsRepo.CompanyName(ctx))
	s.invoices = append([]entity.Invoice{*inv}, s.invoices...)
	if err := s.invoiceRepo.SaveAll(ctx, s.invoices); err != nil {
		s.invoices = s.invoices[1:]
		return nil, err
	}
	s.activeID = inv.ID
	return inv.Clone(), nil
}

// GetInvoice returns the invoice with the given id.
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inv := s.findByID(id); inv != nil {
		return inv.Clone(), nil
	}
	return nil, apperror.NewNotFoundError("Invoice")
}

// SelectInvoice makes the invoice with the given id active. An unknown id is
// a no-op and returns nil.
func (s *InvoiceService) SelectInvoice(ctx context.Context, id string) *entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv := s.findByID(id)
	if inv == nil {
		return nil
	}
	s.activeID = id
	return inv.Clone()
}

// ActiveInvoice returns the invoice currently open for editing.
func (s *InvoiceService) ActiveInvoice(ctx context.Context) *entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inv := s.findByID(s.activeID); inv != nil {
		return inv.Clone()
	}
	// The active id is kept in sync by every operation; reaching here
	// means the collection was mutated behind our back, so resync.
	if len(s.invoices) > 0 {
		s.activeID = s.invoices[0].ID
		return s.invoices[0].Clone()
	}
	return nil
}

// ListInvoices returns the collection in order, newest first.
func (s *InvoiceService) ListInvoices(ctx context.Context) []entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyAll(s.invoices)
}

// SearchInvoices returns the invoices whose client name or reference number
// contains the term, case-insensitively, preserving collection order. An
// empty term matches everything.
func (s *InvoiceService) SearchInvoices(ctx context.Context, term string) []entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	if term == "" {
		return s.copyAll(s.invoices)
	}
	needle := strings.ToLower(term)
	var matches []entity.Invoice
	for i := range s.invoices {
		inv := &s.invoices[i]
		if strings.Contains(strings.ToLower(inv.ClientName), needle) ||
			strings.Contains(strings.ToLower(inv.InvoiceNumber), needle) {
			matches = append(matches, *inv.Clone())
		}
	}
	return matches
}

// UpdateInvoice is the sole write path for edits. It validates the invoice,
// forces the issue date to today, recomputes the totals of items whose
// calculation inputs changed, upserts it into the collection by id and makes
// it active. When the company name differs from the stored default, the
// default follows it.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	if fieldErrs := validation.ValidateInvoice(inv); fieldErrs != nil {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv = inv.Clone()
	inv.IssueDate = entity.Today()
	s.recalculateChangedItems(inv)

	if idx := s.indexOf(inv.ID); idx >= 0 {
		s.invoices[idx] = *inv
	} else {
		s.invoices = append([]entity.Invoice{*inv}, s.invoices...)
	}
	if err := s.invoiceRepo.SaveAll(ctx, s.invoices); err != nil {
		return nil, err
	}
	s.activeID = inv.ID

	if inv.CompanyName != s.settingsRepo.CompanyName(ctx) {
		if err := s.settingsRepo.SetCompanyName(ctx, inv.CompanyName); err != nil {
			log.Printf("Warning: failed to persist default company name: %v", err)
		}
	}
	return inv.Clone(), nil
}

// DeleteInvoice removes the invoice with the given id. When the removed
// invoice was active, the first remaining entry takes over; deleting the
// last invoice reseeds the collection with a fresh one. Returns the invoice
// that is active afterwards.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	s.invoices = append(s.invoices[:idx], s.invoices[idx+1:]...)

	if s.activeID == id {
		if len(s.invoices) > 0 {
			s.activeID = s.invoices[0].ID
		} else {
			seed := entity.NewInvoice(s.settingsRepo.CompanyName(ctx))
			s.invoices = []entity.Invoice{*seed}
			s.activeID = seed.ID
		}
	}
	if err := s.invoiceRepo.SaveAll(ctx, s.invoices); err != nil {
		return nil, err
	}
	if inv := s.findByID(s.activeID); inv != nil {
		return inv.Clone(), nil
	}
	return nil, nil
}

// recalculateChangedItems recomputes the stored total of every item whose
// quantity, unit price or risk flag differs from the persisted version.
// Items with unchanged inputs keep their total, so a manual override
// survives until one of the inputs moves again. Items without a persisted
// predecessor are computed from scratch.
func (s *InvoiceService) recalculateChangedItems(inv *entity.Invoice) {
	var prev map[string]*entity.InvoiceItem
	if idx := s.indexOf(inv.ID); idx >= 0 {
		existing := &s.invoices[idx]
		prev = make(map[string]*entity.InvoiceItem, len(existing.Items))
		for i := range existing.Items {
			prev[existing.Items[i].ID] = &existing.Items[i]
		}
	}
	for i := range inv.Items {
		it := &inv.Items[i]
		if before, ok := prev[it.ID]; ok && it.CalcInputsEqual(before) {
			continue
		}
		it.Recalculate()
	}
}

func (s *InvoiceService) indexOf(id string) int {
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *InvoiceService) findByID(id string) *entity.Invoice {
	if idx := s.indexOf(id); idx >= 0 {
		return &s.invoices[idx]
	}
	return nil
}

func (s *InvoiceService) copyAll(src []entity.Invoice) []entity.Invoice {
	out := make([]entity.Invoice, len(src))
	for i := range src {
		out[i] = *src[i].Clone()
	}
	return out
}
