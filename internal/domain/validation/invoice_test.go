package validation

import (
	"testing"

	"github.com/rjnotas/notas-api/internal/domain/entity"
)

func validInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "ref-1",
		ClientName:    "Maria Silva",
		IssueDate:     "2026-08-30",
		CompanyName:   "Sua Empresa",
		Items: []entity.InvoiceItem{
			{ID: "item-1", Description: "Costura", Quantity: 3, UnitPrice: 10, Total: 30},
		},
	}
}

func TestValidateInvoiceOK(t *testing.T) {
	if errs := ValidateInvoice(validInvoice()); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateInvoiceNegativeAdjustmentAllowed(t *testing.T) {
	inv := validInvoice()
	inv.Adjustment = -5
	if errs := ValidateInvoice(inv); errs != nil {
		t.Fatalf("negative adjustment should be valid, got %v", errs)
	}
}

func TestValidateInvoiceReportsEveryViolation(t *testing.T) {
	inv := validInvoice()
	inv.ClientName = ""
	inv.CompanyName = ""
	inv.Items[0].Description = ""
	inv.Items[0].Quantity = -1

	errs := ValidateInvoice(inv)
	if len(errs) != 4 {
		t.Fatalf("expected 4 field errors, got %d: %v", len(errs), errs)
	}

	byField := map[string]string{}
	for _, fe := range errs {
		byField[fe.Field] = fe.Message
	}
	if byField["clientName"] != "Nome do cliente é obrigatório." {
		t.Errorf("clientName message = %q", byField["clientName"])
	}
	if byField["companyName"] != "Nome da empresa é obrigatório." {
		t.Errorf("companyName message = %q", byField["companyName"])
	}
	if byField["items[0].description"] != "Descrição é obrigatória." {
		t.Errorf("item description message = %q", byField["items[0].description"])
	}
	if byField["items[0].quantity"] != "Quantidade deve ser um número válido." {
		t.Errorf("item quantity message = %q", byField["items[0].quantity"])
	}
}

func TestValidateInvoiceRequiresItems(t *testing.T) {
	inv := validInvoice()
	inv.Items = nil
	errs := ValidateInvoice(inv)
	if len(errs) != 1 {
		t.Fatalf("expected 1 field error, got %v", errs)
	}
	if errs[0].Field != "items" || errs[0].Message != "Pelo menos um item é obrigatório." {
		t.Errorf("unexpected error %+v", errs[0])
	}
}

func TestValidateItem(t *testing.T) {
	it := entity.InvoiceItem{ID: "item-1", Description: "Costura", Quantity: 1}
	if errs := ValidateItem(&it); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}

	it.Description = ""
	it.UnitPrice = -1
	errs := ValidateItem(&it)
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %v", errs)
	}
	byField := map[string]string{}
	for _, fe := range errs {
		byField[fe.Field] = fe.Message
	}
	if byField["description"] != "Descrição é obrigatória." {
		t.Errorf("description message = %q", byField["description"])
	}
	if byField["unitPrice"] != "Preço deve ser um número válido." {
		t.Errorf("unitPrice message = %q", byField["unitPrice"])
	}
}

func TestValidStoredAcceptsBlankDrafts(t *testing.T) {
	draft := entity.NewInvoice("")
	if !ValidStored(draft) {
		t.Error("a freshly created draft must be storable")
	}
}

func TestValidStoredRejectsStructurallyBroken(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*entity.Invoice)
	}{
		{"missing id", func(inv *entity.Invoice) { inv.ID = "" }},
		{"missing number", func(inv *entity.Invoice) { inv.InvoiceNumber = "" }},
		{"no items", func(inv *entity.Invoice) { inv.Items = nil }},
		{"negative quantity", func(inv *entity.Invoice) { inv.Items[0].Quantity = -1 }},
		{"negative delivery fee", func(inv *entity.Invoice) { inv.DeliveryFee = -1 }},
		{"item without id", func(inv *entity.Invoice) { inv.Items[0].ID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := entity.NewInvoice("")
			tc.mutate(inv)
			if ValidStored(inv) {
				t.Error("expected invoice to be rejected")
			}
		})
	}
}
