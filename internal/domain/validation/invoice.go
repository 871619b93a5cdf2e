// Package validation checks invoices field by field, reporting every
// violation rather than failing on the first one.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rjnotas/notas-api/internal/domain/entity"
	"github.com/rjnotas/notas-api/pkg/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names so errors line up with payloads.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Per-field messages, keyed by "<json field>|<failed rule>".
var messages = map[string]string{
	"id|required":            "Identificador é obrigatório.",
	"invoiceNumber|required": "Número da nota é obrigatório.",
	"clientName|required":    "Nome do cliente é obrigatório.",
	"issueDate|required":     "Data de emissão é obrigatória.",
	"items|min":              "Pelo menos um item é obrigatório.",
	"companyName|required":   "Nome da empresa é obrigatório.",
	"pricePerMeter|gte":      "Preço por metro não pode ser negativo.",
	"deliveryFee|gte":        "Taxa de entrega não pode ser negativa.",
	"description|required":   "Descrição é obrigatória.",
	"quantity|gte":           "Quantidade deve ser um número válido.",
	"unitPrice|gte":          "Preço deve ser um número válido.",
	"total|gte":              "Total deve ser um número válido.",
}

// ValidateInvoice validates an invoice for persistence. It returns one entry
// per violated field, or nil when the invoice is valid. Strings are not
// trimmed before the length check; whitespace counts as content.
func ValidateInvoice(inv *entity.Invoice) []apperror.FieldError {
	err := validate.Struct(inv)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperror.FieldError{{Field: "invoice", Message: err.Error()}}
	}
	fieldErrs := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: messageFor(fe),
		})
	}
	return fieldErrs
}

// ValidateItem validates a single line item with the same rules and messages
// as ValidateInvoice.
func ValidateItem(it *entity.InvoiceItem) []apperror.FieldError {
	err := validate.Struct(it)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperror.FieldError{{Field: "item", Message: err.Error()}}
	}
	fieldErrs := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: messageFor(fe),
		})
	}
	return fieldErrs
}

// ValidStored is the lenient structural check applied to invoices read back
// from storage. Blank drafts (empty client name or item descriptions) are
// legal at rest: a freshly created invoice is persisted before its first
// edit. Entries failing this check are dropped silently.
func ValidStored(inv *entity.Invoice) bool {
	if inv.ID == "" || inv.InvoiceNumber == "" {
		return false
	}
	if len(inv.Items) == 0 {
		return false
	}
	if inv.PricePerMeter < 0 || inv.DeliveryFee < 0 {
		return false
	}
	for i := range inv.Items {
		it := &inv.Items[i]
		if it.ID == "" || it.Quantity < 0 || it.UnitPrice < 0 || it.Total < 0 {
			return false
		}
	}
	return true
}

// fieldPath turns "Invoice.items[0].quantity" into "items[0].quantity".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"|"+fe.Tag()]; ok {
		return msg
	}
	return "Valor inválido."
}
