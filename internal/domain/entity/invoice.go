package entity

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rjnotas/notas-api/pkg/money"
)

// Defaults applied when a field is left blank
const (
	DefaultCompanyName = "Sua Empresa"
	DefaultService     = "Serviço Prestado"
)

// IssueDateLayout is the ISO calendar date layout used for issue dates.
const IssueDateLayout = "2006-01-02"

// Number is a float64 that also decodes from a quoted numeric string, so
// form-originated payloads like "12.5" coerce the same way as 12.5.
type Number float64

// UnmarshalJSON accepts a JSON number, a numeric string, an empty string or
// null. Empty string and null coerce to zero.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*n = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "" {
			*n = 0
			return nil
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		*n = Number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// MarshalJSON encodes the value as a plain JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// InvoiceItem represents one billable line within an invoice.
//
// Total is derived but stored: it is recomputed only when Quantity, UnitPrice
// or IsRisk change, so a manual override survives until the next such change.
type InvoiceItem struct {
	ID          string `json:"id" validate:"required"`
	Ref         string `json:"ref"`
	Description string `json:"description" validate:"required"`
	IsRisk      bool   `json:"isRisk"`
	Quantity    Number `json:"quantity" validate:"gte=0"`
	UnitPrice   Number `json:"unitPrice" validate:"gte=0"`
	Total       Number `json:"total" validate:"gte=0"`
}

// Invoice represents a single payment note for one client and service.
type Invoice struct {
	ID            string        `json:"id" validate:"required"`
	InvoiceNumber string        `json:"invoiceNumber" validate:"required"`
	ClientName    string        `json:"clientName" validate:"required"`
	Service       string        `json:"service"`
	IssueDate     string        `json:"issueDate" validate:"required"`
	Items         []InvoiceItem `json:"items" validate:"min=1,dive"`
	CompanyName   string        `json:"companyName" validate:"required"`
	PricePerMeter Number        `json:"pricePerMeter" validate:"gte=0"`
	DeliveryFee   Number        `json:"deliveryFee" validate:"gte=0"`
	Adjustment    Number        `json:"adjustment"`
}

// Totals is the derived aggregate breakdown of an invoice.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Adjustment  float64 `json:"adjustment"`
	Total       float64 `json:"total"`
}

// ComputeItemTotal derives a line total from quantity and unit price. A risk
// item is measured in centimeters and billed per meter equivalent, so its raw
// total is scaled down by 100 before rounding to the nearest ten cents.
func ComputeItemTotal(quantity, unitPrice float64, isRisk bool) float64 {
	raw := quantity * unitPrice
	if isRisk {
		raw = raw / 100
	}
	return money.RoundToNearestTenCents(raw)
}

// Recalculate overwrites the stored total from the current calculation inputs.
func (it *InvoiceItem) Recalculate() {
	it.Total = Number(ComputeItemTotal(float64(it.Quantity), float64(it.UnitPrice), it.IsRisk))
}

// CalcInputsEqual reports whether two items share the same calculation
// inputs. When they differ the stored total must be recomputed.
func (it *InvoiceItem) CalcInputsEqual(other *InvoiceItem) bool {
	return it.Quantity == other.Quantity &&
		it.UnitPrice == other.UnitPrice &&
		it.IsRisk == other.IsRisk
}

// Summary derives the aggregate breakdown. Item totals are already rounded;
// no rounding is applied here.
func (inv *Invoice) Summary() Totals {
	var subtotal float64
	for _, it := range inv.Items {
		subtotal += float64(it.Total)
	}
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: float64(inv.DeliveryFee),
		Adjustment:  float64(inv.Adjustment),
		Total:       subtotal + float64(inv.DeliveryFee) + float64(inv.Adjustment),
	}
}

// Clone returns a deep copy of the invoice.
func (inv *Invoice) Clone() *Invoice {
	cp := *inv
	cp.Items = make([]InvoiceItem, len(inv.Items))
	copy(cp.Items, inv.Items)
	return &cp
}

// NewInvoiceItem creates a blank default line item.
func NewInvoiceItem() InvoiceItem {
	return InvoiceItem{
		ID:       "item-" + uuid.New().String(),
		Quantity: 1,
	}
}

// NewInvoice builds a fresh invoice with a unique id and reference number,
// one blank item and today's issue date. The company name seeds from the
// process-wide default, falling back to DefaultCompanyName.
func NewInvoice(companyName string) *Invoice {
	if companyName == "" {
		companyName = DefaultCompanyName
	}
	return &Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: uuid.New().String(),
		Service:       DefaultService,
		IssueDate:     Today(),
		Items:         []InvoiceItem{NewInvoiceItem()},
		CompanyName:   companyName,
	}
}

// Today returns the current calendar date in ISO form.
func Today() string {
	return time.Now().Format(IssueDateLayout)
}
