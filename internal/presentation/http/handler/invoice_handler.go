package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rjnotas/notas-api/internal/application/service"
	"github.com/rjnotas/notas-api/internal/domain/entity"
	"github.com/rjnotas/notas-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices, optionally filtered by a search term that
// matches client name or reference number.
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices := h.invoiceService.SearchInvoices(c.Request.Context(), c.Query("search"))
	response.OK(c, "Invoices retrieved successfully", invoices)
}

// Create handles creating a fresh invoice, which becomes active.
func (h *InvoiceHandler) Create(c *gin.Context) {
	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Nova nota de pagamento criada.", invoice)
}

// Get handles getting a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Active handles getting the invoice currently open for editing
func (h *InvoiceHandler) Active(c *gin.Context) {
	invoice := h.invoiceService.ActiveInvoice(c.Request.Context())
	if invoice == nil {
		response.NotFound(c, "No active invoice")
		return
	}
	response.OK(c, "Active invoice retrieved successfully", invoice)
}

// Select handles making an invoice the active one
func (h *InvoiceHandler) Select(c *gin.Context) {
	invoice := h.invoiceService.SelectInvoice(c.Request.Context(), c.Param("id"))
	if invoice == nil {
		response.NotFound(c, "Invoice not found")
		return
	}
	response.OK(c, "Invoice selected successfully", invoice)
}

// Update handles editing an invoice. This is the sole write path: the
// client commits on every change that passes validation.
func (h *InvoiceHandler) Update(c *gin.Context) {
	var invoice entity.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	invoice.ID = c.Param("id")

	updated, err := h.invoiceService.UpdateInvoice(c.Request.Context(), &invoice)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice updated successfully", updated)
}

// Delete handles deleting an invoice. The response carries the invoice that
// is active after the removal.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	active, err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "A nota de pagamento foi apagada com sucesso.", active)
}
