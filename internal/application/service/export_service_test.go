package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/rjnotas/notas-api/internal/config"
	"github.com/rjnotas/notas-api/internal/infrastructure/repository"
	"github.com/rjnotas/notas-api/internal/infrastructure/storage"
	"github.com/rjnotas/notas-api/pkg/apperror"
)

func newTestExportService(t *testing.T) (*ExportService, *InvoiceService) {
	t.Helper()
	store := storage.NewMemoryStore()
	settingsRepo := repository.NewSettingsRepository(store)
	invoiceSvc := NewInvoiceService(context.Background(),
		repository.NewInvoiceRepository(store), settingsRepo)
	exportSvc := NewExportService(invoiceSvc, settingsRepo, config.ExportConfig{
		Width:      400,
		PixelRatio: 1,
		Quality:    80,
	})
	return exportSvc, invoiceSvc
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		clientName string
		ext        string
		want       string
	}{
		{"Maria Silva", ".jpeg", "nota-Maria_Silva.jpeg"},
		{"Maria  da\tSilva", ".pdf", "nota-Maria__da_Silva.pdf"},
		{"", ".pdf", "nota-nota.pdf"},
		{"João", ".jpeg", "nota-João.jpeg"},
	}
	for _, tc := range tests {
		if got := exportFilename(tc.clientName, tc.ext); got != tc.want {
			t.Errorf("exportFilename(%q, %q) = %q, want %q", tc.clientName, tc.ext, got, tc.want)
		}
	}
}

func TestPageLayout(t *testing.T) {
	orientation, size := pageLayout(800, 1200)
	if orientation != "P" || size.Wd != 800 || size.Ht != 1200 {
		t.Errorf("portrait layout = %q %v", orientation, size)
	}
	orientation, size = pageLayout(1200, 800)
	if orientation != "L" || size.Wd != 800 || size.Ht != 1200 {
		t.Errorf("landscape layout = %q %v", orientation, size)
	}
	if orientation, _ := pageLayout(500, 500); orientation != "P" {
		t.Errorf("square layout = %q, want portrait", orientation)
	}
}

func TestExportJPEG(t *testing.T) {
	exportSvc, invoiceSvc := newTestExportService(t)
	ctx := context.Background()

	inv := editOf(invoiceSvc.ActiveInvoice(ctx), "Maria Silva")
	inv.Items[0].Quantity = 3
	inv.Items[0].UnitPrice = 10
	updated, err := invoiceSvc.UpdateInvoice(ctx, inv)
	if err != nil {
		t.Fatalf("UpdateInvoice: %v", err)
	}

	art, err := exportSvc.ExportJPEG(ctx, updated.ID)
	if err != nil {
		t.Fatalf("ExportJPEG: %v", err)
	}
	if art.Filename != "nota-Maria_Silva.jpeg" {
		t.Errorf("filename = %q", art.Filename)
	}
	if art.ContentType != "image/jpeg" {
		t.Errorf("content type = %q", art.ContentType)
	}
	if !bytes.HasPrefix(art.Data, []byte{0xFF, 0xD8}) {
		t.Error("artifact is not a JPEG stream")
	}
}

func TestExportPDF(t *testing.T) {
	exportSvc, invoiceSvc := newTestExportService(t)
	ctx := context.Background()

	updated, err := invoiceSvc.UpdateInvoice(ctx, editOf(invoiceSvc.ActiveInvoice(ctx), "Maria Silva"))
	if err != nil {
		t.Fatalf("UpdateInvoice: %v", err)
	}

	art, err := exportSvc.ExportPDF(ctx, updated.ID)
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if art.Filename != "nota-Maria_Silva.pdf" {
		t.Errorf("filename = %q", art.Filename)
	}
	if art.ContentType != "application/pdf" {
		t.Errorf("content type = %q", art.ContentType)
	}
	if !bytes.HasPrefix(art.Data, []byte("%PDF")) {
		t.Error("artifact is not a PDF stream")
	}
}

func TestExportUnknownInvoice(t *testing.T) {
	exportSvc, _ := newTestExportService(t)
	_, err := exportSvc.ExportJPEG(context.Background(), "missing")
	if apperror.GetAppError(err).Code != 404 {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestBuildNoteDocumentRenders(t *testing.T) {
	_, invoiceSvc := newTestExportService(t)
	ctx := context.Background()

	inv := invoiceSvc.ActiveInvoice(ctx)
	inv.ClientName = "Maria Silva"
	inv.DeliveryFee = 10
	inv.Adjustment = -5

	doc := BuildNoteDocument(inv, nil, 400)
	img := doc.Render(2, "")
	bounds := img.Bounds()
	if bounds.Dx() != 800 {
		t.Errorf("rendered width = %d, want width scaled by pixel ratio", bounds.Dx())
	}
	if bounds.Dy() <= 0 {
		t.Error("rendered document has no height")
	}
}

func TestFormatIssueDate(t *testing.T) {
	tests := []struct {
		iso  string
		want string
	}{
		{"2026-08-30", "30 de agosto de 2026"},
		{"2025-01-02", "2 de janeiro de 2025"},
		{"not-a-date", "Data Inválida"},
		{"", "Data Inválida"},
	}
	for _, tc := range tests {
		if got := formatIssueDate(tc.iso); got != tc.want {
			t.Errorf("formatIssueDate(%q) = %q, want %q", tc.iso, got, tc.want)
		}
	}
}
