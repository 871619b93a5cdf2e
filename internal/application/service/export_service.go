package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rjnotas/notas-api/internal/config"
	"github.com/rjnotas/notas-api/internal/domain/entity"
	"github.com/rjnotas/notas-api/internal/domain/repository"
	"github.com/rjnotas/notas-api/pkg/apperror"
	"github.com/rjnotas/notas-api/pkg/money"
	"github.com/rjnotas/notas-api/pkg/renderer"
)

// Artifact is a downloadable export result.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders an invoice into downloadable artifacts. Exports are
// read-only with respect to invoice data: a failed attempt is aborted and
// reported, nothing else.
type ExportService struct {
	invoiceService *InvoiceService
	settingsRepo   repository.SettingsRepository
	cfg            config.ExportConfig
}

// NewExportService creates a new export service
func NewExportService(invoiceService *InvoiceService, settingsRepo repository.SettingsRepository, cfg config.ExportConfig) *ExportService {
	return &ExportService{
		invoiceService: invoiceService,
		settingsRepo:   settingsRepo,
		cfg:            cfg,
	}
}

// ExportJPEG renders the invoice to a raster snapshot and encodes it as JPEG.
func (s *ExportService) ExportJPEG(ctx context.Context, id string) (*Artifact, error) {
	inv, err := s.invoiceService.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.encodeSnapshot(ctx, inv)
	if err != nil {
		return nil, apperror.NewExportError("Não foi possível gerar a imagem JPEG.")
	}
	return &Artifact{
		Filename:    exportFilename(inv.ClientName, ".jpeg"),
		ContentType: "image/jpeg",
		Data:        data,
	}, nil
}

// ExportPDF wraps the snapshot in a single-page PDF sized to the snapshot's
// pixel dimensions, landscape when it is wider than tall.
func (s *ExportService) ExportPDF(ctx context.Context, id string) (*Artifact, error) {
	inv, err := s.invoiceService.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	jpegData, err := s.encodeSnapshot(ctx, inv)
	if err != nil {
		return nil, apperror.NewExportError("Não foi possível gerar o arquivo PDF.")
	}
	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(jpegData))
	if err != nil {
		return nil, apperror.NewExportError("Não foi possível gerar o arquivo PDF.")
	}
	orientation, size := pageLayout(float64(imgCfg.Width), float64(imgCfg.Height))
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("nota", opts, bytes.NewReader(jpegData))
	pageW, pageH := pdf.GetPageSize()
	pdf.ImageOptions("nota", 0, 0, pageW, pageH, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperror.NewExportError("Não foi possível gerar o arquivo PDF.")
	}
	return &Artifact{
		Filename:    exportFilename(inv.ClientName, ".pdf"),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

// pageLayout picks the page orientation and size for a snapshot of the given
// pixel dimensions: landscape when wider than tall, one point per pixel.
// gofpdf expects the size in portrait order; the orientation flips it.
func pageLayout(w, h float64) (string, gofpdf.SizeType) {
	orientation := "P"
	if w > h {
		orientation = "L"
	}
	return orientation, gofpdf.SizeType{Wd: min(w, h), Ht: max(w, h)}
}

func (s *ExportService) encodeSnapshot(ctx context.Context, inv *entity.Invoice) ([]byte, error) {
	logo := s.loadLogo(ctx)
	doc := BuildNoteDocument(inv, logo, float64(s.cfg.Width))
	img := doc.Render(s.cfg.PixelRatio, s.cfg.FontPath)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.cfg.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ExportService) loadLogo(ctx context.Context) image.Image {
	dataURL := s.settingsRepo.Logo(ctx)
	if dataURL == "" {
		return nil
	}
	raw, err := DecodeLogo(dataURL, 0)
	if err != nil {
		log.Printf("export: ignoring unusable logo: %v", err)
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		log.Printf("export: ignoring undecodable logo: %v", err)
		return nil
	}
	return img
}

// BuildNoteDocument lays out the payment note the way the editing preview
// shows it: logo and reference header, client and service blocks, the item
// table and the totals breakdown. Zero-valued delivery fee and adjustment
// lines are omitted; the adjustment label follows its sign.
func BuildNoteDocument(inv *entity.Invoice, logo image.Image, width float64) *renderer.Document {
	doc := renderer.NewDocument(width)

	if logo != nil {
		doc.ImageOverlay(logo, 140, 140)
	} else {
		doc.PlaceholderOverlay(140, 140, "Logo da Empresa")
	}
	doc.Row(renderer.Cell{Text: "Nota de pagamento", Align: renderer.AlignRight, Size: 16, Bold: true, Color: renderer.Blue})
	doc.Row(renderer.Cell{Text: "Ref: " + inv.InvoiceNumber, Align: renderer.AlignRight, Size: 10, Color: renderer.Gray})
	doc.Row(renderer.Cell{Text: formatIssueDate(inv.IssueDate), Align: renderer.AlignRight, Size: 12, Color: renderer.Gray})
	doc.Spacer(80)
	doc.Divider()
	doc.Spacer(12)

	clientName := inv.ClientName
	if clientName == "" {
		clientName = "Nome do Cliente"
	}
	service := inv.Service
	if service == "" {
		service = entity.DefaultService
	}
	doc.Row(
		renderer.Cell{Text: "POR CLIENTE", Frac: 0.5, Size: 11, Bold: true, Color: renderer.Gray},
		renderer.Cell{Text: "TIPO DE SERVIÇO", Frac: 0.5, Align: renderer.AlignRight, Size: 11, Bold: true, Color: renderer.Gray},
	)
	doc.Row(
		renderer.Cell{Text: clientName, Frac: 0.5, Size: 24, Bold: true},
		renderer.Cell{Text: service, Frac: 0.5, Align: renderer.AlignRight, Size: 14, Bold: true},
	)
	doc.Spacer(20)

	doc.RowBG(renderer.HeaderBG,
		renderer.Cell{Text: "REF.", Frac: 0.12, Size: 11, Bold: true, Color: renderer.Gray},
		renderer.Cell{Text: "DESCRIÇÃO", Frac: 0.40, Size: 11, Bold: true, Color: renderer.Gray},
		renderer.Cell{Text: "QTD.", Frac: 0.12, Align: renderer.AlignRight, Size: 11, Bold: true, Color: renderer.Gray},
		renderer.Cell{Text: "PREÇO UNIT.", Frac: 0.18, Align: renderer.AlignRight, Size: 11, Bold: true, Color: renderer.Gray},
		renderer.Cell{Text: "TOTAL", Frac: 0.18, Align: renderer.AlignRight, Size: 11, Bold: true, Color: renderer.Gray},
	)
	for i := range inv.Items {
		it := &inv.Items[i]
		desc := it.Description
		if it.IsRisk {
			desc += " (risco)"
		}
		doc.Row(
			renderer.Cell{Text: it.Ref, Frac: 0.12, Size: 12, Color: renderer.Gray},
			renderer.Cell{Text: desc, Frac: 0.40, Size: 12},
			renderer.Cell{Text: formatQuantity(float64(it.Quantity)), Frac: 0.12, Align: renderer.AlignRight, Size: 12},
			renderer.Cell{Text: money.FormatBRL(float64(it.UnitPrice)), Frac: 0.18, Align: renderer.AlignRight, Size: 12},
			renderer.Cell{Text: money.FormatBRL(float64(it.Total)), Frac: 0.18, Align: renderer.AlignRight, Size: 12, Bold: true},
		)
	}
	doc.Divider()

	totals := inv.Summary()
	totalsRow(doc, "Subtotal", money.FormatBRL(totals.Subtotal), false)
	if totals.DeliveryFee != 0 {
		totalsRow(doc, "Taxa de Entrega", money.FormatBRL(totals.DeliveryFee), false)
	}
	if totals.Adjustment != 0 {
		label := "Acréscimo"
		if totals.Adjustment < 0 {
			label = "Desconto"
		}
		totalsRow(doc, label, money.FormatBRL(totals.Adjustment), false)
	}
	totalsRow(doc, "Total", money.FormatBRL(totals.Total), true)

	doc.Spacer(28)
	doc.Row(renderer.Cell{Text: "Obrigado pela preferência!", Align: renderer.AlignCenter, Size: 11, Color: renderer.Gray})
	return doc
}

func totalsRow(doc *renderer.Document, label, value string, grand bool) {
	size, col := 12.0, renderer.Gray
	valueCol := renderer.Black
	if grand {
		size, col = 15, renderer.Black
		valueCol = renderer.Blue
	}
	doc.Row(
		renderer.Cell{Text: "", Frac: 0.5},
		renderer.Cell{Text: label, Frac: 0.25, Size: size, Bold: grand, Color: col},
		renderer.Cell{Text: value, Frac: 0.25, Align: renderer.AlignRight, Size: size, Bold: true, Color: valueCol},
	)
}

var ptBRMonths = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func formatIssueDate(iso string) string {
	t, err := time.Parse(entity.IssueDateLayout, iso)
	if err != nil {
		return "Data Inválida"
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), ptBRMonths[t.Month()-1], t.Year())
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var whitespaceRe = regexp.MustCompile(`\s`)

// exportFilename builds "nota-<client>.<ext>" with whitespace collapsed to
// underscores, falling back to "nota" for an unnamed client.
func exportFilename(clientName, ext string) string {
	name := whitespaceRe.ReplaceAllString(clientName, "_")
	if name == "" {
		name = "nota"
	}
	return "nota-" + name + ext
}
