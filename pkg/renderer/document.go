// Package renderer builds a raster snapshot of a visual document. It plays
// the same role for image export that an ESC/POS byte-stream builder plays
// for receipt printing: callers chain rows, spacers and images, then render
// the accumulated document to an RGBA canvas.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Text alignment within a cell
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Common palette
var (
	Black     = color.RGBA{A: 255}
	Gray      = color.RGBA{R: 107, G: 114, B: 128, A: 255}
	LightGray = color.RGBA{R: 229, G: 231, B: 235, A: 255}
	HeaderBG  = color.RGBA{R: 243, G: 244, B: 246, A: 255}
	Blue      = color.RGBA{R: 37, G: 99, B: 235, A: 255}
)

// Cell is one positioned text fragment within a row.
type Cell struct {
	Text  string
	Frac  float64 // share of the content width; 0 splits the row evenly
	Align Align
	Size  float64 // font size in logical pixels; 0 means 12
	Bold  bool
	Color color.Color // nil means black
}

type op struct {
	height float64
	draw   func(j *renderJob, top float64)
}

// Document accumulates visual content at logical-pixel coordinates and
// renders it at a configurable pixel ratio. Every element declares its
// height when added, so the canvas is sized before any drawing happens.
type Document struct {
	width  float64
	margin float64
	ops    []op
}

// NewDocument creates an empty document with the given logical width.
func NewDocument(width float64) *Document {
	return &Document{width: width, margin: 40}
}

// Width returns the logical width of the document.
func (d *Document) Width() float64 { return d.width }

func (d *Document) contentWidth() float64 { return d.width - 2*d.margin }

// Spacer adds vertical whitespace.
func (d *Document) Spacer(h float64) *Document {
	d.ops = append(d.ops, op{height: h, draw: func(*renderJob, float64) {}})
	return d
}

// Divider adds a full-width horizontal rule with padding above and below.
func (d *Document) Divider() *Document {
	d.ops = append(d.ops, op{height: 17, draw: func(j *renderJob, top float64) {
		j.fillRect(d.margin, top+8, d.contentWidth(), 1, LightGray)
	}})
	return d
}

// Row adds one line of cells laid out across the content width.
func (d *Document) Row(cells ...Cell) *Document {
	return d.RowBG(nil, cells...)
}

// RowBG adds a row with a background fill behind it.
func (d *Document) RowBG(bg color.Color, cells ...Cell) *Document {
	rowCells := append([]Cell(nil), cells...)
	h := 0.0
	for _, c := range rowCells {
		if lh := cellSize(c) * 1.8; lh > h {
			h = lh
		}
	}
	d.ops = append(d.ops, op{height: h, draw: func(j *renderJob, top float64) {
		if bg != nil {
			j.fillRect(d.margin, top, d.contentWidth(), h, bg)
		}
		x := d.margin
		for _, c := range rowCells {
			cw := d.contentWidth() * cellFrac(c, len(rowCells))
			tx, ax := x+4, 0.0
			switch c.Align {
			case AlignCenter:
				tx, ax = x+cw/2, 0.5
			case AlignRight:
				tx, ax = x+cw-4, 1.0
			}
			j.text(c.Text, tx, top+h/2, ax, cellSize(c), c.Bold, cellColor(c))
			x += cw
		}
	}})
	return d
}

// Image adds a picture drawn at the left edge, scaled to w x h.
func (d *Document) Image(img image.Image, w, h float64) *Document {
	d.ops = append(d.ops, op{height: h, draw: func(j *renderJob, top float64) {
		j.drawImage(img, d.margin, top, w, h)
	}})
	return d
}

// ImageOverlay draws a picture at the current position without consuming
// vertical space, so following rows flow beside it.
func (d *Document) ImageOverlay(img image.Image, w, h float64) *Document {
	d.ops = append(d.ops, op{height: 0, draw: func(j *renderJob, top float64) {
		j.drawImage(img, d.margin, top, w, h)
	}})
	return d
}

// PlaceholderOverlay draws a labelled gray box without consuming vertical
// space.
func (d *Document) PlaceholderOverlay(w, h float64, label string) *Document {
	d.ops = append(d.ops, op{height: 0, draw: func(j *renderJob, top float64) {
		j.fillRect(d.margin, top, w, h, LightGray)
		j.text(label, d.margin+w/2, top+h/2, 0.5, 11, false, Gray)
	}})
	return d
}

// Placeholder adds a labelled gray box where an image would go.
func (d *Document) Placeholder(w, h float64, label string) *Document {
	d.ops = append(d.ops, op{height: h, draw: func(j *renderJob, top float64) {
		j.fillRect(d.margin, top, w, h, LightGray)
		j.text(label, d.margin+w/2, top+h/2, 0.5, 11, false, Gray)
	}})
	return d
}

// Render draws the document onto a white canvas at the given pixel ratio.
// Text uses the TrueType font at fontPath, with a tiny built-in face as a
// last resort when the font cannot be loaded.
func (d *Document) Render(scale float64, fontPath string) image.Image {
	if scale <= 0 {
		scale = 1
	}
	height := 2 * d.margin
	for _, o := range d.ops {
		height += o.height
	}
	dc := gg.NewContext(int(d.width*scale+0.5), int(height*scale+0.5))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	j := &renderJob{dc: dc, scale: scale, fontPath: fontPath, faces: map[string]font.Face{}}
	y := d.margin
	for _, o := range d.ops {
		o.draw(j, y)
		y += o.height
	}
	return dc.Image()
}

func cellSize(c Cell) float64 {
	if c.Size > 0 {
		return c.Size
	}
	return 12
}

func cellFrac(c Cell, n int) float64 {
	if c.Frac > 0 {
		return c.Frac
	}
	return 1 / float64(n)
}

func cellColor(c Cell) color.Color {
	if c.Color != nil {
		return c.Color
	}
	return Black
}

type renderJob struct {
	dc       *gg.Context
	scale    float64
	fontPath string
	faces    map[string]font.Face
}

func (j *renderJob) fillRect(x, y, w, h float64, col color.Color) {
	j.dc.SetColor(col)
	j.dc.DrawRectangle(x*j.scale, y*j.scale, w*j.scale, h*j.scale)
	j.dc.Fill()
}

func (j *renderJob) text(s string, x, y, ax, size float64, bold bool, col color.Color) {
	if s == "" {
		return
	}
	j.dc.SetFontFace(j.face(size, bold))
	j.dc.SetColor(col)
	j.dc.DrawStringAnchored(s, x*j.scale, y*j.scale, ax, 0.35)
}

func (j *renderJob) drawImage(img image.Image, x, y, w, h float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	sx := w * j.scale / float64(b.Dx())
	sy := h * j.scale / float64(b.Dy())
	j.dc.Push()
	j.dc.Scale(sx, sy)
	j.dc.DrawImage(img, int(x*j.scale/sx), int(y*j.scale/sy))
	j.dc.Pop()
}

func (j *renderJob) face(size float64, bold bool) font.Face {
	key := fmt.Sprintf("%.1f|%t", size, bold)
	if f, ok := j.faces[key]; ok {
		return f
	}
	f := j.loadFace(size, bold)
	j.faces[key] = f
	return f
}

func (j *renderJob) loadFace(size float64, bold bool) font.Face {
	points := size * j.scale
	if bold {
		boldPath := strings.Replace(j.fontPath, ".ttf", "-Bold.ttf", 1)
		if f, err := gg.LoadFontFace(boldPath, points); err == nil {
			return f
		}
	}
	if f, err := gg.LoadFontFace(j.fontPath, points); err == nil {
		return f
	}
	return basicfont.Face7x13
}
