package certificate

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"

	"schoolms/utils"
)

// Renderer produces the durable certificate document and returns its served
// URL. Any failure aborts the certificate being generated; no row is written
// with a broken document pointer.
type Renderer interface {
	Produce(certificateNumber, renderedHTML string, qrPNG []byte) (string, error)
}

var (
	blockBreakRe = regexp.MustCompile(`(?i)<\s*(br\s*/?|/p|/div|/h[1-6])\s*>`)
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// PDFRenderer writes A4 certificate PDFs under dir, named by certificate
// number, and serves them from /certificates.
type PDFRenderer struct {
	dir string
}

// NewPDFRenderer returns a PDFRenderer writing into dir
func NewPDFRenderer(dir string) *PDFRenderer {
	return &PDFRenderer{dir: dir}
}

// Produce renders the certificate PDF and writes it atomically. The output
// location is deterministic: <dir>/<certificateNumber>.pdf.
func (r *PDFRenderer) Produce(certificateNumber, renderedHTML string, qrPNG []byte) (string, error) {
	if err := utils.EnsureDir(r.dir); err != nil {
		return "", &DocumentProductionError{Err: err}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 14, "Certificate", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 7, StripTags(renderedHTML), "", "L", false)

	if len(qrPNG) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(certificateNumber+"-qr", opts, bytes.NewReader(qrPNG))
		pdf.ImageOptions(certificateNumber+"-qr", 160, 235, 35, 35, false, opts, 0, "")
	}

	pdf.SetY(-15)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 10, certificateNumber, "", 0, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", &DocumentProductionError{Err: err}
	}

	filename := certificateNumber + ".pdf"
	if err := utils.WriteFileAtomic(r.dir+"/"+filename, buf.Bytes()); err != nil {
		return "", &DocumentProductionError{Err: err}
	}
	return "/certificates/" + filename, nil
}

// StripTags is a simple HTML-to-text extraction for the PDF body: tags become
// spaces, entities are unescaped and runs of whitespace collapse. Line breaks
// and block ends are kept as newlines so paragraphs survive.
func StripTags(renderedHTML string) string {
	text := blockBreakRe.ReplaceAllString(renderedHTML, "\n")
	text = htmlTagRe.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
