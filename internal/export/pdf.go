package export

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/abhisek/thoughtchain/internal/cot"
)

// PDFConfig controls PDF page layout.
type PDFConfig struct {
	PageSize     string  `mapstructure:"page_size"`
	MarginsMM    float64 `mapstructure:"margins_mm"`
	FontFamily   string  `mapstructure:"font_family"`
	PrimaryColor [3]int  `mapstructure:"primary_color"`
}

// DefaultPDFConfig returns an A4 layout with core Helvetica fonts.
func DefaultPDFConfig() PDFConfig {
	return PDFConfig{
		PageSize:     "A4",
		MarginsMM:    18,
		FontFamily:   "Helvetica",
		PrimaryColor: [3]int{139, 92, 246},
	}
}

// kindColors mirrors the terminal kind palette.
var kindColors = map[string][3]int{
	"calculation": {255, 183, 77},
	"conclusion":  {100, 181, 246},
	"assumption":  {186, 104, 200},
	"analysis":    {77, 182, 172},
	"reasoning":   {129, 199, 132},
}

// PDF writes run as a PDF report.
func PDF(w io.Writer, run *cot.Run, cfg PDFConfig) error {
	doc := NewDocument(run)

	pdf := fpdf.New("P", "mm", cfg.PageSize, "")
	pdf.SetMargins(cfg.MarginsMM, cfg.MarginsMM, cfg.MarginsMM)
	pdf.SetAutoPageBreak(true, cfg.MarginsMM)
	if !doc.CreatedAt.IsZero() {
		pdf.SetCreationDate(doc.CreatedAt)
	}

	// Core fonts are cp1252; translate UTF-8 input.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := fmt.Sprintf("%s Problem", titleCaser.String(doc.Category))
	pdf.SetTitle(title, true)
	pdf.AddPage()

	// ---------- title ----------
	pdf.SetFont(cfg.FontFamily, "B", 20)
	pdf.SetTextColor(cfg.PrimaryColor[0], cfg.PrimaryColor[1], cfg.PrimaryColor[2])
	pdf.CellFormat(0, 12, tr(title), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont(cfg.FontFamily, "", 12)
	pdf.MultiCell(0, 6, tr(doc.Problem), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont(cfg.FontFamily, "I", 9)
	pdf.SetTextColor(100, 116, 139)
	meta := fmt.Sprintf("Model: %s   Latency: %d ms   Tokens: %d in / %d out   Segmentation: %s",
		doc.Model, doc.LatencyMs, doc.InputTokens, doc.OutputTokens, doc.Outcome)
	pdf.MultiCell(0, 5, tr(meta), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	// ---------- steps ----------
	pdf.SetFont(cfg.FontFamily, "B", 14)
	pdf.CellFormat(0, 8, "Steps", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(doc.Steps) == 0 {
		pdf.SetFont(cfg.FontFamily, "I", 11)
		pdf.MultiCell(0, 6, "No reasoning steps found.", "", "L", false)
	}
	for _, s := range doc.Steps {
		c, ok := kindColors[string(s.Kind)]
		if !ok {
			c = [3]int{158, 158, 158}
		}
		pdf.SetFillColor(c[0], c[1], c[2])
		pdf.SetFont(cfg.FontFamily, "B", 11)
		label := fmt.Sprintf("Step %d  -  %s", s.Ordinal, titleCaser.String(string(s.Kind)))
		pdf.CellFormat(0, 7, tr(label), "", 1, "L", true, 0, "")

		pdf.SetFont(cfg.FontFamily, "", 11)
		pdf.MultiCell(0, 6, tr(s.Content), "", "L", false)
		pdf.Ln(3)
	}

	// ---------- summary ----------
	if doc.Summary.Total > 0 {
		pdf.Ln(2)
		pdf.SetFont(cfg.FontFamily, "B", 14)
		pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
		pdf.SetFont(cfg.FontFamily, "", 11)
		for _, kc := range run.Summary().Counts {
			line := fmt.Sprintf("%s: %d", titleCaser.String(string(kc.Kind)), kc.Count)
			pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
		}
		if doc.Summary.FinalAnswer != "" {
			pdf.Ln(2)
			pdf.SetFont(cfg.FontFamily, "B", 11)
			pdf.MultiCell(0, 6, tr("Final answer: "+doc.Summary.FinalAnswer), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
