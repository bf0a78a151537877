// Package export writes a task list as JSON, CSV or a printable PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/mesh-intelligence/tasklist/internal/locale"
	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Formats lists the supported formats.
var Formats = []string{FormatJSON, FormatCSV, FormatPDF}

// ErrUnknownFormat is returned for formats not in Formats.
var ErrUnknownFormat = errors.New("unknown export format")

// Exporter renders tasks with the labels of one bundle.
type Exporter struct {
	bundle *locale.Bundle
}

// New returns an exporter using bundle for titles and category names.
func New(bundle *locale.Bundle) *Exporter {
	return &Exporter{bundle: bundle}
}

// Export writes tasks to w in the given format.
func (e *Exporter) Export(w io.Writer, format string, tasks []types.Task) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return e.json(w, tasks)
	case FormatCSV:
		return e.csv(w, tasks)
	case FormatPDF:
		return e.pdf(w, tasks)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// json writes the persisted array layout, indented.
func (e *Exporter) json(w io.Writer, tasks []types.Task) error {
	if tasks == nil {
		tasks = []types.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

func (e *Exporter) csv(w io.Writer, tasks []types.Task) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "item", "category"})
	for _, t := range tasks {
		_ = cw.Write([]string{t.ID, t.Item, string(t.Category)})
	}
	cw.Flush()
	return cw.Error()
}

// pdf renders a checklist: title, then one box and line per task.
func (e *Exporter) pdf(w io.Writer, tasks []types.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; runes outside it are replaced.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(e.bundle.Labels.AllTasks, true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr(e.bundle.Labels.AllTasks))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	for _, t := range tasks {
		pdf.CellFormat(8, 7, "", "1", 0, "C", false, 0, "")
		pdf.CellFormat(4, 7, "", "", 0, "", false, 0, "")
		pdf.CellFormat(130, 7, tr(t.Item), "", 0, "L", false, 0, "")
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 7, tr(e.bundle.Category(t.Category)), "", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	return pdf.Output(w)
}
