package pdftext

import (
	"fmt"
	"strings"

	"github.com/dslipak/pdf"
)

// viaNative reads the PDF in-process. Line structure is reconstructed from
// positioned text rows, so column spacing is approximate; the pdftotext
// path is preferred whenever the binary exists.
func (e *Extractor) viaNative(path string) (doc Document, err error) {
	// The underlying reader panics on some malformed files; surface that
	// as a per-document failure instead of killing the batch.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("native pdf read %s: %v", path, r)
		}
	}()

	r, err := pdf.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open pdf %s: %w", path, err)
	}

	n := r.NumPage()
	if e.cfg.MaxPages > 0 && n > e.cfg.MaxPages {
		n = e.cfg.MaxPages
	}

	doc = Document{Method: "native"}
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("page %d is empty", i))
			doc.Pages = append(doc.Pages, nil)
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("page %d: %v", i, err))
			doc.Pages = append(doc.Pages, nil)
			continue
		}
		var lines []string
		for _, row := range rows {
			parts := make([]string, 0, len(row.Content))
			for _, t := range row.Content {
				parts = append(parts, t.S)
			}
			lines = append(lines, strings.Join(parts, " "))
		}
		doc.Pages = append(doc.Pages, lines)
	}
	return doc, nil
}
