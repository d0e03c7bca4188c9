// Package pdftext turns a PDF file into an ordered sequence of pages, each
// an ordered sequence of text lines. The primary strategy shells out to
// pdftotext; a pure-Go reader covers hosts without poppler installed.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
	Timeout   time.Duration
}

// Document is the extracted text of one PDF.
type Document struct {
	Pages    [][]string // Pages[i] is the ordered lines of page i+1
	Method   string     // "pdftotext" | "native"
	Duration time.Duration
	Warnings []string
}

// PageCount returns the number of extracted pages.
func (d Document) PageCount() int { return len(d.Pages) }

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// Extract produces the page/line structure of one PDF. When the pdftotext
// binary is not on PATH it degrades to the native reader with a warning;
// any other extraction failure is surfaced to the caller as a document
// failure.
func (e *Extractor) Extract(ctx context.Context, path string) (Document, error) {
	start := time.Now()
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	doc, err := e.viaPdftotext(ctx, path)
	if err != nil {
		if !errors.Is(err, exec.ErrNotFound) {
			return Document{}, err
		}
		e.logger.Warn("pdftotext not found, using native reader", "path", path)
		doc, err = e.viaNative(path)
		if err != nil {
			return Document{}, err
		}
		doc.Warnings = append(doc.Warnings, "pdftotext unavailable; native extraction used")
	}

	doc.Duration = time.Since(start)
	e.logger.Debug("pdf text extracted",
		"path", path, "method", doc.Method, "pages", doc.PageCount(),
		"elapsed_ms", doc.Duration.Milliseconds(),
	)
	return doc, nil
}

func (e *Extractor) viaPdftotext(ctx context.Context, path string) (Document, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("pdftotext %s: %w (%s)", path, err, truncate(string(errb), 512))
	}
	return Document{Pages: splitPages(string(out), e.cfg.MaxPages), Method: "pdftotext"}, nil
}

// splitPages cuts pdftotext output on the form-feed page separator and
// splits each page into lines. A trailing form feed yields an empty last
// page, which is dropped.
func splitPages(text string, maxPages int) [][]string {
	raw := strings.Split(text, "\f")
	if n := len(raw); n > 0 && strings.TrimSpace(raw[n-1]) == "" {
		raw = raw[:n-1]
	}
	if maxPages > 0 && len(raw) > maxPages {
		raw = raw[:maxPages]
	}
	pages := make([][]string, 0, len(raw))
	for _, p := range raw {
		pages = append(pages, strings.Split(strings.Trim(p, "\n"), "\n"))
	}
	return pages
}
