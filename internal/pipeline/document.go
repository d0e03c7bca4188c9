package pipeline

import (
	"log/slog"

	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/entity"
)

// DocumentResult aggregates everything extracted from one document.
type DocumentResult struct {
	Payments         []entity.PaymentRecord
	Summaries        []entity.SummaryRecord
	Pages            int
	SoftErrors       int
	PartialSummaries int
	UnknownPeriod    int
}

// DocumentProcessor iterates a document's pages in order. The current pay
// period carries forward across pages of one document and never leaks into
// the next: every Process call starts from a zero period.
type DocumentProcessor struct {
	pages  *PageProcessor
	logger *slog.Logger
}

func NewDocumentProcessor(pages *PageProcessor, logger *slog.Logger) *DocumentProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentProcessor{pages: pages, logger: logger}
}

// Process runs the page processor over every page of one document and
// stamps records with the source file name and 1-based page number.
func (d *DocumentProcessor) Process(sourceFile string, pages [][]string) DocumentResult {
	var res DocumentResult
	var current entity.PayPeriodInfo

	for i, lines := range pages {
		pageNum := i + 1
		var pr PageResult
		pr, current = d.pages.Process(sourceFile, pageNum, lines, current)

		res.Payments = append(res.Payments, pr.Payments...)
		res.Summaries = append(res.Summaries, pr.Summaries...)
		res.SoftErrors += pr.SoftErrors
		res.PartialSummaries += pr.PartialSummaries
		res.UnknownPeriod += pr.UnknownPeriod
	}
	res.Pages = len(pages)

	d.logger.Debug("document processed",
		"file", sourceFile,
		"pages", res.Pages,
		"payments", len(res.Payments),
		"summaries", len(res.Summaries),
		"soft_errors", res.SoftErrors,
	)
	return res
}
