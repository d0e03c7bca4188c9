// Package core coordinates the batch: text extraction, page/document
// processing, run bookkeeping and aggregate statistics.
package core

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/constants"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/entity"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/ingest"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/pdftext"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/pipeline"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/repository"
)

// TextSource produces the page/line structure of one document.
type TextSource interface {
	Extract(ctx context.Context, path string) (pdftext.Document, error)
}

// BatchResult is the merged output of one extraction batch. Record order is
// (document order, page order, in-page order).
type BatchResult struct {
	Payments  []entity.PaymentRecord
	Summaries []entity.SummaryRecord
	Stats     entity.Statistics
	Reports   []entity.DocumentReport
}

// Coordinator iterates documents, delegates each to the document processor,
// and merges results. A failure on one document never aborts the batch.
type Coordinator struct {
	logger *slog.Logger
	source TextSource
	docs   *pipeline.DocumentProcessor
	runs   repository.RunRepository
}

func NewCoordinator(logger *slog.Logger, source TextSource, docs *pipeline.DocumentProcessor, runs repository.RunRepository) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{logger: logger, source: source, docs: docs, runs: runs}
}

// Run processes every discovered file in order and computes the batch
// statistics. Total hours sum PaymentRecords; gross/tax/nett totals sum
// SummaryRecords, since only summaries carry those figures.
func (c *Coordinator) Run(ctx context.Context, files []ingest.FileInfo) (*BatchResult, error) {
	res := &BatchResult{}
	res.Stats.TotalHours = decimal.Zero
	res.Stats.TotalGross = decimal.Zero
	res.Stats.TotalTax = decimal.Zero
	res.Stats.TotalNett = decimal.Zero

	for _, file := range files {
		runID := uuid.New()
		if err := c.runs.Start(ctx, runID, file.Path, file.HashHex); err != nil {
			// Bookkeeping trouble should not stop extraction.
			c.logger.Error("failed to record run start", "file", file.Name, "error", err)
		}

		doc, err := c.source.Extract(ctx, file.Path)
		if err != nil {
			c.logger.Error("document failed", "file", file.Name, "error", err)
			res.Stats.Documents++
			res.Stats.FailedDocuments++
			res.Reports = append(res.Reports, entity.DocumentReport{
				SourceFile: file.Name,
				Err:        err.Error(),
			})
			c.finishRun(ctx, runID, repository.RunOutcome{
				Status:       constants.RunStatusFailed,
				ErrorMessage: err.Error(),
			})
			continue
		}
		for _, w := range doc.Warnings {
			c.logger.Warn("extraction warning", "file", file.Name, "warning", w)
		}

		dr := c.docs.Process(file.Name, doc.Pages)

		res.Payments = append(res.Payments, dr.Payments...)
		res.Summaries = append(res.Summaries, dr.Summaries...)
		res.Stats.Documents++
		res.Stats.Pages += dr.Pages
		res.Stats.Payments += len(dr.Payments)
		res.Stats.Summaries += len(dr.Summaries)
		res.Stats.PartialSummaries += dr.PartialSummaries
		res.Stats.SoftErrors += dr.SoftErrors

		res.Reports = append(res.Reports, entity.DocumentReport{
			SourceFile: file.Name,
			Pages:      dr.Pages,
			Payments:   len(dr.Payments),
			Summaries:  len(dr.Summaries),
			SoftErrors: dr.SoftErrors,
		})

		status := constants.RunStatusOK
		if dr.SoftErrors > 0 || dr.PartialSummaries > 0 {
			status = constants.RunStatusPartial
		}
		c.finishRun(ctx, runID, repository.RunOutcome{
			Pages:      dr.Pages,
			Payments:   len(dr.Payments),
			Summaries:  len(dr.Summaries),
			SoftErrors: dr.SoftErrors,
			Status:     status,
		})

		if len(dr.Payments) == 0 && len(dr.Summaries) == 0 {
			// Reported, but not a pipeline error.
			c.logger.Warn("document contributed zero records", "file", file.Name, "pages", dr.Pages)
		}
	}

	for _, p := range res.Payments {
		res.Stats.TotalHours = res.Stats.TotalHours.Add(p.Hours)
	}
	for _, s := range res.Summaries {
		res.Stats.TotalGross = res.Stats.TotalGross.Add(s.GrossPay)
		res.Stats.TotalTax = res.Stats.TotalTax.Add(s.Tax)
		res.Stats.TotalNett = res.Stats.TotalNett.Add(s.NettPay)
	}

	c.logger.Info("batch complete",
		"documents", res.Stats.Documents,
		"failed_documents", res.Stats.FailedDocuments,
		"payments", res.Stats.Payments,
		"summaries", res.Stats.Summaries,
		"soft_errors", res.Stats.SoftErrors,
		"total_hours", res.Stats.TotalHours.String(),
	)
	return res, nil
}

func (c *Coordinator) finishRun(ctx context.Context, id uuid.UUID, out repository.RunOutcome) {
	if err := c.runs.Finish(ctx, id, out); err != nil {
		c.logger.Error("failed to record run outcome", "run_id", id, "error", err)
	}
}
