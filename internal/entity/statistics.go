package entity

import "github.com/shopspring/decimal"

// DocumentReport holds the per-document counts for the end-of-run report.
type DocumentReport struct {
	SourceFile string `json:"source_file"`
	Pages      int    `json:"pages"`
	Payments   int    `json:"payments"`
	Summaries  int    `json:"summaries"`
	SoftErrors int    `json:"soft_errors"`
	Err        string `json:"error,omitempty"`
}

// Statistics aggregates the whole batch. TotalHours sums PaymentRecord
// hours; gross/tax/nett sum the corresponding SummaryRecord fields.
type Statistics struct {
	Documents        int             `json:"documents"`
	Pages            int             `json:"pages"`
	Payments         int             `json:"payments"`
	Summaries        int             `json:"summaries"`
	PartialSummaries int             `json:"partial_summaries"`
	SoftErrors       int             `json:"soft_errors"`
	FailedDocuments  int             `json:"failed_documents"`
	TotalHours       decimal.Decimal `json:"total_hours"`
	TotalGross       decimal.Decimal `json:"total_gross"`
	TotalTax         decimal.Decimal `json:"total_tax"`
	TotalNett        decimal.Decimal `json:"total_nett"`
}
