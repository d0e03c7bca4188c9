// Package pipeline drives the line parsers over pages and documents,
// maintaining the current-period context and stamping provenance.
package pipeline

import (
	"log/slog"

	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/entity"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/parser"
)

// PageResult is everything extracted from one page's line sequence.
type PageResult struct {
	Payments         []entity.PaymentRecord
	Summaries        []entity.SummaryRecord
	SoftErrors       int
	PartialSummaries int
	UnknownPeriod    int // payment records emitted before any header was seen
}

// PageProcessor is a state machine over one page's lines. State is the
// current pay period plus the summary accumulation buffer.
type PageProcessor struct {
	classifier *parser.Classifier
	periods    *parser.PayPeriodParser
	payments   *parser.PaymentParser
	summaries  *parser.SummaryParser
	logger     *slog.Logger
}

func NewPageProcessor(
	classifier *parser.Classifier,
	periods *parser.PayPeriodParser,
	payments *parser.PaymentParser,
	summaries *parser.SummaryParser,
	logger *slog.Logger,
) *PageProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageProcessor{
		classifier: classifier,
		periods:    periods,
		payments:   payments,
		summaries:  summaries,
		logger:     logger,
	}
}

// Process folds over one page. current is the pay period inherited from the
// preceding pages of the same document; the possibly-updated period is
// returned so the document processor can thread it forward. Payment lines
// seen before any header are tagged with the zero ("unknown") period rather
// than dropped.
func (p *PageProcessor) Process(sourceFile string, page int, lines []string, current entity.PayPeriodInfo) (PageResult, entity.PayPeriodInfo) {
	var res PageResult
	acc := p.summaries.NewAccumulator()

	emitSummary := func(f *parser.SummaryFields) {
		rec := entity.SummaryRecord{
			SourceFile:   sourceFile,
			Page:         page,
			Period:       current,
			GrossPay:     f.GrossPay,
			Tax:          f.Tax,
			NettPay:      f.NettPay,
			YTDGrossPay:  f.YTDGrossPay,
			YTDTax:       f.YTDTax,
			YTDNettPay:   f.YTDNettPay,
			Disbursement: f.Disbursement,
			Partial:      f.Partial,
		}
		if f.Partial {
			res.PartialSummaries++
			p.logger.Debug("summary block incomplete",
				"file", sourceFile, "page", page, "missing", f.Missing)
		}
		res.Summaries = append(res.Summaries, rec)
	}

	for _, line := range lines {
		switch p.classifier.Classify(line) {
		case parser.LineHeader:
			info, perr := p.periods.Parse(line)
			if perr != nil {
				// Keep the previously current period.
				res.SoftErrors++
				p.logger.Warn("unparseable header", "file", sourceFile, "page", page, "err", perr.Error())
				continue
			}
			current = info

		case parser.LinePayment:
			pay, perr := p.payments.Parse(line)
			if perr != nil {
				res.SoftErrors++
				p.logger.Warn("unparsed payment line", "file", sourceFile, "page", page, "err", perr.Error())
				continue
			}
			if !pay.WorkDateOK {
				res.SoftErrors++
				p.logger.Warn("unparseable work date", "file", sourceFile, "page", page)
			}
			if current.IsZero() {
				res.UnknownPeriod++
			}
			res.Payments = append(res.Payments, entity.PaymentRecord{
				SourceFile: sourceFile,
				Page:       page,
				Period:     current,
				WorkDate:   pay.WorkDate,
				Hours:      pay.Hours,
				Rate:       pay.Rate,
				Amount:     pay.Amount,
			})

		case parser.LineSummary:
			fields, perr := acc.Feed(line)
			if perr != nil {
				res.SoftErrors++
				p.logger.Warn("unparsed summary value", "file", sourceFile, "page", page, "err", perr.Error())
			}
			if fields != nil {
				emitSummary(fields)
			}

		default:
			if fields := acc.Skip(); fields != nil {
				emitSummary(fields)
			}
		}
	}

	// Page end: drain any open summary block per the partial-block policy.
	if fields := acc.Flush(); fields != nil {
		emitSummary(fields)
	}

	return res, current
}
