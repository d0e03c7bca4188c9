// Package parser turns linearized payslip text into typed values. Every
// parser reports misses as values (no-match / partial results) rather than
// errors, so a noisy line never aborts a page scan.
package parser

import (
	"regexp"
	"strings"
)

// LineKind is the closed set of line classifications.
type LineKind int

const (
	LineOther LineKind = iota
	LineHeader
	LinePayment
	LineSummary
)

func (k LineKind) String() string {
	switch k {
	case LineHeader:
		return "header"
	case LinePayment:
		return "payment"
	case LineSummary:
		return "summary"
	default:
		return "other"
	}
}

// number matches a decimal value with optional comma grouping, e.g.
// "38.50", "1620.85", "1,620.85".
const number = `[0-9][0-9,]*(?:\.[0-9]+)?`

// Classifier categorizes raw text lines. Patterns are tested in order of
// distinctiveness: header first, then payment, then summary labels.
type Classifier struct {
	paymentRe *regexp.Regexp
	summaryRe []*regexp.Regexp
}

// NewClassifier builds a classifier for the given payment-line marker and
// disbursement bank line.
func NewClassifier(paymentMarker, bankLabel string) *Classifier {
	summary := []*regexp.Regexp{
		regexp.MustCompile(`YTD Gross Pay\s+` + number),
		regexp.MustCompile(`YTD Tax\s+` + number),
		regexp.MustCompile(`YTD Nett Pay\s+` + number),
		regexp.MustCompile(`Gross Pay\s+` + number),
		regexp.MustCompile(`(?:^|\s)Tax\s+` + number),
		regexp.MustCompile(`Nett Pay\s+` + number),
		regexp.MustCompile(`Disbursement Amount\s+` + number),
		regexp.MustCompile(regexp.QuoteMeta(bankLabel) + `\s+\d+\s+` + number),
	}
	return &Classifier{
		paymentRe: regexp.MustCompile(regexp.QuoteMeta(paymentMarker)),
		summaryRe: summary,
	}
}

// Classify returns the line kind for one raw text line. Payslip dumps are
// full of headers, footers and layout noise; anything unrecognized is
// LineOther and callers skip it silently.
func (c *Classifier) Classify(line string) LineKind {
	if strings.Contains(line, "Pay Period") && strings.Contains(line, "Paid") {
		return LineHeader
	}
	if c.paymentRe.MatchString(line) {
		return LinePayment
	}
	for _, re := range c.summaryRe {
		if re.MatchString(line) {
			return LineSummary
		}
	}
	return LineOther
}
