package parser

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// SummaryFields is one pay period's totals block. Partial marks a block
// flushed before all seven labeled values were seen; Missing names the
// absent labels, and their values are zero.
type SummaryFields struct {
	GrossPay     decimal.Decimal
	Tax          decimal.Decimal
	NettPay      decimal.Decimal
	YTDGrossPay  decimal.Decimal
	YTDTax       decimal.Decimal
	YTDNettPay   decimal.Decimal
	Disbursement decimal.Decimal
	Partial      bool
	Missing      []string
}

const (
	fGross = 1 << iota
	fTax
	fNett
	fYTDGross
	fYTDTax
	fYTDNett
	fDisbursement

	fAll = fGross | fTax | fNett | fYTDGross | fYTDTax | fYTDNett | fDisbursement
)

var fieldNames = []struct {
	bit  int
	name string
}{
	{fGross, "Gross Pay"},
	{fTax, "Tax"},
	{fNett, "Nett Pay"},
	{fYTDGross, "YTD Gross Pay"},
	{fYTDTax, "YTD Tax"},
	{fYTDNett, "YTD Nett Pay"},
	{fDisbursement, "Disbursement Amount"},
}

// SummaryParser recognizes summary total lines. Values for one block may
// share a line ("Gross Pay 1,847.85 12,934.95") or be spread over adjacent
// lines; accumulation happens in a SummaryAccumulator.
type SummaryParser struct {
	lookahead int

	ytdGrossRe *regexp.Regexp
	ytdTaxRe   *regexp.Regexp
	ytdNettRe  *regexp.Regexp
	grossRe    *regexp.Regexp
	taxRe      *regexp.Regexp
	nettRe     *regexp.Regexp
	disbRe     *regexp.Regexp
	bankRe     *regexp.Regexp
}

// NewSummaryParser builds a summary parser. lookahead bounds how many
// non-summary lines may interleave an open block before it flushes partial.
func NewSummaryParser(lookahead int, disbursementLabel, bankLabel string) *SummaryParser {
	if lookahead <= 0 {
		lookahead = 12
	}
	if disbursementLabel == "" {
		disbursementLabel = "Disbursement Amount"
	}
	if bankLabel == "" {
		bankLabel = "Commonwealth Bank of Australia"
	}
	capture := `(` + number + `)`
	pair := capture + `(?:\s+` + capture + `)?`
	return &SummaryParser{
		lookahead:  lookahead,
		ytdGrossRe: regexp.MustCompile(`YTD Gross Pay\s+` + capture),
		ytdTaxRe:   regexp.MustCompile(`YTD Tax\s+` + capture),
		ytdNettRe:  regexp.MustCompile(`YTD Nett Pay\s+` + capture),
		grossRe:    regexp.MustCompile(`Gross Pay\s+` + pair),
		taxRe:      regexp.MustCompile(`(?:^|\s)Tax\s+` + pair),
		nettRe:     regexp.MustCompile(`Nett Pay\s+` + pair),
		disbRe:     regexp.MustCompile(regexp.QuoteMeta(disbursementLabel) + `\s+` + capture),
		bankRe:     regexp.MustCompile(regexp.QuoteMeta(bankLabel) + `\s+\d+\s+` + capture),
	}
}

// NewAccumulator returns a fresh accumulation buffer for one page scan.
func (s *SummaryParser) NewAccumulator() *SummaryAccumulator {
	return &SummaryAccumulator{parser: s}
}

// SummaryAccumulator collects labeled values across consecutive lines until
// one block's seven fields are satisfied.
type SummaryAccumulator struct {
	parser *SummaryParser
	fields SummaryFields
	seen   int
	idle   int
}

// Active reports whether a block is open (at least one field seen).
func (a *SummaryAccumulator) Active() bool {
	return a.seen != 0
}

// Feed consumes a line already classified as a summary line. It returns a
// completed block once all seven fields for the block have been seen.
func (a *SummaryAccumulator) Feed(line string) (*SummaryFields, *ParseError) {
	p := a.parser
	s := line
	var softErr *ParseError

	set := func(bit int, field string, raw string, dst *decimal.Decimal) {
		d, err := ParseAmount(raw)
		if err != nil {
			if softErr == nil {
				softErr = &ParseError{Kind: LineSummary, Field: field, Message: err.Error(), Line: line}
			}
			return
		}
		*dst = d
		a.seen |= bit
	}

	// YTD labels first: a bare "Tax"/"Gross Pay"/"Nett Pay" pattern would
	// otherwise match inside its YTD variant. Matched YTD spans are blanked
	// out of the working string before the bare labels are scanned.
	for _, y := range []struct {
		re    *regexp.Regexp
		bit   int
		field string
		dst   *decimal.Decimal
	}{
		{p.ytdGrossRe, fYTDGross, "ytd_gross_pay", &a.fields.YTDGrossPay},
		{p.ytdTaxRe, fYTDTax, "ytd_tax", &a.fields.YTDTax},
		{p.ytdNettRe, fYTDNett, "ytd_nett_pay", &a.fields.YTDNettPay},
	} {
		if m := y.re.FindStringSubmatch(s); m != nil {
			set(y.bit, y.field, m[1], y.dst)
			s = y.re.ReplaceAllString(s, " ")
		}
	}

	// Paired labels: first capture is the current value, the optional
	// second capture is the YTD column riding on the same line.
	for _, pr := range []struct {
		re       *regexp.Regexp
		bit      int
		field    string
		dst      *decimal.Decimal
		ytdBit   int
		ytdField string
		ytdDst   *decimal.Decimal
	}{
		{p.grossRe, fGross, "gross_pay", &a.fields.GrossPay, fYTDGross, "ytd_gross_pay", &a.fields.YTDGrossPay},
		{p.taxRe, fTax, "tax", &a.fields.Tax, fYTDTax, "ytd_tax", &a.fields.YTDTax},
		{p.nettRe, fNett, "nett_pay", &a.fields.NettPay, fYTDNett, "ytd_nett_pay", &a.fields.YTDNettPay},
	} {
		if m := pr.re.FindStringSubmatch(s); m != nil {
			set(pr.bit, pr.field, m[1], pr.dst)
			if m[2] != "" {
				set(pr.ytdBit, pr.ytdField, m[2], pr.ytdDst)
			}
		}
	}

	if m := p.disbRe.FindStringSubmatch(s); m != nil {
		set(fDisbursement, "disbursement_amount", m[1], &a.fields.Disbursement)
	} else if m := p.bankRe.FindStringSubmatch(s); m != nil {
		set(fDisbursement, "disbursement_amount", m[1], &a.fields.Disbursement)
	}

	a.idle = 0
	if a.seen == fAll {
		return a.take(false), softErr
	}
	return nil, softErr
}

// Skip notes one non-summary line while a block is open. When the bounded
// lookahead window is exhausted the open block flushes as partial.
func (a *SummaryAccumulator) Skip() *SummaryFields {
	if a.seen == 0 {
		return nil
	}
	a.idle++
	if a.idle > a.parser.lookahead {
		return a.take(true)
	}
	return nil
}

// Flush drains any open block at page end as a partial record.
func (a *SummaryAccumulator) Flush() *SummaryFields {
	if a.seen == 0 {
		return nil
	}
	return a.take(true)
}

func (a *SummaryAccumulator) take(partial bool) *SummaryFields {
	out := a.fields
	out.Partial = partial
	if partial {
		for _, f := range fieldNames {
			if a.seen&f.bit == 0 {
				out.Missing = append(out.Missing, f.name)
			}
		}
	}
	a.fields = SummaryFields{}
	a.seen = 0
	a.idle = 0
	return &out
}
