package parser

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentLine is the typed content of one payment detail line. WorkDateOK
// is false when the reference date token did not parse; the record is still
// usable and the caller counts a soft error.
type PaymentLine struct {
	Hours      decimal.Decimal
	Rate       decimal.Decimal
	WorkDate   time.Time
	WorkDateOK bool
	Amount     decimal.Decimal
}

// PaymentParser extracts hours, rate, work date and amount from payment
// detail lines, e.g.
//
//	CAS OrdPay (incCASloading)    38.50   42.10  01Jul24  1,620.85
type PaymentParser struct {
	re         *regexp.Regexp
	dateLayout string
}

// NewPaymentParser builds a parser for lines carrying the given marker.
// dateLayout is the compact reference-date form, default "02Jan06".
func NewPaymentParser(marker, dateLayout string) *PaymentParser {
	if dateLayout == "" {
		dateLayout = "02Jan06"
	}
	return &PaymentParser{
		re: regexp.MustCompile(regexp.QuoteMeta(marker) +
			`\s+(` + number + `)\s+(` + number + `)\s+(\S+)\s+(` + number + `)`),
		dateLayout: dateLayout,
	}
}

// Parse extracts a PaymentLine from a line already classified as a payment
// line. Bad numeric formats are soft failures: the line is skipped and
// counted, never aborting the page.
func (p *PaymentParser) Parse(line string) (PaymentLine, *ParseError) {
	m := p.re.FindStringSubmatch(line)
	if m == nil {
		return PaymentLine{}, &ParseError{
			Kind: LinePayment, Field: "line",
			Message: "payment fields not found", Line: line,
		}
	}
	hours, err := ParseAmount(m[1])
	if err != nil {
		return PaymentLine{}, &ParseError{Kind: LinePayment, Field: "hours", Message: err.Error(), Line: line}
	}
	rate, err := ParseAmount(m[2])
	if err != nil {
		return PaymentLine{}, &ParseError{Kind: LinePayment, Field: "rate", Message: err.Error(), Line: line}
	}
	amount, err := ParseAmount(m[4])
	if err != nil {
		return PaymentLine{}, &ParseError{Kind: LinePayment, Field: "amount", Message: err.Error(), Line: line}
	}
	out := PaymentLine{Hours: hours, Rate: rate, Amount: amount}
	if wd, err := time.ParseInLocation(p.dateLayout, m[3], time.UTC); err == nil {
		out.WorkDate = wd
		out.WorkDateOK = true
	}
	return out, nil
}
