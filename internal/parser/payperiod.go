package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/entity"
)

var payPeriodRe = regexp.MustCompile(`Pay Period\s+(.+?)\s+to\s+(.+?)\s+Paid\s+(.+?)\s*$`)

// PayPeriodParser extracts the three dates from a pay-period header line:
// "Pay Period 02 Jun 2023 to 15 Jun 2023 Paid 22 Jun 2023".
type PayPeriodParser struct {
	dateLayout string
}

func NewPayPeriodParser(dateLayout string) *PayPeriodParser {
	if dateLayout == "" {
		dateLayout = "02 Jan 2006"
	}
	return &PayPeriodParser{dateLayout: dateLayout}
}

// Parse extracts a PayPeriodInfo from a line already classified as a header.
// A header whose dates cannot all be extracted is a soft failure; the caller
// keeps the previously current period.
func (p *PayPeriodParser) Parse(line string) (entity.PayPeriodInfo, *ParseError) {
	m := payPeriodRe.FindStringSubmatch(line)
	if m == nil {
		return entity.PayPeriodInfo{}, &ParseError{
			Kind: LineHeader, Field: "line",
			Message: "header pattern not found", Line: line,
		}
	}
	start, err := p.parseDate(m[1])
	if err != nil {
		return entity.PayPeriodInfo{}, &ParseError{
			Kind: LineHeader, Field: "period_start",
			Message: err.Error(), Line: line,
		}
	}
	end, err := p.parseDate(m[2])
	if err != nil {
		return entity.PayPeriodInfo{}, &ParseError{
			Kind: LineHeader, Field: "period_end",
			Message: err.Error(), Line: line,
		}
	}
	paid, err := p.parseDate(m[3])
	if err != nil {
		return entity.PayPeriodInfo{}, &ParseError{
			Kind: LineHeader, Field: "paid_date",
			Message: err.Error(), Line: line,
		}
	}
	return entity.PayPeriodInfo{Start: start, End: end, Paid: paid}, nil
}

func (p *PayPeriodParser) parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(p.dateLayout, strings.TrimSpace(s), time.UTC)
}
