package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier("CAS OrdPay (incCASloading)", "Commonwealth Bank of Australia")

	tests := []struct {
		name string
		line string
		want LineKind
	}{
		{
			name: "pay period header",
			line: "Pay Period 02 Jun 2023 to 15 Jun 2023 Paid 22 Jun 2023",
			want: LineHeader,
		},
		{
			name: "payment line",
			line: "CAS OrdPay (incCASloading)    38.50   42.10  01Jul24  1,620.85",
			want: LinePayment,
		},
		{
			name: "gross pay summary",
			line: "Gross Pay 1,847.85 12,934.95",
			want: LineSummary,
		},
		{
			name: "indented tax summary",
			line: "   Tax 412.00 2,884.00",
			want: LineSummary,
		},
		{
			name: "nett pay summary",
			line: "Nett Pay 1,435.85 10,050.95",
			want: LineSummary,
		},
		{
			name: "disbursement via bank line",
			line: "Commonwealth Bank of Australia 06432212 1,435.85",
			want: LineSummary,
		},
		{
			name: "explicit disbursement label",
			line: "Disbursement Amount 1,435.85",
			want: LineSummary,
		},
		{
			name: "ytd label on its own line",
			line: "YTD Gross Pay 12,934.95",
			want: LineSummary,
		},
		{
			name: "layout noise",
			line: "University of South Australia - Payslip",
			want: LineOther,
		},
		{
			name: "tax label without value",
			line: "Tax File Number provided",
			want: LineOther,
		},
		{
			name: "empty line",
			line: "",
			want: LineOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.line))
		})
	}
}

func TestClassifier_HeaderBeatsPayment(t *testing.T) {
	// Classification is order-sensitive: the header pattern wins even if a
	// line somehow carries both markers.
	c := NewClassifier("CAS OrdPay (incCASloading)", "Commonwealth Bank of Australia")
	line := "Pay Period 02 Jun 2023 to 15 Jun 2023 Paid 22 Jun 2023 CAS OrdPay (incCASloading)"
	assert.Equal(t, LineHeader, c.Classify(line))
}
