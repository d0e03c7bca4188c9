package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/entity"
)

func TestDocumentProcessor_PeriodCarriesAcrossPages(t *testing.T) {
	d := NewDocumentProcessor(newPageProcessor(t), nil)

	pages := [][]string{
		{
			"Pay Period 02 Jun 2023 to 15 Jun 2023 Paid 22 Jun 2023",
			"CAS OrdPay (incCASloading) 38.50 42.10 05Jun23 1,620.85",
		},
		{
			// Continuation page: no header of its own.
			"CAS OrdPay (incCASloading) 7.60 42.10 12Jun23 319.96",
		},
	}
	res := d.Process("june.pdf", pages)

	require.Len(t, res.Payments, 2)
	assert.Equal(t, 2, res.Pages)
	assert.Zero(t, res.UnknownPeriod)

	want := entity.PayPeriodInfo{
		Start: date(2023, time.June, 2),
		End:   date(2023, time.June, 15),
		Paid:  date(2023, time.June, 22),
	}
	assert.Equal(t, want, res.Payments[1].Period, "second page inherits the first page's period")
	assert.Equal(t, 2, res.Payments[1].Page)
}

func TestDocumentProcessor_PeriodDoesNotLeakBetweenDocuments(t *testing.T) {
	d := NewDocumentProcessor(newPageProcessor(t), nil)

	first := d.Process("a.pdf", [][]string{{
		"Pay Period 02 Jun 2023 to 15 Jun 2023 Paid 22 Jun 2023",
		"CAS OrdPay (incCASloading) 38.50 42.10 05Jun23 1,620.85",
	}})
	require.Len(t, first.Payments, 1)

	// Second document starts without a header; its records must not pick
	// up the first document's period.
	second := d.Process("b.pdf", [][]string{{
		"CAS OrdPay (incCASloading) 7.60 42.10 12Jun23 319.96",
	}})
	require.Len(t, second.Payments, 1)
	assert.True(t, second.Payments[0].Period.IsZero())
	assert.Equal(t, 1, second.UnknownPeriod)
}

func TestDocumentProcessor_SummaryDoesNotSpanPages(t *testing.T) {
	d := NewDocumentProcessor(newPageProcessor(t), nil)

	pages := [][]string{
		{
			"Pay Period 02 Jun 2023 to 15 Jun 2023 Paid 22 Jun 2023",
			"Gross Pay 1,940.81 12,934.95",
		},
		{
			"Tax 412.00 2,884.00",
			"Nett Pay 1,528.81 10,050.95",
			"Commonwealth Bank of Australia 06432212 1,528.81",
		},
	}
	res := d.Process("june.pdf", pages)

	// Accumulation is page scoped, so the split block yields two partial
	// records instead of one complete one.
	require.Len(t, res.Summaries, 2)
	assert.True(t, res.Summaries[0].Partial)
	assert.True(t, res.Summaries[1].Partial)
	assert.Equal(t, 2, res.PartialSummaries)
	assert.Equal(t, 1, res.Summaries[0].Page)
	assert.Equal(t, 2, res.Summaries[1].Page)
}

func TestDocumentProcessor_EmptyDocument(t *testing.T) {
	d := NewDocumentProcessor(newPageProcessor(t), nil)

	res := d.Process("empty.pdf", nil)
	assert.Zero(t, res.Pages)
	assert.Empty(t, res.Payments)
	assert.Empty(t, res.Summaries)
}
