package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPaymentParser_Parse(t *testing.T) {
	p := NewPaymentParser("CAS OrdPay (incCASloading)", "02Jan06")

	t.Run("extracts the four fields", func(t *testing.T) {
		line := "CAS OrdPay (incCASloading)    38.50   42.10  01Jul24  1620.85"
		pay, perr := p.Parse(line)
		require.Nil(t, perr)
		assert.True(t, pay.Hours.Equal(dec("38.50")))
		assert.True(t, pay.Rate.Equal(dec("42.10")))
		assert.True(t, pay.Amount.Equal(dec("1620.85")))
		assert.True(t, pay.WorkDateOK)
		assert.Equal(t, date(2024, time.July, 1), pay.WorkDate)
	})

	t.Run("thousands separator parses identically", func(t *testing.T) {
		plain, perr := p.Parse("CAS OrdPay (incCASloading) 38.50 42.10 01Jul24 1620.85")
		require.Nil(t, perr)
		grouped, perr := p.Parse("CAS OrdPay (incCASloading) 38.50 42.10 01Jul24 1,620.85")
		require.Nil(t, perr)
		assert.True(t, plain.Amount.Equal(grouped.Amount))
		assert.True(t, grouped.Amount.Equal(dec("1620.85")))
	})

	t.Run("tolerates variable spacing", func(t *testing.T) {
		pay, perr := p.Parse("CAS OrdPay (incCASloading)  7.60    42.10      15Aug24     319.96")
		require.Nil(t, perr)
		assert.True(t, pay.Hours.Equal(dec("7.60")))
		assert.True(t, pay.Amount.Equal(dec("319.96")))
	})

	t.Run("missing fields are a soft no-match", func(t *testing.T) {
		_, perr := p.Parse("CAS OrdPay (incCASloading) 38.50")
		require.NotNil(t, perr)
		assert.Equal(t, LinePayment, perr.Kind)
		assert.Equal(t, "line", perr.Field)
	})

	t.Run("unparseable work date keeps the record", func(t *testing.T) {
		pay, perr := p.Parse("CAS OrdPay (incCASloading) 38.50 42.10 notadate 1620.85")
		require.Nil(t, perr)
		assert.False(t, pay.WorkDateOK)
		assert.True(t, pay.WorkDate.IsZero())
		assert.True(t, pay.Amount.Equal(dec("1620.85")))
	})

	t.Run("marker absent", func(t *testing.T) {
		_, perr := p.Parse("Overtime 1.5x 4.00 63.15 01Jul24 252.60")
		require.NotNil(t, perr)
	})
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1620.85", want: "1620.85"},
		{in: "1,620.85", want: "1620.85"},
		{in: "12,934.95", want: "12934.95"},
		{in: "0.00", want: "0"},
		{in: "38", want: "38"},
		{in: "  42.10 ", want: "42.10"},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}
