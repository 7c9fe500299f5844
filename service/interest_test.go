package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateInterest(t *testing.T) {
	tests := []struct {
		name         string
		principal    string
		rate         string
		days         int
		compounding  string
		wantInterest string
		wantTotal    string
	}{
		{"daily full year", "1000.00", "12", 365, "daily", "120.00", "1120.00"},
		{"annually full year", "1000.00", "12", 365, "annually", "120.00", "1120.00"},
		{"monthly one period", "1000.00", "5", 30, "monthly", "50.00", "1050.00"},
		{"monthly half period", "1000.00", "5", 15, "monthly", "25.00", "1025.00"},
		{"daily partial", "2500.00", "10", 73, "daily", "50.00", "2550.00"},
		{"zero days", "1000.00", "12", 0, "daily", "0.00", "1000.00"},
		{"zero rate", "1000.00", "0", 365, "daily", "0.00", "1000.00"},
		{"rounds to centavos", "1000.00", "7", 100, "daily", "19.18", "1019.18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interest, total, err := CalculateInterest(d(tt.principal), d(tt.rate), tt.days, tt.compounding)
			require.NoError(t, err)
			assert.Equal(t, tt.wantInterest, interest.StringFixed(2))
			assert.Equal(t, tt.wantTotal, total.StringFixed(2))
		})
	}
}

func TestCalculateInterestRejectsBadInput(t *testing.T) {
	_, _, err := CalculateInterest(d("1000"), d("5"), 30, "weekly")
	require.ErrorIs(t, err, errBadCompounding)

	_, _, err = CalculateInterest(d("-1"), d("5"), 30, "daily")
	require.Error(t, err)

	_, _, err = CalculateInterest(d("1000"), d("-5"), 30, "daily")
	require.Error(t, err)

	_, _, err = CalculateInterest(d("1000"), d("5"), -1, "daily")
	require.Error(t, err)
}
