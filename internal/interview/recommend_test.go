package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBudgetAmount(t *testing.T) {
	tests := []struct {
		name     string
		budget   string
		currency string
		want     float64
	}{
		{"plain usd", "1000", "USD", 1000},
		{"with suffix text", "1000$ + 100$ oylik", "USD", 1000},
		{"thousands separator", "10,000 dollar", "USD", 10000},
		{"spaces inside number", "1 000 000", "UZS", 1000000 * 0.000081},
		{"rub", "100000 rubl", "RUB", 1100},
		{"euro", "5000", "EUR", 5450},
		{"unknown currency treated as usd", "300", "BTC", 300},
		{"lowercase currency", "2000", "usd", 2000},
		{"no number", "hali bilmayman", "USD", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, parseBudgetAmount(tt.budget, tt.currency), 0.01)
		})
	}
}

func TestPortfolioSize(t *testing.T) {
	tests := []struct {
		usd  float64
		want string
	}{
		{0, "1-2"},
		{999.99, "1-2"},
		{1000, "2-4"},
		{5000, "2-4"},
		{10000, "2-4"},
		{10000.01, "4-6"},
		{250000, "4-6"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, portfolioSize(tt.usd), "usd=%v", tt.usd)
	}
}

func TestPortfolioSize_SmallBudgetInHighValueCurrency(t *testing.T) {
	// 12M UZS is about 972 USD, which lands in the smallest tier even
	// though the raw number is large.
	usd := parseBudgetAmount("12,000,000", "UZS")
	assert.Equal(t, "1-2", portfolioSize(usd))
}
