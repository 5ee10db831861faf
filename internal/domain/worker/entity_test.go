package worker

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDailyRate(t *testing.T) {
	daily := WageConfig{Type: WageTypeDaily, Amount: decimal.NewFromInt(600)}
	assert.True(t, daily.DailyRate().Equal(decimal.NewFromInt(600)))

	monthly := WageConfig{Type: WageTypeMonthly, Amount: decimal.NewFromInt(26000), WorkingDaysPerMonth: 26}
	assert.True(t, monthly.DailyRate().Equal(decimal.NewFromInt(1000)))

	// unset divisor falls back instead of dividing by zero
	unset := WageConfig{Type: WageTypeMonthly, Amount: decimal.NewFromInt(26000)}
	assert.True(t, unset.DailyRate().Equal(decimal.NewFromInt(1000)))
}

func TestOvertimeLimitOrDefault(t *testing.T) {
	var cfg WageConfig
	assert.Equal(t, DefaultOvertimeLimitHours, cfg.OvertimeLimitOrDefault())

	cfg.OvertimeLimitHours = 6
	assert.Equal(t, 6.0, cfg.OvertimeLimitOrDefault())
}
