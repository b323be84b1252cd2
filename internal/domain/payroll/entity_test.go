package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProrate(t *testing.T) {
	p := Prorate(decimal.NewFromInt(6000), 26, 13)

	assert.Equal(t, "3000", p.EarnedToDate.String())
	assert.Equal(t, "230.77", p.DailyRate.String())
	assert.Equal(t, 50.0, p.Progress)
}

func TestProrate_LinearOverMonth(t *testing.T) {
	salary := decimal.NewFromInt(8000)
	prev := decimal.NewFromInt(-1)
	for days := 0; days <= 26; days++ {
		earned := Prorate(salary, 26, days).EarnedToDate
		assert.False(t, earned.IsNegative())
		assert.True(t, earned.GreaterThan(prev), "day %d", days)
		prev = earned
	}
	assert.True(t, prev.Equal(salary))
}

func TestProrate_ProgressCapped(t *testing.T) {
	p := Prorate(decimal.NewFromInt(4000), 26, 30)
	assert.Equal(t, 100.0, p.Progress)
}

func TestWorkingDays(t *testing.T) {
	assert.Equal(t, 22, WorkingDays(22, 24))
	assert.Equal(t, 24, WorkingDays(0, 24))
	assert.Equal(t, 26, WorkingDays(0, 0))
}

func TestPaymentType_Category(t *testing.T) {
	tests := []struct {
		typ  PaymentType
		want string
		ok   bool
	}{
		{PaymentSalary, "salaries", true},
		{PaymentBonus, "salaries", true},
		{PaymentAdvance, "employee advances", true},
		{"Loan", "", false},
	}
	for _, tt := range tests {
		got, ok := tt.typ.Category()
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.ok, ok)
	}
}
