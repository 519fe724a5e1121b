package fee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithdrawalFee(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	tests := []struct {
		name   string
		amount int64
		want   int64
	}{
		{"two percent of 5000", 5_000, 100},
		{"two percent of 10000", 10_000, 200},
		{"rounds down", 99, 1},
		{"smallest amounts round to zero", 49, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.WithdrawalFee(tt.amount))
		})
	}
}

func TestWithdrawalFeeDeterministic(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	first := calc.WithdrawalFee(10_000)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, calc.WithdrawalFee(10_000))
	}
}

func TestWithdrawalFeeMonotonic(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	amounts := []int64{1_000, 2_000, 5_000, 50_000, 500_000}
	for _, a := range amounts {
		assert.GreaterOrEqual(t, calc.WithdrawalFee(2*a), calc.WithdrawalFee(a),
			"fee(2x) must be >= fee(x) for amount %d", a)
	}
}

func TestDepositFee(t *testing.T) {
	calc := NewCalculator(Policy{
		DepositFreeBelow: 100_000,
		DepositFeeBps:    150,
	})

	tests := []struct {
		name   string
		amount int64
		want   int64
	}{
		{"free below threshold", 2_000, 0},
		{"free just below threshold", 99_999, 0},
		{"charged at threshold", 100_000, 1_500},
		{"charged above threshold", 200_000, 3_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.DepositFee(tt.amount))
		})
	}
}

func TestFeesNeverNegative(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	for _, a := range []int64{1, 7, 999, 1_000_000} {
		assert.GreaterOrEqual(t, calc.WithdrawalFee(a), int64(0))
		assert.GreaterOrEqual(t, calc.DepositFee(a), int64(0))
	}
}

func TestPolicyFromEnvDefaults(t *testing.T) {
	p := PolicyFromEnv()

	assert.Equal(t, int64(DefaultWithdrawalFeeBps), p.WithdrawalFeeBps)
	assert.Equal(t, int64(DefaultMinWithdrawal), p.MinWithdrawal)
	assert.Equal(t, int64(DefaultMaxWithdrawalPerDay), p.MaxWithdrawalPerDay)
}
