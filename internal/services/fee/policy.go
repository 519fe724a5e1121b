package fee

import "kolo/internal/config"

// Default policy values, FCFA. Overridable through the environment so the
// fee schedule is data, not code.
const (
	DefaultMinDeposit          = 500
	DefaultDepositFreeBelow    = 100_000
	DefaultDepositFeeBps       = 150 // 1.5% above the free threshold
	DefaultWithdrawalFeeBps    = 200 // 2%
	DefaultMinWithdrawal       = 1_000
	DefaultMaxWithdrawalPerDay = 500_000
)

// Policy is the fee and bounds schedule in force when a transaction is
// created. Rates are basis points (100 bps = 1%).
type Policy struct {
	MinDeposit          int64
	DepositFreeBelow    int64
	DepositFeeBps       int64
	WithdrawalFeeBps    int64
	MinWithdrawal       int64
	MaxWithdrawalPerDay int64
}

// DefaultPolicy returns the built-in schedule.
func DefaultPolicy() Policy {
	return Policy{
		MinDeposit:          DefaultMinDeposit,
		DepositFreeBelow:    DefaultDepositFreeBelow,
		DepositFeeBps:       DefaultDepositFeeBps,
		WithdrawalFeeBps:    DefaultWithdrawalFeeBps,
		MinWithdrawal:       DefaultMinWithdrawal,
		MaxWithdrawalPerDay: DefaultMaxWithdrawalPerDay,
	}
}

// PolicyFromEnv builds the schedule from the environment, falling back to
// the defaults.
func PolicyFromEnv() Policy {
	return Policy{
		MinDeposit:          config.GetInt64Env("MIN_DEPOSIT", DefaultMinDeposit),
		DepositFreeBelow:    config.GetInt64Env("DEPOSIT_FREE_BELOW", DefaultDepositFreeBelow),
		DepositFeeBps:       config.GetInt64Env("DEPOSIT_FEE_BPS", DefaultDepositFeeBps),
		WithdrawalFeeBps:    config.GetInt64Env("FEE_WITHDRAWAL_BPS", DefaultWithdrawalFeeBps),
		MinWithdrawal:       config.GetInt64Env("MIN_WITHDRAWAL", DefaultMinWithdrawal),
		MaxWithdrawalPerDay: config.GetInt64Env("MAX_WITHDRAWAL_PER_DAY", DefaultMaxWithdrawalPerDay),
	}
}
