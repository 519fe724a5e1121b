// Package fee computes platform fees for wallet operations. The calculator
// is pure: given the same policy and amount it always returns the same fee,
// which matters because fees are persisted on the transaction at request
// time and must never change afterwards.
package fee

// bpsDenominator converts basis points to a fraction.
const bpsDenominator = 10000

// Calculator applies a fee Policy. Amounts are FCFA integers; fees round
// down and are never negative.
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

// Policy returns the policy the calculator was built with.
func (c *Calculator) Policy() Policy {
	return c.policy
}

// DepositFee returns the fee the depositor must send on top of the
// principal. Deposits below the free threshold cost nothing.
func (c *Calculator) DepositFee(amount int64) int64 {
	if amount < c.policy.DepositFreeBelow {
		return 0
	}
	return amount * c.policy.DepositFeeBps / bpsDenominator
}

// WithdrawalFee returns the fee deducted from the wallet in addition to the
// requested amount.
func (c *Calculator) WithdrawalFee(amount int64) int64 {
	return amount * c.policy.WithdrawalFeeBps / bpsDenominator
}
