package banking

import (
	"fmt"
	"math"
)

// ConsistencyTolerance is the maximum absolute difference allowed
// between the current balance and the sum of transaction amounts.
const ConsistencyTolerance = 0.01

// Consistent reports whether the current balance matches the sum of the
// transaction amounts within ConsistencyTolerance. It returns false when
// no balance entry exists. Amounts are compared numerically; currencies
// are not inspected.
func Consistent(balances Balances, transactions []Transaction) bool {
	return VerifyConsistency(balances, transactions) == nil
}

// VerifyConsistency is the strict form of Consistent: it returns a
// descriptive error when the balance is missing or the amounts diverge
// beyond the tolerance.
func VerifyConsistency(balances Balances, transactions []Transaction) error {
	current, ok := balances.Current()
	if !ok {
		return fmt.Errorf("no balance entry to verify against")
	}

	var sum float64
	for _, tx := range transactions {
		sum += tx.Amount
	}

	if diff := math.Abs(current.Amount - sum); diff > ConsistencyTolerance {
		return fmt.Errorf("balance %.2f does not match transaction sum %.2f (difference %.2f)",
			current.Amount, sum, diff)
	}
	return nil
}
