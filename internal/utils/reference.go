package utils

import (
	"crypto/rand"
	"fmt"

	"kolo/internal/models"
)

// Unambiguous alphabet (no 0/O, 1/I/L) so references survive being read
// over the phone during manual reconciliation.
const referenceAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

const referenceLength = 8

var referencePrefixes = map[string]string{
	models.TransactionTypeDeposit:    "DEP",
	models.TransactionTypeWithdrawal: "WDR",
	models.TransactionTypePayment:    "PAY",
}

// GenerateReference returns a human-typeable transaction reference such as
// "DEP-7F3K2M9Q". Uniqueness is enforced by the database index; collisions
// at 8 random characters are effectively nonexistent.
func GenerateReference(txType string) (string, error) {
	prefix, ok := referencePrefixes[txType]
	if !ok {
		prefix = "TXN"
	}

	b := make([]byte, referenceLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate reference: %w", err)
	}
	for i := range b {
		b[i] = referenceAlphabet[int(b[i])%len(referenceAlphabet)]
	}
	return prefix + "-" + string(b), nil
}
