package utils

import (
	"strings"
	"testing"

	"kolo/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReference(t *testing.T) {
	tests := []struct {
		txType string
		prefix string
	}{
		{models.TransactionTypeDeposit, "DEP-"},
		{models.TransactionTypeWithdrawal, "WDR-"},
		{models.TransactionTypePayment, "PAY-"},
		{"something-else", "TXN-"},
	}

	for _, tt := range tests {
		ref, err := GenerateReference(tt.txType)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, tt.prefix), "got %q", ref)
		assert.Len(t, ref, len(tt.prefix)+referenceLength)

		for _, r := range ref[len(tt.prefix):] {
			assert.Contains(t, referenceAlphabet, string(r))
		}
	}
}

func TestGenerateReferenceUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref, err := GenerateReference(models.TransactionTypeDeposit)
		assert.NoError(t, err)
		assert.False(t, seen[ref], "duplicate reference %q", ref)
		seen[ref] = true
	}
}
