package banking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsistent(t *testing.T) {
	tests := []struct {
		name         string
		balances     Balances
		transactions []Transaction
		want         bool
	}{
		{
			name:         "exact match",
			balances:     Balances{{Amount: 50.25, Currency: "EUR"}},
			transactions: []Transaction{{Amount: 100.50}, {Amount: -50.25}},
			want:         true,
		},
		{
			name:         "within tolerance",
			balances:     Balances{{Amount: 100.009}},
			transactions: []Transaction{{Amount: 100}},
			want:         true,
		},
		{
			name:         "beyond tolerance",
			balances:     Balances{{Amount: 100.02}},
			transactions: []Transaction{{Amount: 100}},
			want:         false,
		},
		{
			name:         "first balance entry is authoritative",
			balances:     Balances{{Amount: 100}, {Amount: 999}},
			transactions: []Transaction{{Amount: 60}, {Amount: 40}},
			want:         true,
		},
		{
			name:         "no balance entry",
			balances:     Balances{},
			transactions: []Transaction{{Amount: 10}},
			want:         false,
		},
		{
			name:     "no transactions against zero balance",
			balances: Balances{{Amount: 0}},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Consistent(tt.balances, tt.transactions))
		})
	}
}

func TestVerifyConsistency(t *testing.T) {
	err := VerifyConsistency(Balances{{Amount: 100}}, []Transaction{{Amount: 40}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "100.00")
	assert.Contains(t, err.Error(), "40.00")

	err = VerifyConsistency(Balances{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no balance entry")
}
