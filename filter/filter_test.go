package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdupuis/bankfetch/banking"
)

func makeTransaction(t *testing.T, body string) banking.Transaction {
	t.Helper()
	var tx banking.Transaction
	require.NoError(t, json.Unmarshal([]byte(body), &tx))
	return tx
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{
			name:       "simple amount comparison",
			expression: "Amount < 0",
		},
		{
			name:       "helper call",
			expression: `contains(Description, "atm")`,
		},
		{
			name:       "empty expression",
			expression: "   ",
			wantErr:    true,
		},
		{
			name:       "syntax error",
			expression: "Amount <",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.wantErr {
				var compErr *CompilationError
				require.ErrorAs(t, err, &compErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestMatch(t *testing.T) {
	debit := makeTransaction(t, `{"amount":-50.25,"description":"ATM Withdrawal","currency":"EUR","date":"2023-01-02T14:30:00Z"}`)
	credit := makeTransaction(t, `{"amount":1200,"description":"Salary","currency":"EUR"}`)

	tests := []struct {
		name       string
		expression string
		tx         banking.Transaction
		want       bool
	}{
		{"negative amount", "Amount < 0", debit, true},
		{"negative amount on credit", "Amount < 0", credit, false},
		{"abs helper", "abs(Amount) > 100", credit, true},
		{"debit helper", "debit()", debit, true},
		{"credit helper", "credit()", debit, false},
		{"description contains", `contains(Description, "ATM")`, debit, true},
		{"case insensitive", `contains(Description, "atm")`, debit, true},
		{"field helper", `field("currency") == "EUR"`, debit, true},
		{"capitalized provider field", `Currency == "EUR"`, credit, true},
		{"date helper", `parseDate(Date) < now()`, debit, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Match(tt.tx))
		})
	}
}

func TestApply(t *testing.T) {
	transactions := []banking.Transaction{
		makeTransaction(t, `{"amount":-10,"description":"a"}`),
		makeTransaction(t, `{"amount":20,"description":"b"}`),
		makeTransaction(t, `{"amount":-30,"description":"c"}`),
	}

	f, err := Compile("Amount < 0")
	require.NoError(t, err)

	matched := f.Apply(transactions)
	require.Len(t, matched, 2)
	// Service order is preserved
	assert.Equal(t, -10.0, matched[0].Amount)
	assert.Equal(t, -30.0, matched[1].Amount)

	none, err := Compile("Amount > 1000")
	require.NoError(t, err)
	assert.Empty(t, none.Apply(transactions))
}
