// Package filter compiles boolean expressions over transactions using
// the expr language, for use by the transactions command's --filter
// flag. Expressions see the transaction amount, its provider-defined
// string fields, and a small set of helpers:
//
//	Amount < 0 && contains(Description, "atm")
//	abs(Amount) > 100 || credit()
//	parseDate(Date) > daysAgo(30)
package filter

import (
	"math"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mdupuis/bankfetch/banking"
)

// Filter is a compiled transaction filter, safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile parses and compiles a filter expression.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(staticEnvironment()),
		expr.AllowUndefinedVariables(), // provider fields vary per bank
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one transaction. Evaluation errors
// count as non-matches.
func (f *Filter) Match(tx banking.Transaction) bool {
	result, err := expr.Run(f.program, runtimeEnvironment(tx))
	if err != nil {
		return false
	}
	// Result is guaranteed to be bool due to AsBool() during compilation
	return result.(bool)
}

// Apply returns the transactions matching the filter, preserving order.
func (f *Filter) Apply(transactions []banking.Transaction) []banking.Transaction {
	var matched []banking.Transaction
	for _, tx := range transactions {
		if f.Match(tx) {
			matched = append(matched, tx)
		}
	}
	return matched
}

// staticEnvironment is the environment used for compile-time validation.
func staticEnvironment() map[string]any {
	env := make(map[string]any, 16)
	addHelperFunctions(env)
	return env
}

// addHelperFunctions adds the helper functions shared by compilation
// and evaluation.
func addHelperFunctions(env map[string]any) {
	env["abs"] = math.Abs
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["parseDate"] = func(dateStr string) time.Time {
		if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
			return t
		}
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["now"] = time.Now
}

// runtimeEnvironment builds the evaluation environment for one
// transaction.
func runtimeEnvironment(tx banking.Transaction) map[string]any {
	env := make(map[string]any, len(tx.Extra)+16)
	addHelperFunctions(env)

	env["Amount"] = tx.Amount
	env["credit"] = func() bool { return tx.Amount > 0 }
	env["debit"] = func() bool { return tx.Amount < 0 }
	env["field"] = tx.Field

	// Expose the provider's string fields under capitalized names so
	// expressions read like Description or Currency.
	for name := range tx.Extra {
		if value := tx.Field(name); value != "" {
			env[capitalize(name)] = value
		}
	}

	return env
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
