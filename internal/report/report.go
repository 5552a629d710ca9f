// Package report computes aggregate views over a transaction list. All
// functions are pure: no I/O, no mutation of the input.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
)

// Summary holds ledger totals. Balance may be negative.
type Summary struct {
	TotalIncome  core.Money `json:"totalIncome"`
	TotalExpense core.Money `json:"totalExpense"`
	Balance      core.Money `json:"balance"`
}

// CategoryTotal is the expense total for one category.
type CategoryTotal struct {
	Category string     `json:"category"`
	Total    core.Money `json:"total"`
}

// Summarize sums income and expense amounts in one pass. Decimal addition
// is exact, so the result does not depend on input order.
func Summarize(txns []core.Transaction) Summary {
	var income, expense core.Money
	for _, t := range txns {
		switch t.Type {
		case core.Income:
			income = income.Add(t.Amount)
		case core.Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}
}

// CategoryBreakdown groups expenses by category name and returns the totals
// sorted by descending total. Categories tied on total keep the order in
// which they were first seen. Categories without expenses are omitted.
func CategoryBreakdown(txns []core.Transaction) []CategoryTotal {
	index := make(map[string]int)
	var out []CategoryTotal
	for _, t := range txns {
		if t.Type != core.Expense {
			continue
		}
		name := t.Category.Name()
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CategoryTotal{Category: name})
		}
		out[i].Total = out[i].Total.Add(t.Amount)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Total.GreaterThan(out[b].Total.Decimal)
	})
	if out == nil {
		return []CategoryTotal{}
	}
	return out
}

// Share returns this category's percentage of totalExpense, rounded to one
// decimal. A zero total yields zero.
func (c CategoryTotal) Share(totalExpense core.Money) decimal.Decimal {
	if totalExpense.IsZero() {
		return decimal.Zero
	}
	return c.Total.Div(totalExpense.Decimal).Mul(decimal.NewFromInt(100)).Round(1)
}

// Recent returns at most n transactions from the head of a newest-first
// list. The returned slice shares no backing array with txns.
func Recent(txns []core.Transaction, n int) []core.Transaction {
	if n < 0 {
		n = 0
	}
	if n > len(txns) {
		n = len(txns)
	}
	return append([]core.Transaction(nil), txns[:n]...)
}
