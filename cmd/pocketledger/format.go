package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"pocketledger/internal/core"
	"pocketledger/internal/report"
)

// formatSigned renders an amount with two decimals, "-" for expenses and
// "+" for income.
func formatSigned(t core.Transaction) string {
	sign := "+"
	if t.Type == core.Expense {
		sign = "-"
	}
	return sign + t.Amount.Format()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeTransactions(w io.Writer, txns []core.Transaction) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tCATEGORY\tNOTE\tID")
	for _, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.Date.Short(), formatSigned(t), t.Category, t.Note, t.ID)
	}
	return tw.Flush()
}

func writeTransaction(w io.Writer, t core.Transaction) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%s\n", t.ID)
	fmt.Fprintf(tw, "Date\t%s\n", t.Date)
	fmt.Fprintf(tw, "Type\t%s\n", t.Type)
	fmt.Fprintf(tw, "Amount\t%s\n", formatSigned(t))
	fmt.Fprintf(tw, "Category\t%s\n", t.Category)
	if t.Note != "" {
		fmt.Fprintf(tw, "Note\t%s\n", t.Note)
	}
	return tw.Flush()
}

func writeSummary(w io.Writer, s report.Summary) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Income\t%s\n", s.TotalIncome.Format())
	fmt.Fprintf(tw, "Expenses\t%s\n", s.TotalExpense.Format())
	fmt.Fprintf(tw, "Balance\t%s\n", s.Balance.Format())
	return tw.Flush()
}

func writeBreakdown(w io.Writer, totals []report.CategoryTotal, totalExpense core.Money) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tTOTAL\tSHARE")
	for _, c := range totals {
		fmt.Fprintf(tw, "%s\t%s\t%s%%\n", c.Category, c.Total.Format(), c.Share(totalExpense).StringFixed(1))
	}
	return tw.Flush()
}
