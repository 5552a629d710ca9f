package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"pocketledger/internal/core"
	"pocketledger/internal/insight"
	"pocketledger/internal/ledger"
	"pocketledger/internal/log"
	"pocketledger/internal/report"
)

// appContext is bound to every command's Run method.
type appContext struct {
	ctx      context.Context
	in       io.Reader
	out      io.Writer
	store    *ledger.Store
	insights *insight.Service
	logger   *log.Logger
	now      func() time.Time
}

func newAppContext(ctx context.Context, store *ledger.Store, insights *insight.Service, logger *log.Logger) *appContext {
	return &appContext{
		ctx:      ctx,
		in:       os.Stdin,
		out:      os.Stdout,
		store:    store,
		insights: insights,
		logger:   logger,
		now:      time.Now,
	}
}

var errTransactionNotFound = errors.New("transaction not found")

type addCmd struct {
	Amount   string `arg:"" help:"Amount, e.g. 12.50 or 12,50."`
	Type     string `short:"t" enum:"income,expense" default:"expense" help:"income or expense."`
	Category string `short:"c" default:"Food" help:"Category name; any name not in the built-in list is kept as a custom category."`
	Note     string `short:"n" help:"Optional note."`
	Date     string `short:"d" help:"Date as YYYY-MM-DD (defaults to now)."`
}

func (c *addCmd) Run(app *appContext) error {
	in := core.Input{
		Amount:   c.Amount,
		Type:     c.Type,
		Category: c.Category,
		Note:     c.Note,
	}
	if c.Date != "" {
		d, err := time.ParseInLocation(time.DateOnly, c.Date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", c.Date)
		}
		in.Date = d
	}

	t, err := core.NewTransaction(in, app.now())
	if err != nil {
		app.logger.Debug("Rejected transaction input",
			log.FieldOperation, log.OpCreate,
			log.FieldErrorType, log.ErrorTypeValidation,
			log.FieldError, err)
		return err
	}
	if _, err := app.store.Create(app.ctx, t); err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Added %s %s %s (%s)\n", formatSigned(t), t.Category, t.Date.Short(), t.ID)
	return nil
}

type listCmd struct {
	Limit int `short:"l" default:"0" help:"Show at most this many transactions (0 for all)."`
}

func (c *listCmd) Run(app *appContext) error {
	txns := app.store.List(app.ctx)
	if c.Limit > 0 {
		txns = report.Recent(txns, c.Limit)
	}
	if len(txns) == 0 {
		fmt.Fprintln(app.out, "No transactions yet.")
		return nil
	}
	return writeTransactions(app.out, txns)
}

type showCmd struct {
	ID string `arg:"" help:"Transaction id."`
}

func (c *showCmd) Run(app *appContext) error {
	t, ok := app.store.Get(app.ctx, c.ID)
	if !ok {
		return fmt.Errorf("%w: %s", errTransactionNotFound, c.ID)
	}
	return writeTransaction(app.out, t)
}

type deleteCmd struct {
	ID  string `arg:"" help:"Transaction id."`
	Yes bool   `short:"y" help:"Delete without asking for confirmation."`
}

func (c *deleteCmd) Run(app *appContext) error {
	t, ok := app.store.Get(app.ctx, c.ID)
	if !ok {
		return fmt.Errorf("%w: %s", errTransactionNotFound, c.ID)
	}
	if !c.Yes && !app.confirm(fmt.Sprintf("Delete %s %s %s?", formatSigned(t), t.Category, t.Date.Short())) {
		fmt.Fprintln(app.out, "Cancelled.")
		return nil
	}

	if _, err := app.store.Delete(app.ctx, c.ID); err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Deleted %s\n", c.ID)
	return nil
}

// confirm asks a yes/no question on the input stream. Anything but an
// explicit yes, including end of input, is a no.
func (app *appContext) confirm(question string) bool {
	fmt.Fprintf(app.out, "%s [y/N] ", question)
	scanner := bufio.NewScanner(app.in)
	if !scanner.Scan() {
		fmt.Fprintln(app.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

type clearCmd struct {
	Yes bool `help:"Confirm deleting every transaction."`
}

func (c *clearCmd) Run(app *appContext) error {
	if !c.Yes {
		return errors.New("refusing to delete all transactions without --yes")
	}
	if err := app.store.ClearAll(app.ctx); err != nil {
		return err
	}
	fmt.Fprintln(app.out, "All transactions deleted.")
	return nil
}

type summaryCmd struct{}

func (c *summaryCmd) Run(app *appContext) error {
	return writeSummary(app.out, report.Summarize(app.store.List(app.ctx)))
}

type breakdownCmd struct{}

func (c *breakdownCmd) Run(app *appContext) error {
	txns := app.store.List(app.ctx)
	totals := report.CategoryBreakdown(txns)
	if len(totals) == 0 {
		fmt.Fprintln(app.out, "No expenses recorded yet.")
		return nil
	}
	return writeBreakdown(app.out, totals, report.Summarize(txns).TotalExpense)
}

type insightsCmd struct{}

func (c *insightsCmd) Run(app *appContext) error {
	id, responses := app.insights.Request(app.ctx, app.store.List(app.ctx))
	app.logger.Debug("Insight request sent", log.FieldRequestID, id)

	resp := <-responses
	if resp.Result.Err != nil {
		app.logger.Warn("Insight request failed",
			log.FieldRequestID, resp.RequestID,
			log.FieldErrorType, log.ErrorTypeNetwork,
			log.FieldError, resp.Result.Err)
	}
	fmt.Fprintln(app.out, strings.TrimSpace(resp.Result.Text))
	return nil
}

type categoriesCmd struct{}

func (c *categoriesCmd) Run(app *appContext) error {
	for _, cat := range core.KnownCategories() {
		fmt.Fprintln(app.out, cat.Name())
	}
	return nil
}
