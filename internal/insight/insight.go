// Package insight asks an external narrative service for a short,
// human-readable commentary on the user's recent transactions.
//
// The service only ever reads a snapshot of transactions handed to it; it
// has no access to the ledger. Every failure resolves to a fixed message,
// so callers always get something to display.
package insight

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pocketledger/internal/core"
	"pocketledger/internal/log"
	"pocketledger/internal/report"
)

const (
	NoTransactionsMessage = "No transactions recorded yet. Add some income and expenses to get AI insights!"
	EmptyResponseMessage  = "Could not generate insights at this time."
	UnavailableMessage    = "Sorry, I couldn't connect to the insight engine. Please check your internet connection."

	// DefaultMaxTransactions caps how many recent transactions are sent.
	DefaultMaxTransactions = 50
)

// ErrNotConfigured is reported when no generator is available.
var ErrNotConfigured = errors.New("insight generator not configured")

// Generator turns a prompt into free-form text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of one analysis. Text is always displayable; Err
// carries the underlying failure when Text is a fallback.
type Result struct {
	Text     string
	Fallback bool
	Err      error
}

// OK reports whether Text came from the generator.
func (r Result) OK() bool {
	return !r.Fallback
}

// Response pairs a Result with the request that produced it.
type Response struct {
	RequestID string
	Result    Result
}

type Service struct {
	gen    Generator
	max    int
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMaxTransactions sets how many of the most recent transactions are
// included in the prompt.
func WithMaxTransactions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.max = n
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l.WithComponent(log.ComponentInsight)
		}
	}
}

// NewService returns a service backed by gen. A nil gen is allowed: every
// non-empty analysis then resolves to UnavailableMessage.
func NewService(gen Generator, opts ...Option) *Service {
	s := &Service{
		gen:    gen,
		max:    DefaultMaxTransactions,
		logger: log.New(log.DefaultConfig()).WithComponent(log.ComponentInsight),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze builds the prompt from the most recent transactions (txns is
// newest first) and asks the generator for commentary. An empty list is
// answered locally without contacting the generator.
func (s *Service) Analyze(ctx context.Context, txns []core.Transaction) Result {
	if len(txns) == 0 {
		return Result{Text: NoTransactionsMessage, Fallback: true}
	}
	if s.gen == nil {
		return Result{Text: UnavailableMessage, Fallback: true, Err: ErrNotConfigured}
	}

	recent := report.Recent(txns, s.max)
	prompt, err := BuildPrompt(recent)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build insight prompt", log.FieldError, err)
		return Result{Text: EmptyResponseMessage, Fallback: true, Err: err}
	}

	start := time.Now()
	text, err := s.generate(ctx, prompt)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		s.logger.WarnContext(ctx, "Insight generation failed",
			log.NewFields().
				WithOperation(log.OpAnalyze).
				WithErrorType(log.ErrorTypeNetwork).
				WithError(err).
				WithCount(len(recent)).
				ToSlice()...)
		return Result{Text: UnavailableMessage, Fallback: true, Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.WarnContext(ctx, "Insight generator returned no text", log.FieldDuration, elapsed)
		return Result{Text: EmptyResponseMessage, Fallback: true}
	}

	s.logger.DebugContext(ctx, "Insight generated",
		log.FieldOperation, log.OpAnalyze,
		log.FieldCount, len(recent),
		log.FieldDuration, elapsed)
	return Result{Text: text}
}

// generate shields callers from a panicking generator.
func (s *Service) generate(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("insight generator panicked")
		}
	}()
	return s.gen.Generate(ctx, prompt)
}

// Request starts an analysis in the background and returns its id and a
// channel that receives exactly one Response. Requests are independent:
// starting a new one neither cancels nor waits for an earlier one, and
// any deadline comes from ctx or the generator's transport.
func (s *Service) Request(ctx context.Context, txns []core.Transaction) (string, <-chan Response) {
	id := uuid.NewString()
	snapshot := append([]core.Transaction(nil), txns...)
	ch := make(chan Response, 1)
	go func() {
		defer close(ch)
		ch <- Response{
			RequestID: id,
			Result:    s.Analyze(ctx, snapshot),
		}
	}()
	return id, ch
}
