package insight

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketledger/internal/core"
	"pocketledger/internal/log"
)

type fakeGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	panics  bool
	delay   time.Duration
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.panics {
		panic("boom")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func sample(t *testing.T, n int) []core.Transaction {
	t.Helper()
	out := make([]core.Transaction, 0, n)
	for i := 0; i < n; i++ {
		tx, err := core.NewTransaction(core.Input{
			Amount:   "10",
			Type:     "expense",
			Category: "Food",
			Note:     "item",
		}, time.Date(2025, 1, 1, 0, 0, i, 0, time.UTC))
		require.NoError(t, err)
		out = append(out, tx)
	}
	return out
}

func newService(gen Generator, opts ...Option) *Service {
	return NewService(gen, append([]Option{WithLogger(log.Discard())}, opts...)...)
}

func TestAnalyzeEmptyShortCircuits(t *testing.T) {
	gen := &fakeGenerator{text: "should not be used"}
	res := newService(gen).Analyze(context.Background(), nil)

	assert.Equal(t, NoTransactionsMessage, res.Text)
	assert.True(t, res.Fallback)
	assert.NoError(t, res.Err)
	assert.Zero(t, gen.calls(), "no remote call for an empty ledger")
}

func TestAnalyzeReturnsGeneratorText(t *testing.T) {
	gen := &fakeGenerator{text: "  All good.\n- tip  "}
	res := newService(gen).Analyze(context.Background(), sample(t, 3))

	assert.True(t, res.OK())
	assert.Equal(t, "All good.\n- tip", res.Text)
	require.Equal(t, 1, gen.calls())
	assert.Contains(t, gen.prompts[0], "Three actionable bullet points")
}

func TestAnalyzeFailuresResolveToFallbacks(t *testing.T) {
	cases := []struct {
		name    string
		gen     Generator
		want    string
		wantErr bool
	}{
		{"network error", &fakeGenerator{err: errors.New("dial tcp: refused")}, UnavailableMessage, true},
		{"empty text", &fakeGenerator{text: "   "}, EmptyResponseMessage, false},
		{"panic", &fakeGenerator{panics: true}, UnavailableMessage, true},
		{"not configured", nil, UnavailableMessage, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := newService(tc.gen).Analyze(context.Background(), sample(t, 1))
			assert.Equal(t, tc.want, res.Text)
			assert.True(t, res.Fallback)
			assert.Equal(t, tc.wantErr, res.Err != nil)
		})
	}
}

func TestAnalyzeNilGeneratorReportsNotConfigured(t *testing.T) {
	res := newService(nil).Analyze(context.Background(), sample(t, 1))
	assert.ErrorIs(t, res.Err, ErrNotConfigured)
}

func TestAnalyzeSendsOnlyMostRecent(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	txns := sample(t, 60)
	newService(gen).Analyze(context.Background(), txns)

	require.Equal(t, 1, gen.calls())
	sent := decodePromptTransactions(t, gen.prompts[0])
	require.Len(t, sent, DefaultMaxTransactions)
	assert.Equal(t, txns[0].ID, sent[0].ID)
	assert.Equal(t, txns[49].ID, sent[49].ID)

	gen = &fakeGenerator{text: "ok"}
	newService(gen, WithMaxTransactions(5)).Analyze(context.Background(), txns)
	assert.Len(t, decodePromptTransactions(t, gen.prompts[0]), 5)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	txns := sample(t, 2)
	before, _ := json.Marshal(txns)
	newService(&fakeGenerator{text: "ok"}).Analyze(context.Background(), txns)
	after, _ := json.Marshal(txns)
	assert.Equal(t, before, after)
}

func TestRequestDeliversOneResponse(t *testing.T) {
	svc := newService(&fakeGenerator{text: "fine"})
	id, ch := svc.Request(context.Background(), sample(t, 1))
	require.NotEmpty(t, id)

	resp, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, id, resp.RequestID)
	assert.Equal(t, "fine", resp.Result.Text)

	_, ok = <-ch
	assert.False(t, ok, "channel closes after the single response")
}

func TestRequestsAreIndependent(t *testing.T) {
	slow := newService(&fakeGenerator{text: "slow", delay: 200 * time.Millisecond})
	fast := newService(&fakeGenerator{text: "fast"})

	slowID, slowCh := slow.Request(context.Background(), sample(t, 1))
	fastID, fastCh := fast.Request(context.Background(), sample(t, 1))
	assert.NotEqual(t, slowID, fastID)

	select {
	case resp := <-fastCh:
		assert.Equal(t, fastID, resp.RequestID)
		assert.Equal(t, "fast", resp.Result.Text)
	case <-slowCh:
		t.Fatal("slow request finished first")
	case <-time.After(2 * time.Second):
		t.Fatal("fast request never completed")
	}

	resp := <-slowCh
	assert.Equal(t, slowID, resp.RequestID)
	assert.Equal(t, "slow", resp.Result.Text)
}

func TestRequestHonoursContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := newService(&fakeGenerator{text: "late", delay: time.Minute})
	_, ch := svc.Request(ctx, sample(t, 1))
	cancel()

	select {
	case resp := <-ch:
		assert.Equal(t, UnavailableMessage, resp.Result.Text)
		assert.ErrorIs(t, resp.Result.Err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("request did not resolve after cancellation")
	}
}

func TestBuildPromptEmbedsJSON(t *testing.T) {
	p, err := BuildPrompt(nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p, "Transactions:\n[]"))
	assert.Contains(t, p, "1-sentence summary")
	assert.Contains(t, p, "encouraging closing remark")
	assert.Contains(t, p, "Do not use markdown")
}

func decodePromptTransactions(t *testing.T, prompt string) []core.Transaction {
	t.Helper()
	i := strings.Index(prompt, "Transactions:\n")
	require.GreaterOrEqual(t, i, 0)
	var out []core.Transaction
	require.NoError(t, json.Unmarshal([]byte(prompt[i+len("Transactions:\n"):]), &out))
	return out
}
