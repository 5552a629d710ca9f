// Package ledger owns the canonical transaction collection and persists
// it as one JSON array under a single storage key.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"pocketledger/internal/core"
	"pocketledger/internal/log"
	"pocketledger/internal/storage"
)

// DefaultKey is the storage key holding the serialized collection.
const DefaultKey = "pocketledger_transactions_v1"

// Store is the sole writer of its storage key. Every mutation is a full
// read-modify-write of the collection with no locking: it assumes a single
// client with one logical thread of control, and two unserialized writers
// would lose one of the writes.
type Store struct {
	kv     storage.KeyValue
	key    string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for recoverable diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l.WithComponent(log.ComponentLedger)
		}
	}
}

func New(kv storage.KeyValue, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		logger: log.New(log.DefaultConfig()).WithComponent(log.ComponentLedger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key the store writes to.
func (s *Store) Key() string {
	return s.key
}

// List returns the collection, newest first. Missing, empty, unreadable or
// malformed data yields an empty collection and a warning, never an error.
func (s *Store) List(ctx context.Context) []core.Transaction {
	txns, err := s.load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read transactions, treating ledger as empty",
			log.NewFields().
				WithOperation(log.OpList).
				WithKey(s.key).
				WithErrorType(log.ErrorTypeStorage).
				WithError(err).
				ToSlice()...)
		return []core.Transaction{}
	}
	return txns
}

// load reads the collection. Malformed data is logged and treated as
// empty; a storage read failure is returned so mutations never overwrite
// a collection they could not read.
func (s *Store) load(ctx context.Context) ([]core.Transaction, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	if !ok || len(raw) == 0 {
		return []core.Transaction{}, nil
	}

	var txns []core.Transaction
	if err := json.Unmarshal(raw, &txns); err != nil {
		s.logger.WarnContext(ctx, "Stored transactions are malformed, treating ledger as empty",
			log.NewFields().
				WithOperation(log.OpList).
				WithKey(s.key).
				WithErrorType(log.ErrorTypeCorruption).
				WithError(err).
				ToSlice()...)
		return []core.Transaction{}, nil
	}
	if txns == nil {
		// "null" is valid JSON but not a collection.
		return []core.Transaction{}, nil
	}
	return txns, nil
}

// Get returns the transaction with the given id.
func (s *Store) Get(ctx context.Context, id string) (core.Transaction, bool) {
	for _, t := range s.List(ctx) {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// Create prepends t, persists the whole collection and returns it. The
// input is trusted; callers validate with core.NewTransaction first.
func (s *Store) Create(ctx context.Context, t core.Transaction) ([]core.Transaction, error) {
	current, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("create transaction %s: %w", t.ID, err)
	}
	updated := make([]core.Transaction, 0, len(current)+1)
	updated = append(updated, t)
	updated = append(updated, current...)

	if err := s.save(ctx, updated); err != nil {
		return nil, fmt.Errorf("create transaction %s: %w", t.ID, err)
	}

	s.logger.DebugContext(ctx, "Transaction created",
		log.NewFields().
			WithOperation(log.OpCreate).
			WithTransaction(t.ID, t.Type.String(), t.Category.Name(), t.Amount.Format()).
			WithCount(len(updated)).
			ToSlice()...)
	return updated, nil
}

// Delete removes the first transaction with the given id, persists and
// returns the result. An unknown id leaves the collection unchanged.
func (s *Store) Delete(ctx context.Context, id string) ([]core.Transaction, error) {
	current, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("delete transaction %s: %w", id, err)
	}
	idx := -1
	for i, t := range current {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Nothing to remove; the stored bytes are left untouched.
		return current, nil
	}

	updated := make([]core.Transaction, 0, len(current)-1)
	updated = append(updated, current[:idx]...)
	updated = append(updated, current[idx+1:]...)

	if err := s.save(ctx, updated); err != nil {
		return nil, fmt.Errorf("delete transaction %s: %w", id, err)
	}

	s.logger.DebugContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldTxID, id,
		log.FieldCount, len(updated))
	return updated, nil
}

// ClearAll removes the persisted collection. It cannot be undone.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	s.logger.InfoContext(ctx, "Ledger cleared", log.FieldOperation, log.OpClear, log.FieldKey, s.key)
	return nil
}

func (s *Store) save(ctx context.Context, txns []core.Transaction) error {
	data, err := json.Marshal(txns)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	return nil
}
