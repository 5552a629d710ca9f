package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	// MaxNoteLength bounds the free-text annotation accepted at creation.
	MaxNoteLength = 200
)

type (
	TransactionType string

	// Transaction is one recorded income or expense event. It is never
	// mutated after creation; the ledger only prepends and deletes.
	Transaction struct {
		ID       string          `json:"id"`
		Amount   Money           `json:"amount"`
		Category Category        `json:"category"`
		Date     Date            `json:"date"`
		Type     TransactionType `json:"type"`
		Note     string          `json:"note"`
	}

	// Input is the unvalidated shape a front end collects before a
	// transaction exists. Amount is kept as typed by the user.
	Input struct {
		Amount   string
		Type     string
		Category string
		Note     string
		Date     time.Time // zero means "now"
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyID       = errors.New("empty transaction id")
	ErrNoteTooLong   = errors.New("note too long (max 200 characters)")
)

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// ParseTransactionType accepts "income" or "expense" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.Category.IsZero() {
		return ErrEmptyCategory
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if utf8.RuneCountInString(t.Note) > MaxNoteLength {
		return ErrNoteTooLong
	}
	return nil
}

// NewTransaction turns user input into a transaction with a fresh id.
// Nothing is returned unless every field checks out, so a rejected input
// can never reach the ledger.
func NewTransaction(in Input, now time.Time) (Transaction, error) {
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return Transaction{}, err
	}
	typ, err := ParseTransactionType(in.Type)
	if err != nil {
		return Transaction{}, err
	}
	cat := ParseCategory(in.Category)
	if cat.IsZero() {
		return Transaction{}, ErrEmptyCategory
	}
	note := strings.TrimSpace(in.Note)
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return Transaction{}, ErrNoteTooLong
	}
	when := in.Date
	if when.IsZero() {
		when = now
	}
	id, err := NewID()
	if err != nil {
		return Transaction{}, err
	}

	t := Transaction{
		ID:       id,
		Amount:   amount,
		Category: cat,
		Date:     NewDate(when),
		Type:     typ,
		Note:     note,
	}
	return t, t.Validate()
}
