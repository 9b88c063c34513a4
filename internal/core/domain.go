package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

type (
	// TransactionKind carries the sign of a transaction. Amounts are always
	// non-negative; whether they add to or subtract from the balance is
	// decided by the kind alone.
	TransactionKind string

	// Date is a calendar date with no time-of-day component.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single ledger entry. ID and CreatedAt are assigned by
	// the store on insert and are immutable afterwards.
	Transaction struct {
		ID          int64
		Owner       string
		Kind        TransactionKind
		Category    string
		Amount      Money
		Description string
		Date        Date      // day the transaction occurred
		CreatedAt   time.Time // server-assigned at insert
	}

	// BudgetGoal caps spending for a category in a given month/year. At most
	// one goal exists per (owner, category, month, year); writes replace.
	BudgetGoal struct {
		ID       int64
		Owner    string
		Category string
		Amount   Money
		Month    int // 1-12
		Year     int
	}
)

// ErrValidation is the root of all input validation errors. Every sentinel
// below wraps it so callers can match the whole family with errors.Is.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidKind   = fmt.Errorf("%w: kind must be income or expense", ErrValidation)
	ErrInvalidAmount = fmt.Errorf("%w: amount must not be negative", ErrValidation)
	ErrEmptyOwner    = fmt.Errorf("%w: empty owner", ErrValidation)
	ErrEmptyCategory = fmt.Errorf("%w: empty category", ErrValidation)
	ErrInvalidDate   = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidMonth  = fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	ErrInvalidYear   = fmt.Errorf("%w: year must have four digits", ErrValidation)

	// ErrNotFound reports that a delete or lookup targeted a row that does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrAdviceGeneration is the single opaque failure surfaced when the
	// external advice generator does not return usable text.
	ErrAdviceGeneration = errors.New("advice generation failed")
)

func (k TransactionKind) Valid() bool {
	return k == Income || k == Expense
}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO 8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Owner) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(t.Description) > 200 {
		return fmt.Errorf("%w: description too long (max 200 characters)", ErrValidation)
	}
	return t.Date.Validate()
}

func (g BudgetGoal) Validate() error {
	if strings.TrimSpace(g.Owner) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(g.Category) == "" {
		return ErrEmptyCategory
	}
	if err := g.Amount.Validate(); err != nil {
		return err
	}
	if g.Month < 1 || g.Month > 12 {
		return ErrInvalidMonth
	}
	if g.Year < 1000 || g.Year > 9999 {
		return ErrInvalidYear
	}
	return nil
}
