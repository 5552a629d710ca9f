package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// dateLayout is ISO 8601 with millisecond precision. Dates are always
// rendered in UTC so the persisted strings sort lexically.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

var ErrInvalidDate = errors.New("invalid date")

// Date is the point in time a transaction was recorded.
type Date struct {
	time.Time
}

// NewDate normalizes t to UTC at millisecond precision, which is exactly
// what survives a round trip through storage.
func NewDate(t time.Time) Date {
	return Date{Time: t.UTC().Truncate(time.Millisecond)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidDate)
	}
	return nil
}

// String returns the persisted ISO 8601 form.
func (d Date) String() string {
	return d.UTC().Format(dateLayout)
}

// Short is the compact month/day form used in listings.
func (d Date) Short() string {
	return d.UTC().Format("Jan 2")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	*d = NewDate(t)
	return nil
}
