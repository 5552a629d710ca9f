package core

import (
	"encoding/json"
	"strings"
)

// KnownCategory enumerates the built-in category labels.
type KnownCategory uint8

const (
	Food KnownCategory = iota + 1
	Transport
	Housing
	Utilities
	Entertainment
	Health
	Shopping
	Salary
	Freelance
	Investment
	Other
)

var knownNames = [...]string{
	Food:          "Food",
	Transport:     "Transport",
	Housing:       "Housing",
	Utilities:     "Utilities",
	Entertainment: "Entertainment",
	Health:        "Health",
	Shopping:      "Shopping",
	Salary:        "Salary",
	Freelance:     "Freelance",
	Investment:    "Investment",
	Other:         "Other",
}

func (k KnownCategory) String() string {
	if k == 0 || int(k) >= len(knownNames) {
		return ""
	}
	return knownNames[k]
}

// Category is either one of the known labels or a custom, free-form one.
// The zero value is the empty category and is never valid on a stored
// transaction.
type Category struct {
	known  KnownCategory
	custom string
}

// Known returns the category for a built-in label.
func Known(k KnownCategory) Category {
	return Category{known: k}
}

// Custom returns a free-form category. Use ParseCategory when the name
// may collide with a built-in label.
func Custom(name string) Category {
	return Category{custom: strings.TrimSpace(name)}
}

// ParseCategory maps an exact built-in name to its known variant and
// anything else to a custom category.
func ParseCategory(name string) Category {
	name = strings.TrimSpace(name)
	for k := Food; k <= Other; k++ {
		if knownNames[k] == name {
			return Known(k)
		}
	}
	return Custom(name)
}

// KnownCategories lists the built-in categories in declaration order.
func KnownCategories() []Category {
	out := make([]Category, 0, int(Other))
	for k := Food; k <= Other; k++ {
		out = append(out, Known(k))
	}
	return out
}

// Name is the display and persisted label.
func (c Category) Name() string {
	if c.known != 0 {
		return c.known.String()
	}
	return c.custom
}

func (c Category) String() string {
	return c.Name()
}

// Known reports the built-in label, if any.
func (c Category) Known() (KnownCategory, bool) {
	return c.known, c.known != 0
}

func (c Category) IsCustom() bool {
	return c.known == 0 && c.custom != ""
}

func (c Category) IsZero() bool {
	return c.known == 0 && c.custom == ""
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Name())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = ParseCategory(s)
	return nil
}
