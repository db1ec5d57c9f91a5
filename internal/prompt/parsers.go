package prompt

import (
	"errors"
	"strconv"
	"strings"

	"expensetracker/internal/core"
)

// BoundedInt parses an integer in [min, max]; label names it in diagnostics.
func BoundedInt(label string, min, max int) func(string) (int, error) {
	return func(s string) (int, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, ErrEmpty
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < min || n > max {
			return 0, Invalid("Invalid %s. Please enter a number between %d and %d.", label, min, max)
		}
		return n, nil
	}
}

func Amount(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, ErrEmpty
	}
	n, err := core.ParseAmount(s)
	switch {
	case errors.Is(err, core.ErrAmountFormat):
		return 0, Invalid("Invalid amount. Please enter a valid number.")
	case err != nil:
		return 0, Invalid("Invalid amount. Please enter a positive number.")
	}
	return n, nil
}

// PastOrToday parses a YYYY-MM-DD date no later than today().
func PastOrToday(today func() core.Date) func(string) (core.Date, error) {
	return func(s string) (core.Date, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return core.Date{}, ErrEmpty
		}
		d, err := core.ParseDate(s)
		if err != nil {
			return core.Date{}, Invalid("Incorrect date format. Please enter a valid date in the format YYYY-MM-DD.")
		}
		if d.After(today()) {
			return core.Date{}, Invalid("Invalid date. Please enter a date in the past or today")
		}
		return d, nil
	}
}

// Choice is a single-letter option such as "c" for category.
type Choice struct {
	Key   string
	Label string
}

var YesNoChoices = []Choice{{Key: "y", Label: "yes"}, {Key: "n", Label: "no"}}

// OneOf parses a case-insensitive choice key.
func OneOf(choices []Choice) func(string) (Choice, error) {
	return func(s string) (Choice, error) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return Choice{}, ErrEmpty
		}
		for _, c := range choices {
			if c.Key == s {
				return c, nil
			}
		}
		return Choice{}, Invalid("Invalid choice. Please enter %s.", describe(choices))
	}
}

// describe renders "c (category), a (amount) or d (date)".
func describe(choices []Choice) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = c.Key + " (" + c.Label + ")"
	}
	if len(parts) < 2 {
		return strings.Join(parts, "")
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}
