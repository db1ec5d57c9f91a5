package core

import (
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the on-disk and on-screen representation of a Date.
const DateLayout = "2006-01-02"

type (
	Category string

	Date struct {
		time.Time
	}

	Expense struct {
		Amount   int64    `validate:"gt=0"`
		Category Category `validate:"required,expense_category"`
		Date     Date
		// Row is the 1-based table row the record was read from (header is row 1).
		// Zero until the record has been stored.
		Row int
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
	ErrFutureDate      = errors.New("date is in the future")
	ErrZeroDate        = errors.New("date cannot be zero")
	ErrDateFormat      = errors.New("date must be in the format YYYY-MM-DD")
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	validate    = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("expense_category", func(fl validator.FieldLevel) bool {
		return IsKnownCategory(Category(fl.Field().String()))
	})
	return v
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// After reports whether d falls on a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today truncates now to its local calendar day.
func Today(now time.Time) Date {
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate accepts exactly YYYY-MM-DD naming a real calendar day.
func ParseDate(s string) (Date, error) {
	if !datePattern.MatchString(s) {
		return Date{}, ErrDateFormat
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrDateFormat
	}
	return Date{Time: t}, nil
}

// Validate checks the invariants of a record about to be written.
func (e Expense) Validate(today Date) error {
	if err := validate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Amount":
				return ErrInvalidAmount
			case "Category":
				return ErrUnknownCategory
			}
		}
		return err
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	if e.Date.After(today) {
		return ErrFutureDate
	}
	return nil
}
