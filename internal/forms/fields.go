package forms

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"
)

// Field validates and converts one submitted value.
type Field interface {
	Base() *BaseField
	// Clean converts the widget value into a Go value. User errors are
	// returned as *ValidationError; anything else aborts validation.
	Clean(ctx context.Context, value any) (any, error)
}

// BaseField carries what every field shares.
type BaseField struct {
	Label    string
	HelpText string
	Required bool
	Initial  any
	Widget   Widget
}

func (b *BaseField) Base() *BaseField { return b }

// CharField accepts free text, trimmed of surrounding space.
type CharField struct {
	BaseField
	MaxLength int
	MinLength int
}

func (f *CharField) Clean(_ context.Context, value any) (any, error) {
	s := strings.TrimSpace(formatValue(value))
	if s == "" {
		if f.Required {
			return nil, errRequired()
		}
		return "", nil
	}
	n := utf8.RuneCountInString(s)
	if f.MaxLength > 0 && n > f.MaxLength {
		return nil, newValidationError(CodeMaxLength, "Ensure this value has at most %d characters (it has %d).", f.MaxLength, n)
	}
	if f.MinLength > 0 && n < f.MinLength {
		return nil, newValidationError(CodeMinLength, "Ensure this value has at least %d characters (it has %d).", f.MinLength, n)
	}
	return s, nil
}

// IntegerField accepts whole numbers written without locale formatting.
type IntegerField struct {
	BaseField
	MinValue *int64
}

func (f *IntegerField) Clean(_ context.Context, value any) (any, error) {
	s := strings.TrimSpace(formatValue(value))
	if s == "" {
		if f.Required {
			return nil, errRequired()
		}
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, newValidationError(CodeInvalid, "Enter a whole number.")
	}
	if f.MinValue != nil && n < *f.MinValue {
		return nil, newValidationError(CodeMinValue, "Ensure this value is greater than or equal to %d.", *f.MinValue)
	}
	return n, nil
}

// FloatField accepts decimal numbers.
type FloatField struct {
	BaseField
}

func (f *FloatField) Clean(_ context.Context, value any) (any, error) {
	s := strings.TrimSpace(formatValue(value))
	if s == "" {
		if f.Required {
			return nil, errRequired()
		}
		return nil, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, newValidationError(CodeInvalid, "Enter a number.")
	}
	return n, nil
}

// BooleanField maps a checkbox to a bool. Required means it must be checked.
type BooleanField struct {
	BaseField
}

func (f *BooleanField) Clean(_ context.Context, value any) (any, error) {
	b := truthy(value)
	if !b && f.Required {
		return nil, errRequired()
	}
	return b, nil
}

// ChoiceField accepts one of a fixed set of values.
type ChoiceField struct {
	BaseField
	Choices []Choice
}

func (f *ChoiceField) Clean(_ context.Context, value any) (any, error) {
	s := strings.TrimSpace(formatValue(value))
	if s == "" {
		if f.Required {
			return nil, errRequired()
		}
		return "", nil
	}
	for _, choice := range f.Choices {
		if choice.Value == s {
			return s, nil
		}
	}
	return nil, newValidationError(CodeInvalidValue, "Select a valid choice. %s is not one of the available choices.", s)
}

// Date input formats accepted by DateField, tried in order.
var DateInputFormats = []string{
	DateLayout,
	"01/02/2006",
	"01/02/06",
}

// DateField accepts calendar dates and cleans them to midnight UTC.
type DateField struct {
	BaseField
}

func (f *DateField) Clean(_ context.Context, value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return truncateDate(v), nil
	case datatypes.Date:
		return truncateDate(time.Time(v)), nil
	}

	s := strings.TrimSpace(formatValue(value))
	if s == "" {
		if f.Required {
			return nil, errRequired()
		}
		return nil, nil
	}
	for _, layout := range DateInputFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, newValidationError(CodeInvalidDate, "Enter a valid date.")
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RelatedField accepts the id of a row in Table. Candidates are all rows of
// the table.
type RelatedField struct {
	BaseField
	Table  string
	Lookup RecordLookup
}

func (f *RelatedField) Clean(ctx context.Context, value any) (any, error) {
	id, ok := asID(value)
	if !ok {
		if f.Required {
			return nil, errRequired()
		}
		return nil, nil
	}
	if f.Lookup != nil {
		exists, err := f.Lookup.Exists(ctx, f.Table, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, newValidationError(CodeInvalidValue, "Select a valid choice. That choice is not one of the available choices.")
		}
	}
	return id, nil
}
