package forms

import (
	"strconv"

	"github.com/smallbiznis/coopbilling/internal/clock"
)

// ChoiceStyle makes choice drop-downs span the full grid cell.
const ChoiceStyle = "width: 100%;"

// DefaultDateYears is how many years the date drop-down offers.
const DefaultDateYears = 10

// Customizer picks the form field for each model column. It is the only
// place where field kinds are mapped to widgets.
type Customizer struct {
	Clock  clock.Clock
	Lookup RecordLookup
	// DisplayFields maps related tables to their autocomplete display column.
	DisplayFields map[string]string
	DateYears     int
}

// FormField returns the form field for f. Branches follow FieldKind order:
// choices, bounded text, integers, dates, foreign keys, then the column's
// default form field. It never fails.
func (c Customizer) FormField(f ModelField) Field {
	switch f.Kind() {
	case KindChoice:
		return &ChoiceField{
			BaseField: BaseField{
				Label:    "",
				HelpText: f.HelpText,
				Required: f.Required,
				Widget:   NewSelect(f.Choices, Attrs{"style": ChoiceStyle}),
			},
			Choices: f.Choices,
		}
	case KindText:
		attrs := Attrs{
			"class":     ThemeInputClass,
			"maxlength": strconv.Itoa(f.MaxLength),
		}.Merge(ValidationAttrs(f))
		return &CharField{
			BaseField: BaseField{
				Label:    f.Label,
				HelpText: f.HelpText,
				Required: f.Required,
				Widget:   NewTextInput(attrs),
			},
			MaxLength: f.MaxLength,
			MinLength: f.MinLength,
		}
	case KindInteger:
		field := &IntegerField{
			BaseField: BaseField{
				Label:    f.Label,
				HelpText: f.HelpText,
				Required: f.Required,
			},
		}
		attrs := Attrs{"class": ThemeInputClass}
		if f.NonNegative {
			zero := int64(0)
			field.MinValue = &zero
			attrs["min"] = "0"
		}
		field.Widget = NewNumberInput(attrs)
		return field
	case KindDate:
		today := clock.Today(c.clock())
		widget := NewSelectDateWidget(YearRange(today, c.dateYears()), nil)
		widget.Required = f.Required
		return &DateField{
			BaseField: BaseField{
				Label:    f.Label,
				HelpText: f.HelpText,
				Required: f.Required,
				Initial:  today,
				Widget:   widget,
			},
		}
	case KindForeignKey:
		return &RelatedField{
			BaseField: BaseField{
				Label:    f.Label,
				Required: f.Required,
				Widget:   NewAutocompleteWidget(f.RelatedTable, c.Lookup, c.DisplayFields),
			},
			Table:  f.RelatedTable,
			Lookup: c.Lookup,
		}
	default:
		return DefaultFormField(f, c.Lookup)
	}
}

func (c Customizer) clock() clock.Clock {
	if c.Clock == nil {
		return clock.SystemClock{}
	}
	return c.Clock
}

func (c Customizer) dateYears() int {
	if c.DateYears <= 0 {
		return DefaultDateYears
	}
	return c.DateYears
}

// blankChoice leads the options of an unthemed choice field.
var blankChoice = Choice{Value: "", Label: "---------"}

// DefaultFormField is the plain, unthemed form field for a column.
func DefaultFormField(f ModelField, lookup RecordLookup) Field {
	base := BaseField{
		Label:    f.Label,
		HelpText: f.HelpText,
		Required: f.Required,
	}

	if len(f.Choices) > 0 {
		base.Widget = NewSelect(append([]Choice{blankChoice}, f.Choices...), nil)
		return &ChoiceField{BaseField: base, Choices: f.Choices}
	}

	switch f.Type {
	case TypeText:
		if f.MaxLength > 0 {
			base.Widget = NewTextInput(Attrs{"maxlength": strconv.Itoa(f.MaxLength)})
		} else {
			base.Widget = NewTextarea(nil)
		}
		return &CharField{BaseField: base, MaxLength: f.MaxLength, MinLength: f.MinLength}
	case TypeInteger:
		field := &IntegerField{BaseField: base}
		attrs := Attrs{}
		if f.NonNegative {
			zero := int64(0)
			field.MinValue = &zero
			attrs["min"] = "0"
		}
		field.Widget = NewNumberInput(attrs)
		return field
	case TypeDecimal:
		base.Widget = NewNumberInput(Attrs{"step": "any"})
		return &FloatField{BaseField: base}
	case TypeBoolean:
		base.Required = false
		base.Widget = NewCheckboxInput(nil)
		return &BooleanField{BaseField: base}
	case TypeDate, TypeDateTime:
		base.Widget = NewTextInput(nil)
		return &DateField{BaseField: base}
	case TypeForeignKey:
		base.Widget = NewNumberInput(nil)
		return &RelatedField{BaseField: base, Table: f.RelatedTable, Lookup: lookup}
	default:
		base.Widget = NewTextInput(nil)
		return &CharField{BaseField: base}
	}
}

// ValidationAttrs returns the client-side validation hooks for a text column.
func ValidationAttrs(f ModelField) Attrs {
	switch {
	case f.MaxLength > 0 && f.MinLength > 0:
		return Attrs{
			"data-validation":        "length",
			"data-validation-length": strconv.Itoa(f.MinLength) + "-" + strconv.Itoa(f.MaxLength),
		}
	case f.MaxLength > 0:
		return Attrs{
			"data-validation":        "length",
			"data-validation-length": "max" + strconv.Itoa(f.MaxLength),
		}
	case f.Required:
		return Attrs{"data-validation": "required"}
	default:
		return Attrs{}
	}
}
