package forms

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// ThemeInputClass is the CSS class every themed input carries.
const ThemeInputClass = "mdl-textfield__input"

// AutocompleteWidget presents a foreign key as a visible text input holding
// the related row's display value (<name>_0) and a hidden input holding its
// id (<name>_1). Only the hidden id is read back on submit.
type AutocompleteWidget struct {
	Table string
	Attrs Attrs

	lookup        RecordLookup
	displayFields map[string]string
	display       *Input
	hidden        *Input
}

// NewAutocompleteWidget builds the widget for table. displayFields maps a
// related table to the column whose value is shown in the text input; it is
// copied so later changes by the caller do not leak in.
func NewAutocompleteWidget(table string, lookup RecordLookup, displayFields map[string]string) *AutocompleteWidget {
	fields := make(map[string]string, len(displayFields))
	for k, v := range displayFields {
		fields[k] = v
	}
	return &AutocompleteWidget{
		Table:         table,
		lookup:        lookup,
		displayFields: fields,
		display: NewTextInput(Attrs{
			"class":             ThemeInputClass,
			"autocomplete":      "off",
			"data-autocomplete": table,
		}),
		hidden: NewHiddenInput(nil),
	}
}

// DisplayField returns the column shown for the widget's table.
func (w *AutocompleteWidget) DisplayField() (string, bool) {
	column, ok := w.displayFields[w.Table]
	return column, ok && column != ""
}

// Decompress turns a stored id into [label, id]. A missing id yields
// [nil, nil]; an id without a matching row yields ErrRelatedNotFound.
func (w *AutocompleteWidget) Decompress(ctx context.Context, value any) ([]any, error) {
	id, ok := asID(value)
	if !ok {
		return []any{nil, nil}, nil
	}
	column, ok := w.DisplayField()
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoDisplayField, w.Table)
	}
	if w.lookup == nil {
		return nil, fmt.Errorf("forms: no lookup for %s", w.Table)
	}
	label, err := w.lookup.Label(ctx, w.Table, column, id)
	if err != nil {
		return nil, err
	}
	return []any{label, id}, nil
}

// ValueFromValues coerces the hidden sub-value to an integer id. Anything
// missing or non-numeric yields nil; required-ness is left to the field.
func (w *AutocompleteWidget) ValueFromValues(data url.Values, name string) any {
	raw, ok := data[name+"_1"]
	if !ok || len(raw) == 0 {
		return nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw[0]), 10, 64)
	if err != nil {
		return nil
	}
	return id
}

// RawValue returns the submitted sub-values untouched.
func (w *AutocompleteWidget) RawValue(data url.Values, name string) any {
	return []any{data.Get(name + "_0"), data.Get(name + "_1")}
}

func (w *AutocompleteWidget) Render(ctx context.Context, name string, value any, attrs Attrs) (string, error) {
	values, ok := value.([]any)
	if !ok {
		var err error
		values, err = w.Decompress(ctx, value)
		if err != nil {
			return "", err
		}
	}
	for len(values) < 2 {
		values = append(values, nil)
	}

	final := w.Attrs.Merge(attrs)
	id := final.ID()

	text, err := w.display.Render(ctx, name+"_0", values[0], suffixID(final, id, "_0"))
	if err != nil {
		return "", err
	}
	hidden, err := w.hidden.Render(ctx, name+"_1", values[1], suffixID(nil, id, "_1"))
	if err != nil {
		return "", err
	}
	return text + hidden, nil
}

func (w *AutocompleteWidget) IDForLabel(id string) string {
	if id == "" {
		return ""
	}
	return id + "_0"
}

func (w *AutocompleteWidget) IsHidden() bool { return false }

// asID reports the id held by value; zero and nil mean "no id".
func asID(value any) (int64, bool) {
	var id int64
	switch v := value.(type) {
	case nil:
		return 0, false
	case int64:
		id = v
	case *int64:
		if v == nil {
			return 0, false
		}
		id = *v
	case int:
		id = int64(v)
	case snowflake.ID:
		id = int64(v)
	case *snowflake.ID:
		if v == nil {
			return 0, false
		}
		id = int64(*v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		id = parsed
	default:
		return 0, false
	}
	return id, id != 0
}
