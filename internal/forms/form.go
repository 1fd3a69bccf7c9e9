package forms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// FieldCallback builds the form field for one model column.
type FieldCallback func(ModelField) Field

// Meta names the model a form edits and the columns it exposes, in order.
// An empty Fields list exposes every editable column.
type Meta struct {
	Model  any
	Fields []string
	// Clean runs once every field has cleaned without error. Returning a
	// *ValidationError with Field set attaches the message to that field.
	Clean func(ctx context.Context, data map[string]any) error
}

type boundField struct {
	name  string
	model ModelField
	field Field
}

// Form is a model-bound form: unbound it renders initial values, bound to
// submitted data it validates and renders the submission back.
type Form struct {
	fields []boundField
	index  map[string]int
	clean  func(ctx context.Context, data map[string]any) error

	data    url.Values
	bound   bool
	initial map[string]any

	validated bool
	errors    map[string][]string
	nonField  []string
	cleaned   map[string]any
}

// New builds an unbound form for meta. callback is asked for every field;
// a nil result falls back to the column's default form field.
func New(meta Meta, callback FieldCallback) (*Form, error) {
	descriptors, err := Describe(meta.Model)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]ModelField, len(descriptors))
	for _, d := range descriptors {
		byName[d.Name] = d
	}

	selected := descriptors
	if len(meta.Fields) > 0 {
		selected = make([]ModelField, 0, len(meta.Fields))
		for _, name := range meta.Fields {
			d, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("%w %q on %T", ErrUnknownField, name, meta.Model)
			}
			selected = append(selected, d)
		}
	}

	form := &Form{
		index:   make(map[string]int, len(selected)),
		clean:   meta.Clean,
		initial: map[string]any{},
	}
	for _, d := range selected {
		var field Field
		if callback != nil {
			field = callback(d)
		}
		if field == nil {
			field = DefaultFormField(d, nil)
		}
		form.index[d.Name] = len(form.fields)
		form.fields = append(form.fields, boundField{name: d.Name, model: d, field: field})
	}
	return form, nil
}

// Bind attaches submitted data and clears any previous validation.
func (f *Form) Bind(data url.Values) *Form {
	f.data = data
	f.bound = true
	f.validated = false
	f.errors = nil
	f.nonField = nil
	f.cleaned = nil
	return f
}

// SetInitial sets the values shown by an unbound form, keyed by field name.
// Unknown keys are ignored.
func (f *Form) SetInitial(values map[string]any) *Form {
	for name, v := range values {
		if _, ok := f.index[name]; ok {
			f.initial[name] = v
		}
	}
	return f
}

func (f *Form) IsBound() bool { return f.bound }

// Names lists the field names in display order.
func (f *Form) Names() []string {
	out := make([]string, len(f.fields))
	for i, bf := range f.fields {
		out[i] = bf.name
	}
	return out
}

// Field returns the form field named name.
func (f *Form) Field(name string) (Field, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.fields[i].field, true
}

// IsValid validates bound data once and caches the outcome. An unbound form
// is never valid. The error is non-nil only when validation itself failed,
// for example on a lookup error.
func (f *Form) IsValid(ctx context.Context) (bool, error) {
	if !f.bound {
		return false, nil
	}
	if !f.validated {
		if err := f.fullClean(ctx); err != nil {
			return false, err
		}
		f.validated = true
	}
	return len(f.errors) == 0 && len(f.nonField) == 0, nil
}

func (f *Form) fullClean(ctx context.Context) error {
	f.errors = map[string][]string{}
	f.nonField = nil
	f.cleaned = map[string]any{}

	for _, bf := range f.fields {
		base := bf.field.Base()
		value := base.Widget.ValueFromValues(f.data, bf.name)
		cleaned, err := bf.field.Clean(ctx, value)
		if err != nil {
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				return fmt.Errorf("forms: clean %s: %w", bf.name, err)
			}
			f.AddError(bf.name, vErr.Message)
			continue
		}
		f.cleaned[bf.name] = cleaned
	}

	if f.clean == nil || len(f.errors) > 0 {
		return nil
	}
	if err := f.clean(ctx, f.cleaned); err != nil {
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			return fmt.Errorf("forms: clean: %w", err)
		}
		f.AddError(vErr.Field, vErr.Message)
	}
	return nil
}

// AddError records message against field, or against the whole form when
// field is empty or unknown. The field is dropped from the cleaned data.
func (f *Form) AddError(field, message string) {
	if f.errors == nil {
		f.errors = map[string][]string{}
	}
	if _, ok := f.index[field]; !ok {
		f.nonField = append(f.nonField, message)
		return
	}
	f.errors[field] = append(f.errors[field], message)
	delete(f.cleaned, field)
}

// Errors returns the field errors keyed by field name.
func (f *Form) Errors() map[string][]string {
	out := make(map[string][]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// NonFieldErrors returns errors that concern the form as a whole.
func (f *Form) NonFieldErrors() []string {
	return append([]string(nil), f.nonField...)
}

// CleanedData returns the converted values of the fields that validated.
func (f *Form) CleanedData() map[string]any {
	out := make(map[string]any, len(f.cleaned))
	for k, v := range f.cleaned {
		out[k] = v
	}
	return out
}
