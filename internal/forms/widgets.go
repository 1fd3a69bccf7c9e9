package forms

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Widget renders one form field and reads it back from submitted data.
type Widget interface {
	// Render produces the HTML for the field. attrs carries per-render
	// attributes such as the element id.
	Render(ctx context.Context, name string, value any, attrs Attrs) (string, error)
	// ValueFromValues extracts the field value from submitted data.
	ValueFromValues(data url.Values, name string) any
	// IDForLabel returns the id a label should point at.
	IDForLabel(id string) string
	IsHidden() bool
}

// RawValuer is implemented by widgets that redisplay submitted data from
// the raw sub-values rather than from the extracted value.
type RawValuer interface {
	RawValue(data url.Values, name string) any
}

// Input renders a single <input> element.
type Input struct {
	InputType string
	Attrs     Attrs
}

func NewTextInput(attrs Attrs) *Input   { return &Input{InputType: "text", Attrs: attrs} }
func NewNumberInput(attrs Attrs) *Input { return &Input{InputType: "number", Attrs: attrs} }
func NewHiddenInput(attrs Attrs) *Input { return &Input{InputType: "hidden", Attrs: attrs} }

func (w *Input) Render(_ context.Context, name string, value any, attrs Attrs) (string, error) {
	var b strings.Builder
	b.WriteString(`<input type="`)
	b.WriteString(html.EscapeString(w.InputType))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(name))
	b.WriteByte('"')
	if v := formatValue(value); v != "" {
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(v))
		b.WriteByte('"')
	}
	b.WriteString(w.Attrs.Merge(attrs).String())
	b.WriteByte('>')
	return b.String(), nil
}

func (w *Input) ValueFromValues(data url.Values, name string) any {
	if _, ok := data[name]; !ok {
		return nil
	}
	return data.Get(name)
}

func (w *Input) IDForLabel(id string) string { return id }

func (w *Input) IsHidden() bool { return w.InputType == "hidden" }

// Textarea renders a multi-line text box.
type Textarea struct {
	Attrs Attrs
}

func NewTextarea(attrs Attrs) *Textarea {
	return &Textarea{Attrs: Attrs{"cols": "40", "rows": "10"}.Merge(attrs)}
}

func (w *Textarea) Render(_ context.Context, name string, value any, attrs Attrs) (string, error) {
	return fmt.Sprintf(`<textarea name="%s"%s>%s%s</textarea>`,
		html.EscapeString(name),
		w.Attrs.Merge(attrs).String(),
		"\n",
		html.EscapeString(formatValue(value)),
	), nil
}

func (w *Textarea) ValueFromValues(data url.Values, name string) any {
	if _, ok := data[name]; !ok {
		return nil
	}
	return data.Get(name)
}

func (w *Textarea) IDForLabel(id string) string { return id }

func (w *Textarea) IsHidden() bool { return false }

// Select renders a single-choice drop-down.
type Select struct {
	Choices []Choice
	Attrs   Attrs
}

func NewSelect(choices []Choice, attrs Attrs) *Select {
	return &Select{Choices: choices, Attrs: attrs}
}

func (w *Select) Render(_ context.Context, name string, value any, attrs Attrs) (string, error) {
	selected := formatValue(value)

	var b strings.Builder
	b.WriteString(`<select name="`)
	b.WriteString(html.EscapeString(name))
	b.WriteByte('"')
	b.WriteString(w.Attrs.Merge(attrs).String())
	b.WriteString(">\n")
	for _, choice := range w.Choices {
		writeOption(&b, choice.Value, choice.Label, choice.Value == selected)
	}
	b.WriteString("</select>")
	return b.String(), nil
}

func (w *Select) ValueFromValues(data url.Values, name string) any {
	if _, ok := data[name]; !ok {
		return nil
	}
	return data.Get(name)
}

func (w *Select) IDForLabel(id string) string { return id }

func (w *Select) IsHidden() bool { return false }

func writeOption(b *strings.Builder, value, label string, selected bool) {
	b.WriteString(`<option value="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
	if selected {
		b.WriteString(" selected")
	}
	b.WriteByte('>')
	b.WriteString(html.EscapeString(label))
	b.WriteString("</option>\n")
}

// CheckboxInput renders a boolean toggle.
type CheckboxInput struct {
	Attrs Attrs
}

func NewCheckboxInput(attrs Attrs) *CheckboxInput {
	return &CheckboxInput{Attrs: attrs}
}

func (w *CheckboxInput) Render(_ context.Context, name string, value any, attrs Attrs) (string, error) {
	final := w.Attrs.Merge(attrs, Attrs{"checked": truthy(value)})
	return `<input type="checkbox" name="` + html.EscapeString(name) + `"` + final.String() + `>`, nil
}

// ValueFromValues reports false for an absent key; browsers omit unchecked boxes.
func (w *CheckboxInput) ValueFromValues(data url.Values, name string) any {
	if _, ok := data[name]; !ok {
		return false
	}
	return truthy(data.Get(name))
}

func (w *CheckboxInput) IDForLabel(id string) string { return id }

func (w *CheckboxInput) IsHidden() bool { return false }

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false", "0", "off":
			return false
		}
		return true
	default:
		return false
	}
}

// formatValue renders a field value the way it appears in an input.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case *int64:
		if v == nil {
			return ""
		}
		return strconv.FormatInt(*v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	case datatypes.Date:
		return formatValue(time.Time(v))
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
