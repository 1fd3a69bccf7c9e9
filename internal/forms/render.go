package forms

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const mdlRow = `<div class="mdl-grid">
    <div class="mdl-cell">
        <div class="mdl-textfield mdl-js-textfield">
            %s
            %s
            <span class="individual_errors">%s</span>
        </div>
    </div>
    <div class="mdl-cell--8-col">
        %s
    </div>
</div>`

const (
	mdlErrorRow   = `<div class="form_errors">%s</div>`
	mdlHelpText   = `<p class="mdl-textfield mdl-js-textfield">%s</p>`
	mdlLabelClass = "mdl-textfield__label"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// sanitizeHelpText keeps simple inline markup in help text and drops the rest.
func sanitizeHelpText(raw string) string {
	helpPolicyOnce.Do(func() {
		helpPolicy = bluemonday.NewPolicy()
		helpPolicy.AllowElements("b", "strong", "i", "em", "code", "br", "small")
		helpPolicy.AllowStandardURLs()
		helpPolicy.AllowAttrs("href").OnElements("a")
		helpPolicy.RequireNoFollowOnLinks(true)
	})
	return strings.TrimSpace(helpPolicy.Sanitize(raw))
}

// AsMDL renders the form in the Material Design Lite grid: one two-column
// row per visible field holding the input, its label, inline errors and the
// help text. Form-wide errors come first; hidden inputs come last.
func (f *Form) AsMDL(ctx context.Context) (string, error) {
	rows := make([]string, 0, len(f.fields)+1)
	topErrors := append([]string(nil), f.nonField...)
	var hidden []string

	for _, bf := range f.fields {
		widgetHTML, err := f.renderWidget(ctx, bf)
		if err != nil {
			return "", fmt.Errorf("forms: render %s: %w", bf.name, err)
		}
		errs := f.errors[bf.name]
		base := bf.field.Base()

		if base.Widget.IsHidden() {
			for _, e := range errs {
				topErrors = append(topErrors, fmt.Sprintf("(Hidden field %s) %s", bf.name, e))
			}
			hidden = append(hidden, widgetHTML)
			continue
		}

		help := ""
		if text := sanitizeHelpText(base.HelpText); text != "" {
			help = fmt.Sprintf(mdlHelpText, text)
		}
		rows = append(rows, fmt.Sprintf(mdlRow, widgetHTML, f.labelTag(bf), joinErrors(errs), help))
	}

	if len(topErrors) > 0 {
		rows = append([]string{fmt.Sprintf(mdlErrorRow, joinErrors(topErrors))}, rows...)
	}
	rows = append(rows, hidden...)
	return strings.Join(rows, "\n"), nil
}

func (f *Form) renderWidget(ctx context.Context, bf boundField) (string, error) {
	widget := bf.field.Base().Widget
	return widget.Render(ctx, bf.name, f.value(bf), Attrs{"id": autoID(bf.name)})
}

// value is what the widget displays: the submission when bound, otherwise
// the form initial or the field initial.
func (f *Form) value(bf boundField) any {
	widget := bf.field.Base().Widget
	if f.bound {
		if raw, ok := widget.(RawValuer); ok {
			return raw.RawValue(f.data, bf.name)
		}
		return widget.ValueFromValues(f.data, bf.name)
	}
	if v, ok := f.initial[bf.name]; ok {
		return v
	}
	return bf.field.Base().Initial
}

func (f *Form) labelTag(bf boundField) string {
	base := bf.field.Base()
	if base.Label == "" {
		return ""
	}
	attrs := Attrs{"class": mdlLabelClass}
	if id := base.Widget.IDForLabel(autoID(bf.name)); id != "" {
		attrs["for"] = id
	}
	return "<label" + attrs.String() + ">" + html.EscapeString(base.Label) + "</label>"
}

func autoID(name string) string {
	return "id_" + name
}

func joinErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	escaped := make([]string, len(errs))
	for i, e := range errs {
		escaped[i] = html.EscapeString(e)
	}
	return strings.Join(escaped, "<br>")
}
