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

// DateLayout is the canonical date format exchanged with the widgets.
const DateLayout = "2006-01-02"

const emptyDateLabel = "---"

// SelectDateWidget renders a date as three drop-downs named
// <name>_year, <name>_month and <name>_day.
type SelectDateWidget struct {
	Attrs    Attrs
	Years    []int
	Required bool
}

// NewSelectDateWidget builds the widget offering the given years.
func NewSelectDateWidget(years []int, attrs Attrs) *SelectDateWidget {
	return &SelectDateWidget{Years: years, Attrs: attrs}
}

// YearRange returns n consecutive years starting at the year of from.
func YearRange(from time.Time, n int) []int {
	if n <= 0 {
		n = 1
	}
	years := make([]int, n)
	for i := range years {
		years[i] = from.Year() + i
	}
	return years
}

type dateParts struct {
	Year, Month, Day string
}

func (w *SelectDateWidget) Render(_ context.Context, name string, value any, attrs Attrs) (string, error) {
	parts := splitDate(value)
	final := w.Attrs.Merge(attrs)
	id := final.ID()

	years := make([]Choice, 0, len(w.Years)+1)
	seen := false
	for _, y := range w.Years {
		v := strconv.Itoa(y)
		seen = seen || v == parts.Year
		years = append(years, Choice{Value: v, Label: v})
	}
	if !seen && parts.Year != "" {
		years = append([]Choice{{Value: parts.Year, Label: parts.Year}}, years...)
	}

	months := make([]Choice, 12)
	for i := range months {
		months[i] = Choice{Value: strconv.Itoa(i + 1), Label: time.Month(i + 1).String()}
	}
	days := make([]Choice, 31)
	for i := range days {
		v := strconv.Itoa(i + 1)
		days[i] = Choice{Value: v, Label: v}
	}

	out := []string{
		w.renderSelect(name+"_year", suffixID(final, id, "_year"), years, parts.Year),
		w.renderSelect(name+"_month", suffixID(final, id, "_month"), months, parts.Month),
		w.renderSelect(name+"_day", suffixID(final, id, "_day"), days, parts.Day),
	}
	return strings.Join(out, "\n"), nil
}

func (w *SelectDateWidget) renderSelect(name string, attrs Attrs, choices []Choice, selected string) string {
	var b strings.Builder
	b.WriteString(`<select name="`)
	b.WriteString(html.EscapeString(name))
	b.WriteByte('"')
	b.WriteString(attrs.String())
	b.WriteString(">\n")
	if !w.Required {
		writeOption(&b, "", emptyDateLabel, selected == "")
	}
	for _, choice := range choices {
		writeOption(&b, choice.Value, choice.Label, choice.Value == selected)
	}
	b.WriteString("</select>")
	return b.String()
}

// ValueFromValues returns nil when all three parts are empty, an ISO date
// when they form a valid date, and the raw "y-m-d" text otherwise so that
// the date field reports it as invalid.
func (w *SelectDateWidget) ValueFromValues(data url.Values, name string) any {
	y := strings.TrimSpace(data.Get(name + "_year"))
	m := strings.TrimSpace(data.Get(name + "_month"))
	d := strings.TrimSpace(data.Get(name + "_day"))

	if y == "" && m == "" && d == "" {
		if raw, ok := data[name]; ok && len(raw) > 0 {
			return raw[0]
		}
		return nil
	}

	if y != "" && m != "" && d != "" {
		yi, errY := strconv.Atoi(y)
		mi, errM := strconv.Atoi(m)
		di, errD := strconv.Atoi(d)
		if errY == nil && errM == nil && errD == nil {
			t := time.Date(yi, time.Month(mi), di, 0, 0, 0, 0, time.UTC)
			if t.Year() == yi && int(t.Month()) == mi && t.Day() == di {
				return t.Format(DateLayout)
			}
		}
	}
	return fmt.Sprintf("%s-%s-%s", y, m, d)
}

func (w *SelectDateWidget) RawValue(data url.Values, name string) any {
	return dateParts{
		Year:  data.Get(name + "_year"),
		Month: data.Get(name + "_month"),
		Day:   data.Get(name + "_day"),
	}
}

func (w *SelectDateWidget) IDForLabel(id string) string {
	if id == "" {
		return ""
	}
	return id + "_year"
}

func (w *SelectDateWidget) IsHidden() bool { return false }

func splitDate(value any) dateParts {
	var t time.Time
	switch v := value.(type) {
	case dateParts:
		return v
	case time.Time:
		t = v
	case *time.Time:
		if v != nil {
			t = *v
		}
	case datatypes.Date:
		t = time.Time(v)
	case string:
		parsed, err := time.Parse(DateLayout, strings.TrimSpace(v))
		if err != nil {
			return dateParts{}
		}
		t = parsed
	}
	if t.IsZero() {
		return dateParts{}
	}
	return dateParts{
		Year:  strconv.Itoa(t.Year()),
		Month: strconv.Itoa(int(t.Month())),
		Day:   strconv.Itoa(t.Day()),
	}
}

func suffixID(attrs Attrs, id, suffix string) Attrs {
	if id == "" {
		return attrs
	}
	return attrs.Merge(Attrs{"id": id + suffix})
}
