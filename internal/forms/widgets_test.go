package forms

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestAttrsString(t *testing.T) {
	attrs := Attrs{"id": "id_x", "required": true, "disabled": false, "title": `a "b"`, "skip": nil}
	assert.Equal(t, ` id="id_x" required title="a &#34;b&#34;"`, attrs.String())
	assert.Empty(t, Attrs{}.String())
}

func TestInputRender(t *testing.T) {
	w := NewTextInput(Attrs{"class": ThemeInputClass})

	got, err := w.Render(context.Background(), "address", "Main St <1>", Attrs{"id": "id_address"})
	require.NoError(t, err)
	assert.Equal(t, `<input type="text" name="address" value="Main St &lt;1&gt;" class="mdl-textfield__input" id="id_address">`, got)
}

func TestSelectRenderMarksSelected(t *testing.T) {
	w := NewSelect([]Choice{{Value: "a", Label: "Alpha"}, {Value: "b", Label: "Beta"}}, Attrs{"style": ChoiceStyle})

	got, err := w.Render(context.Background(), "kind", "b", Attrs{"id": "id_kind"})
	require.NoError(t, err)

	want := "<select name=\"kind\" id=\"id_kind\" style=\"width: 100%;\">\n" +
		"<option value=\"a\">Alpha</option>\n" +
		"<option value=\"b\" selected>Beta</option>\n" +
		"</select>"
	assert.Equal(t, want, got)
}

func TestCheckboxValueFromValues(t *testing.T) {
	w := NewCheckboxInput(nil)
	assert.Equal(t, false, w.ValueFromValues(url.Values{}, "paid"))
	assert.Equal(t, true, w.ValueFromValues(url.Values{"paid": {"on"}}, "paid"))
	assert.Equal(t, false, w.ValueFromValues(url.Values{"paid": {"false"}}, "paid"))
}

func TestFormatValue(t *testing.T) {
	day := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-09", formatValue(day))
	assert.Equal(t, "2024-03-09", formatValue(datatypes.Date(day)))
	assert.Equal(t, "", formatValue(time.Time{}))
	assert.Equal(t, "12.5", formatValue(12.5))
	var missing *string
	assert.Equal(t, "", formatValue(missing))
}

func TestSelectDateRender(t *testing.T) {
	w := NewSelectDateWidget([]int{2024, 2025}, nil)
	w.Required = true

	got, err := w.Render(context.Background(), "issued_on", time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), Attrs{"id": "id_issued_on"})
	require.NoError(t, err)

	assert.Contains(t, got, `<select name="issued_on_year" id="id_issued_on_year">`)
	assert.Contains(t, got, `<option value="2024" selected>2024</option>`)
	assert.Contains(t, got, `<select name="issued_on_month" id="id_issued_on_month">`)
	assert.Contains(t, got, `<option value="3" selected>March</option>`)
	assert.Contains(t, got, `<option value="9" selected>9</option>`)
	assert.NotContains(t, got, emptyDateLabel)
	assert.Equal(t, "id_issued_on_year", w.IDForLabel("id_issued_on"))
}

func TestSelectDateRenderKeepsOutOfRangeYear(t *testing.T) {
	w := NewSelectDateWidget([]int{2024, 2025}, nil)

	got, err := w.Render(context.Background(), "replaced_on", "2019-07-01", nil)
	require.NoError(t, err)

	assert.Contains(t, got, `<option value="2019" selected>2019</option>`)
	assert.Contains(t, got, `<option value="">`+emptyDateLabel+`</option>`)
}

func TestSelectDateValueFromValues(t *testing.T) {
	w := NewSelectDateWidget(nil, nil)

	cases := []struct {
		name string
		data url.Values
		want any
	}{
		{name: "valid", data: url.Values{"d_year": {"2024"}, "d_month": {"3"}, "d_day": {"9"}}, want: "2024-03-09"},
		{name: "impossible day", data: url.Values{"d_year": {"2024"}, "d_month": {"2"}, "d_day": {"30"}}, want: "2024-2-30"},
		{name: "partial", data: url.Values{"d_year": {"2024"}}, want: "2024--"},
		{name: "empty", data: url.Values{}, want: nil},
		{name: "single input fallback", data: url.Values{"d": {"2024-03-09"}}, want: "2024-03-09"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, w.ValueFromValues(tc.data, "d"))
		})
	}
}

func TestYearRange(t *testing.T) {
	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []int{2024, 2025, 2026}, YearRange(from, 3))
	assert.Equal(t, []int{2024}, YearRange(from, 0))
}

func TestFieldClean(t *testing.T) {
	ctx := context.Background()

	char := &CharField{BaseField: BaseField{Required: true}, MaxLength: 3}
	_, err := char.Clean(ctx, "  ")
	assert.Equal(t, "This field is required.", err.(*ValidationError).Message)
	_, err = char.Clean(ctx, "abcd")
	assert.Equal(t, "Ensure this value has at most 3 characters (it has 4).", err.(*ValidationError).Message)
	v, err := char.Clean(ctx, " ab ")
	require.NoError(t, err)
	assert.Equal(t, "ab", v)

	integer := &IntegerField{}
	_, err = integer.Clean(ctx, "1,000")
	assert.Equal(t, "Enter a whole number.", err.(*ValidationError).Message)
	v, err = integer.Clean(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, v)

	date := &DateField{BaseField: BaseField{Required: true}}
	_, err = date.Clean(ctx, "2024-2-30")
	assert.Equal(t, "Enter a valid date.", err.(*ValidationError).Message)
	v, err = date.Clean(ctx, "2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), v)

	choice := &ChoiceField{Choices: []Choice{{Value: "a", Label: "A"}}}
	_, err = choice.Clean(ctx, "z")
	assert.Equal(t, "Select a valid choice. z is not one of the available choices.", err.(*ValidationError).Message)
}

func TestRelatedFieldClean(t *testing.T) {
	lookup := newFakeLookup()
	lookup.add("members", 42, map[string]string{"business_name": "Acme"})
	field := &RelatedField{BaseField: BaseField{Required: true}, Table: "members", Lookup: lookup}
	ctx := context.Background()

	v, err := field.Clean(ctx, int64(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = field.Clean(ctx, int64(43))
	assert.Equal(t, CodeInvalidValue, err.(*ValidationError).Code)

	_, err = field.Clean(ctx, nil)
	assert.Equal(t, CodeRequired, err.(*ValidationError).Code)
}
