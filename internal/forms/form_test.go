package forms

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/smallbiznis/coopbilling/internal/cooperative/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberMeta() Meta {
	return Meta{
		Model:  &domain.Member{},
		Fields: []string{"number", "business_name", "address", "locality", "phone"},
	}
}

func TestNewRejectsUnknownField(t *testing.T) {
	_, err := New(Meta{Model: &domain.Tariff{}, Fields: []string{"name", "colour"}}, testCustomizer(nil).FormField)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestNewKeepsFieldOrder(t *testing.T) {
	form, err := New(Meta{Model: &domain.TariffTier{}, Fields: []string{"rate", "tariff_id"}}, testCustomizer(nil).FormField)
	require.NoError(t, err)
	assert.Equal(t, []string{"rate", "tariff_id"}, form.Names())

	all, err := New(Meta{Model: &domain.Tariff{}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, all.Names())
}

func TestUnboundFormIsNotValid(t *testing.T) {
	form, err := New(memberMeta(), testCustomizer(nil).FormField)
	require.NoError(t, err)

	valid, err := form.IsValid(context.Background())
	require.NoError(t, err)
	assert.False(t, valid)
	assert.False(t, form.IsBound())
}

func TestBoundFormCleansData(t *testing.T) {
	form, err := New(memberMeta(), testCustomizer(nil).FormField)
	require.NoError(t, err)

	form.Bind(url.Values{
		"number":        {"17"},
		"business_name": {" Acme Dairy "},
		"address":       {"Route 5 km 3"},
		"locality":      {"Villa Rica"},
		"phone":         {""},
	})

	valid, err := form.IsValid(context.Background())
	require.NoError(t, err)
	require.True(t, valid, "errors: %v", form.Errors())

	want := map[string]any{
		"number":        int64(17),
		"business_name": "Acme Dairy",
		"address":       "Route 5 km 3",
		"locality":      "Villa Rica",
		"phone":         "",
	}
	if diff := cmp.Diff(want, form.CleanedData()); diff != "" {
		t.Fatalf("cleaned data mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundFormCollectsFieldErrors(t *testing.T) {
	form, err := New(memberMeta(), testCustomizer(nil).FormField)
	require.NoError(t, err)

	form.Bind(url.Values{"number": {"seventeen"}, "address": {"x"}, "locality": {"y"}})

	valid, err := form.IsValid(context.Background())
	require.NoError(t, err)
	assert.False(t, valid)

	want := map[string][]string{
		"number":        {"Enter a whole number."},
		"business_name": {"This field is required."},
	}
	if diff := cmp.Diff(want, form.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	assert.NotContains(t, form.CleanedData(), "number")
}

func TestCleanHookAttachesErrors(t *testing.T) {
	meta := Meta{
		Model:  &domain.TariffTier{},
		Fields: []string{"from_kwh", "to_kwh", "rate"},
		Clean: func(_ context.Context, data map[string]any) error {
			if data["to_kwh"].(int64) <= data["from_kwh"].(int64) {
				return NewFieldError("to_kwh", CodeInvalid, "Upper bound must exceed lower bound.")
			}
			return NewFormError(CodeInvalid, "Tier overlaps another tier.")
		},
	}
	form, err := New(meta, testCustomizer(nil).FormField)
	require.NoError(t, err)

	form.Bind(url.Values{"from_kwh": {"100"}, "to_kwh": {"50"}, "rate": {"1.5"}})
	valid, err := form.IsValid(context.Background())
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, []string{"Upper bound must exceed lower bound."}, form.Errors()["to_kwh"])

	form.Bind(url.Values{"from_kwh": {"0"}, "to_kwh": {"50"}, "rate": {"1.5"}})
	valid, err = form.IsValid(context.Background())
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, []string{"Tier overlaps another tier."}, form.NonFieldErrors())
}

func TestCleanHookFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	meta := Meta{
		Model: &domain.Tariff{},
		Clean: func(context.Context, map[string]any) error { return boom },
	}
	form, err := New(meta, testCustomizer(nil).FormField)
	require.NoError(t, err)

	_, err = form.Bind(url.Values{"name": {"Residential"}}).IsValid(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRelatedAndDateFieldsValidate(t *testing.T) {
	lookup := newFakeLookup()
	lookup.add("properties", 5, map[string]string{"address": "Route 5"})
	meta := Meta{
		Model:  &domain.MeterReplacement{},
		Fields: []string{"property_id", "replaced_on"},
	}
	form, err := New(meta, testCustomizer(lookup).FormField)
	require.NoError(t, err)

	form.Bind(url.Values{
		"property_id_0":     {"Route 5"},
		"property_id_1":     {"5"},
		"replaced_on_year":  {"2024"},
		"replaced_on_month": {"4"},
		"replaced_on_day":   {"2"},
	})
	valid, err := form.IsValid(context.Background())
	require.NoError(t, err)
	require.True(t, valid, "errors: %v", form.Errors())

	data := form.CleanedData()
	assert.Equal(t, int64(5), data["property_id"])
	assert.Equal(t, time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), data["replaced_on"])
}

func TestSetInitialIgnoresUnknownKeys(t *testing.T) {
	form, err := New(Meta{Model: &domain.Tariff{}}, testCustomizer(nil).FormField)
	require.NoError(t, err)

	form.SetInitial(map[string]any{"name": "Rural", "colour": "crimson"})

	html, err := form.AsMDL(context.Background())
	require.NoError(t, err)
	assert.Contains(t, html, `value="Rural"`)
	assert.NotContains(t, html, "crimson")
}
