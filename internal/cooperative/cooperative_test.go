package cooperative

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/coopbilling/internal/console"
	"github.com/smallbiznis/coopbilling/internal/cooperative/domain"
	"github.com/smallbiznis/coopbilling/internal/forms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newTestSite(t *testing.T) *console.Site {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return console.NewSite(console.Params{DB: db, Log: zaptest.NewLogger(t), GenID: node})
}

func TestRegisterModelsRegistersEveryRecordOnce(t *testing.T) {
	site := newTestSite(t)
	require.NoError(t, RegisterModels(site))

	var names []string
	for _, info := range site.Models() {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{
		"billing_periods", "invoices", "items", "members",
		"meter_replacements", "properties", "tariff_tiers", "tariffs",
	}, names)

	for _, record := range domain.All() {
		assert.True(t, site.IsRegistered(record.TableName()), record.TableName())
	}

	err := RegisterModels(site)
	assert.ErrorIs(t, err, console.ErrAlreadyRegistered)
}

func TestFormRegistryHoldsEveryDefinition(t *testing.T) {
	registry, err := NewFormRegistry()
	require.NoError(t, err)
	assert.Len(t, registry.List(), len(FormDefinitions()))

	def, err := registry.Get("properties")
	require.NoError(t, err)
	assert.Equal(t, "Property", def.Title)
}

func TestDefaultFormsConfigCoversForeignKeys(t *testing.T) {
	cfg := DefaultFormsConfig()
	for _, def := range FormDefinitions() {
		fields, err := forms.Describe(def.Meta.Model)
		require.NoError(t, err)
		for _, f := range fields {
			if f.Kind() != forms.KindForeignKey {
				continue
			}
			assert.NotEmpty(t, cfg.DisplayFields[f.RelatedTable], "%s.%s", def.Name, f.Name)
		}
	}
}

func buildForm(t *testing.T, name string) *forms.Form {
	t.Helper()
	registry, err := NewFormRegistry()
	require.NoError(t, err)
	def, err := registry.Get(name)
	require.NoError(t, err)
	form, err := forms.New(def.Meta, forms.Customizer{}.FormField)
	require.NoError(t, err)
	return form
}

func TestTariffTierRejectsEmptyBand(t *testing.T) {
	form := buildForm(t, "tariff_tiers")
	form.Bind(url.Values{
		"tariff_id_1": {"5"},
		"from_kwh":    {"200"},
		"to_kwh":      {"100"},
		"rate":        {"0.25"},
	})

	valid, err := form.IsValid(context.Background())
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, []string{"Upper bound must be greater than the lower bound."}, form.Errors()["to_kwh"])
}

func TestMeterReplacementClean(t *testing.T) {
	cases := []struct {
		name    string
		data    map[string]any
		wantErr string
	}{
		{
			name: "valid",
			data: map[string]any{"old_meter_number": "A1", "new_meter_number": "B2", "final_reading": int64(10), "initial_reading": int64(0)},
		},
		{
			name:    "same meter",
			data:    map[string]any{"old_meter_number": "A1", "new_meter_number": "A1", "final_reading": int64(10), "initial_reading": int64(0)},
			wantErr: "new_meter_number: The new meter number must differ from the old one.",
		},
		{
			name:    "negative reading",
			data:    map[string]any{"old_meter_number": "A1", "new_meter_number": "B2", "final_reading": int64(-1), "initial_reading": int64(0)},
			wantErr: "Meter readings cannot be negative.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := cleanMeterReplacement(context.Background(), tc.data)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestDomainValidators(t *testing.T) {
	assert.NoError(t, domain.ValidateTierRange(0, 100))
	assert.ErrorIs(t, domain.ValidateTierRange(100, 100), domain.ErrInvalidTierRange)
	assert.ErrorIs(t, domain.ValidateTierRange(-1, 100), domain.ErrInvalidTierRange)
	assert.Len(t, domain.All(), 8)
}
