package cooperative

import (
	"context"
	"errors"

	"github.com/smallbiznis/coopbilling/internal/config"
	"github.com/smallbiznis/coopbilling/internal/cooperative/domain"
	"github.com/smallbiznis/coopbilling/internal/forms"
)

// DefaultFormsConfig names the column each related table shows in
// autocomplete widgets.
func DefaultFormsConfig() config.FormsConfig {
	return config.FormsConfig{
		DisplayFields: map[string]string{
			"members":         "business_name",
			"properties":      "address",
			"tariffs":         "name",
			"billing_periods": "number",
		},
		DateYears:         forms.DefaultDateYears,
		AutocompleteLimit: 20,
	}
}

// FormDefinitions lists the data-entry forms, one per editable record type.
func FormDefinitions() []forms.Definition {
	return []forms.Definition{
		{
			Name:  "members",
			Title: "Member",
			Meta: forms.Meta{
				Model:  &domain.Member{},
				Fields: []string{"number", "business_name", "address", "locality", "phone"},
			},
		},
		{
			Name:  "properties",
			Title: "Property",
			Meta: forms.Meta{
				Model: &domain.Property{},
				Fields: []string{
					"member_id", "number", "address", "vat_condition",
					"energy_meter_number", "water_charge", "tariff_id",
				},
			},
		},
		{
			Name:  "meter_replacements",
			Title: "Meter replacement",
			Meta: forms.Meta{
				Model: &domain.MeterReplacement{},
				Fields: []string{
					"property_id", "replaced_on", "old_meter_number",
					"new_meter_number", "final_reading", "initial_reading",
				},
				Clean: cleanMeterReplacement,
			},
		},
		{
			Name:  "tariffs",
			Title: "Tariff",
			Meta: forms.Meta{
				Model:  &domain.Tariff{},
				Fields: []string{"name"},
			},
		},
		{
			Name:  "tariff_tiers",
			Title: "Tariff tier",
			Meta: forms.Meta{
				Model:  &domain.TariffTier{},
				Fields: []string{"tariff_id", "from_kwh", "to_kwh", "rate"},
				Clean:  cleanTariffTier,
			},
		},
		{
			Name:  "items",
			Title: "Item",
			Meta: forms.Meta{
				Model:  &domain.Item{},
				Fields: []string{"name", "kind", "applies_to", "value"},
			},
		},
		{
			Name:  "billing_periods",
			Title: "Billing period",
			Meta: forms.Meta{
				Model:  &domain.BillingPeriod{},
				Fields: []string{"number", "issued_on"},
			},
		},
	}
}

// NewFormRegistry registers every form definition.
func NewFormRegistry() (*forms.Registry, error) {
	registry := forms.NewRegistry()
	for _, def := range FormDefinitions() {
		if err := registry.Register(def); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func cleanTariffTier(_ context.Context, data map[string]any) error {
	from, _ := data["from_kwh"].(int64)
	to, _ := data["to_kwh"].(int64)
	if err := domain.ValidateTierRange(from, to); err != nil {
		return forms.NewFieldError("to_kwh", forms.CodeInvalid, "Upper bound must be greater than the lower bound.")
	}
	return nil
}

func cleanMeterReplacement(_ context.Context, data map[string]any) error {
	oldNumber, _ := data["old_meter_number"].(string)
	newNumber, _ := data["new_meter_number"].(string)
	final, _ := data["final_reading"].(int64)
	initial, _ := data["initial_reading"].(int64)

	err := domain.ValidateMeterReplacement(oldNumber, newNumber, final, initial)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrMeterNumberUnchanged):
		return forms.NewFieldError("new_meter_number", forms.CodeInvalid, "The new meter number must differ from the old one.")
	case errors.Is(err, domain.ErrInvalidReadings):
		return forms.NewFormError(forms.CodeInvalid, "Meter readings cannot be negative.")
	default:
		return err
	}
}
