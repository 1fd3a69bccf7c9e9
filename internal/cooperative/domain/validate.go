package domain

// ValidateTierRange checks that a tier covers a non-empty consumption band.
func ValidateTierRange(from, to int64) error {
	if from < 0 || to <= from {
		return ErrInvalidTierRange
	}
	return nil
}

// ValidateMeterReplacement checks the swap actually changes the meter.
func ValidateMeterReplacement(oldNumber, newNumber string, finalReading, initialReading int64) error {
	if oldNumber == newNumber {
		return ErrMeterNumberUnchanged
	}
	if finalReading < 0 || initialReading < 0 {
		return ErrInvalidReadings
	}
	return nil
}

// All returns one zero value of every record type, in registration order.
func All() []Record {
	return []Record{
		&Member{},
		&Property{},
		&MeterReplacement{},
		&Tariff{},
		&TariffTier{},
		&Item{},
		&BillingPeriod{},
		&Invoice{},
	}
}
