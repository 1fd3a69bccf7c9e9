package domain

import "errors"

var (
	ErrInvalidTierRange     = errors.New("invalid_tier_range")
	ErrInvalidReadings      = errors.New("invalid_readings")
	ErrMeterNumberUnchanged = errors.New("meter_number_unchanged")
)
