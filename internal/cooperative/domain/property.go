package domain

import "github.com/bwmarrin/snowflake"

const (
	VATRegistered    = "registered"
	VATSimplified    = "simplified"
	VATExempt        = "exempt"
	VATFinalConsumer = "final_consumer"
)

const (
	WaterChargeNone    = "none"
	WaterChargeFixed   = "fixed"
	WaterChargeMetered = "metered"
)

// Property is a parcel supplied by the cooperative.
type Property struct {
	Model
	MemberID          snowflake.ID `gorm:"not null;index" json:"member_id" label:"Member"`
	Member            *Member      `gorm:"foreignKey:MemberID" json:"-"`
	Number            int64        `gorm:"not null" json:"number" label:"Property number"`
	Address           string       `gorm:"size:120;not null" json:"address" label:"Address"`
	VATCondition      string       `gorm:"size:20;not null" json:"vat_condition" label:"VAT condition" help:"Determines how taxes are itemized." choices:"registered=Registered taxpayer;simplified=Simplified regime;exempt=Exempt;final_consumer=Final consumer"`
	EnergyMeterNumber string       `gorm:"size:20;not null" json:"energy_meter_number" label:"Energy meter number"`
	WaterCharge       string       `gorm:"size:20;not null" json:"water_charge" label:"Water charge" choices:"none=No water charge;fixed=Fixed charge;metered=Metered"`
	TariffID          snowflake.ID `gorm:"not null;index" json:"tariff_id" label:"Tariff"`
	Tariff            *Tariff      `gorm:"foreignKey:TariffID" json:"-"`
}

func (Property) TableName() string { return "properties" }
