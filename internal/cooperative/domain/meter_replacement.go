package domain

import (
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// MeterReplacement records the swap of an energy meter on a property.
type MeterReplacement struct {
	Model
	PropertyID     snowflake.ID   `gorm:"not null;index" json:"property_id" label:"Property"`
	Property       *Property      `gorm:"foreignKey:PropertyID" json:"-"`
	ReplacedOn     datatypes.Date `gorm:"not null" json:"replaced_on" label:"Replaced on"`
	OldMeterNumber string         `gorm:"size:20;not null" json:"old_meter_number" label:"Old meter number"`
	NewMeterNumber string         `gorm:"size:20;not null" json:"new_meter_number" label:"New meter number"`
	FinalReading   int64          `gorm:"not null" json:"final_reading" label:"Final reading" help:"Last reading of the removed meter, in kWh."`
	InitialReading int64          `gorm:"not null" json:"initial_reading" label:"Initial reading" help:"First reading of the installed meter, in kWh."`
}

func (MeterReplacement) TableName() string { return "meter_replacements" }
