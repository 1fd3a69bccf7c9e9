package domain

import "github.com/bwmarrin/snowflake"

type Invoice struct {
	Model
	PropertyID      snowflake.ID   `gorm:"not null;index" json:"property_id" label:"Property"`
	Property        *Property      `gorm:"foreignKey:PropertyID" json:"-"`
	BillingPeriodID snowflake.ID   `gorm:"not null;index" json:"billing_period_id" label:"Billing period"`
	BillingPeriod   *BillingPeriod `gorm:"foreignKey:BillingPeriodID" json:"-"`
	Number          string         `gorm:"size:20;not null" json:"number" label:"Invoice number"`
	PreviousReading int64          `gorm:"not null" json:"previous_reading" label:"Previous reading"`
	CurrentReading  int64          `gorm:"not null" json:"current_reading" label:"Current reading"`
	Total           float64        `gorm:"precision:12;scale:2;not null" json:"total" label:"Total"`
	Paid            bool           `gorm:"not null;default:false" json:"paid" label:"Paid"`
}

func (Invoice) TableName() string { return "invoices" }
