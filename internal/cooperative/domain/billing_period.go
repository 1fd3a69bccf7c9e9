package domain

import "gorm.io/datatypes"

type BillingPeriod struct {
	Model
	Number   string         `gorm:"size:20;not null;uniqueIndex" json:"number" label:"Period number"`
	IssuedOn datatypes.Date `gorm:"not null" json:"issued_on" label:"Issued on"`
}

func (BillingPeriod) TableName() string { return "billing_periods" }
