package domain

import "github.com/bwmarrin/snowflake"

type Tariff struct {
	Model
	Name string `gorm:"size:60;not null;uniqueIndex" json:"name" label:"Name"`
}

func (Tariff) TableName() string { return "tariffs" }

// TariffTier prices consumption between FromKWh and ToKWh.
type TariffTier struct {
	Model
	TariffID snowflake.ID `gorm:"not null;index" json:"tariff_id" label:"Tariff"`
	Tariff   *Tariff      `gorm:"foreignKey:TariffID" json:"-"`
	FromKWh  int64        `gorm:"column:from_kwh;not null" json:"from_kwh" label:"From (kWh)"`
	ToKWh    int64        `gorm:"column:to_kwh;not null" json:"to_kwh" label:"To (kWh)"`
	Rate     float64      `gorm:"precision:12;scale:4;not null" json:"rate" label:"Rate per kWh"`
}

func (TariffTier) TableName() string { return "tariff_tiers" }
