package domain

const (
	ItemKindFixed      = "fixed"
	ItemKindPercentage = "percentage"
)

const (
	AppliesToEnergy = "energy"
	AppliesToWater  = "water"
	AppliesToTotal  = "total"
)

// Item is a billable concept added to every invoice.
type Item struct {
	Model
	Name      string  `gorm:"size:60;not null" json:"name" label:"Name"`
	Kind      string  `gorm:"size:20;not null" json:"kind" label:"Kind" choices:"fixed=Fixed amount;percentage=Percentage"`
	AppliesTo string  `gorm:"size:20;not null" json:"applies_to" label:"Applies to" choices:"energy=Energy;water=Water;total=Invoice total"`
	Value     float64 `gorm:"precision:12;scale:2;not null" json:"value" label:"Value"`
}

func (Item) TableName() string { return "items" }
