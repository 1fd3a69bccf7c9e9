package domain

// Member is a cooperative partner who owns one or more properties.
type Member struct {
	Model
	Number       int64   `gorm:"not null;uniqueIndex" json:"number" label:"Member number"`
	BusinessName string  `gorm:"size:100;not null" json:"business_name" label:"Business name" help:"Legal name as it appears on invoices."`
	Address      string  `gorm:"size:120;not null" json:"address" label:"Address"`
	Locality     string  `gorm:"size:60;not null" json:"locality" label:"Locality"`
	Phone        *string `gorm:"size:30" json:"phone,omitempty" label:"Phone"`
}

func (Member) TableName() string { return "members" }
