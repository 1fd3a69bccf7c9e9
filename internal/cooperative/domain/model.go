package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Model carries the columns every record shares.
type Model struct {
	ID        snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

func (m *Model) GetID() snowflake.ID {
	return m.ID
}

// AssignID sets the id once; an existing id is kept.
func (m *Model) AssignID(id snowflake.ID) {
	if m.ID == 0 {
		m.ID = id
	}
}

// Record is implemented by every persisted type of this package.
type Record interface {
	GetID() snowflake.ID
	AssignID(id snowflake.ID)
	TableName() string
}
