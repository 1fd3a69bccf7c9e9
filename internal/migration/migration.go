package migration

import (
	"errors"
	"fmt"

	"github.com/smallbiznis/coopbilling/internal/cooperative/domain"
	"gorm.io/gorm"
)

// RunMigrations creates or extends the table of every cooperative record.
// gorm orders the tables so referenced ones are created first.
func RunMigrations(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}

	records := domain.All()
	models := make([]any, 0, len(records))
	for _, record := range records {
		models = append(models, record)
	}
	if err := conn.AutoMigrate(models...); err != nil {
		return fmt.Errorf("migrate cooperative records: %w", err)
	}
	return nil
}
