package forms

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/coopbilling/pkg/db/option"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Candidate is one related row offered by an autocomplete widget.
type Candidate struct {
	ID    snowflake.ID `json:"id"`
	Label string       `json:"label"`
}

// RecordLookup reads related rows for foreign-key fields. Every call covers
// the full related table; there is no per-form filtering.
type RecordLookup interface {
	// Label returns the value of column for the row with the given id, or
	// ErrRelatedNotFound.
	Label(ctx context.Context, table, column string, id int64) (string, error)
	Exists(ctx context.Context, table string, id int64) (bool, error)
	Search(ctx context.Context, table, column, term string, limit int) ([]Candidate, error)
}

// GormLookup implements RecordLookup over a gorm connection.
type GormLookup struct {
	db *gorm.DB
}

func NewGormLookup(db *gorm.DB) *GormLookup {
	return &GormLookup{db: db}
}

func (l *GormLookup) Label(ctx context.Context, table, column string, id int64) (string, error) {
	var labels []string
	err := l.db.WithContext(ctx).
		Table(table).
		Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).
		Limit(1).
		Pluck(column, &labels).Error
	if err != nil {
		return "", fmt.Errorf("forms: lookup %s.%s: %w", table, column, err)
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("%w: %s id %d", ErrRelatedNotFound, table, id)
	}
	return labels[0], nil
}

func (l *GormLookup) Exists(ctx context.Context, table string, id int64) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Table(table).
		Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("forms: lookup %s: %w", table, err)
	}
	return count > 0, nil
}

func (l *GormLookup) Search(ctx context.Context, table, column, term string, limit int) ([]Candidate, error) {
	stmt := l.db.WithContext(ctx).
		Table(table).
		Select("id, ? AS label", clause.Column{Name: column})

	for _, opt := range []option.QueryOption{
		option.WithContains(column, term),
		option.WithOrder(column, false),
		option.WithLimit(limit),
	} {
		stmt = opt.Apply(stmt)
	}

	var out []Candidate
	if err := stmt.Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("forms: search %s.%s: %w", table, column, err)
	}
	return out, nil
}
