package option

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QueryOption mutates a query before it runs.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type QueryOptionFunc func(db *gorm.DB) *gorm.DB

func (f QueryOptionFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

func WithLimit(limit int) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

func WithOffset(offset int) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if offset <= 0 {
			return db
		}
		return db.Offset(offset)
	})
}

// WithOrder orders by a single column. Column names are quoted by gorm.
func WithOrder(column string, desc bool) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	})
}

// WithIDAfter keeps rows whose id is strictly greater than id.
func WithIDAfter(id int64) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if id <= 0 {
			return db
		}
		return db.Where(clause.Gt{Column: clause.Column{Name: "id"}, Value: id})
	})
}

// likeEscaper escapes LIKE wildcards with '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// WithContains filters column with a case-insensitive substring match.
// Wildcards in term match literally.
func WithContains(column, term string) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		return db.Where("LOWER(?) LIKE ? ESCAPE '!'", clause.Column{Name: column}, pattern)
	})
}
