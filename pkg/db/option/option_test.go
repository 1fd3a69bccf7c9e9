package option

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type tariff struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tariff{}))
	require.NoError(t, db.Create([]*tariff{
		{ID: 1, Name: "Solar 100%"},
		{ID: 2, Name: "Rural_Night"},
		{ID: 3, Name: "RuralXNight"},
		{ID: 4, Name: "Residential!"},
	}).Error)
	return db
}

func names(t *testing.T, db *gorm.DB, opts ...QueryOption) []string {
	t.Helper()
	stmt := db.Model(&tariff{})
	for _, opt := range append(opts, WithOrder("id", false)) {
		stmt = opt.Apply(stmt)
	}
	var out []string
	require.NoError(t, stmt.Pluck("name", &out).Error)
	return out
}

func TestWithContainsIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)

	assert.Equal(t, []string{"Rural_Night", "RuralXNight"}, names(t, db, WithContains("name", "RURAL")))
	assert.Len(t, names(t, db, WithContains("name", "")), 4)
}

func TestWithContainsMatchesWildcardsLiterally(t *testing.T) {
	db := newTestDB(t)

	assert.Equal(t, []string{"Solar 100%"}, names(t, db, WithContains("name", "%")))
	assert.Equal(t, []string{"Rural_Night"}, names(t, db, WithContains("name", "l_n")))
	assert.Equal(t, []string{"Residential!"}, names(t, db, WithContains("name", "!")))
}

func TestWithIDAfterAndLimit(t *testing.T) {
	db := newTestDB(t)

	assert.Equal(t, []string{"Rural_Night", "RuralXNight"}, names(t, db, WithIDAfter(1), WithLimit(2)))
	assert.Len(t, names(t, db, WithIDAfter(0), WithLimit(0)), 4)
}
