package forms

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/coopbilling/internal/cooperative/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestLookup(t *testing.T) *GormLookup {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Member{}))

	members := []*domain.Member{
		{Model: domain.Model{ID: 11}, Number: 1, BusinessName: "Acme Dairy", Address: "Route 5", Locality: "Villa Rica"},
		{Model: domain.Model{ID: 12}, Number: 2, BusinessName: "Bodega Norte", Address: "Main 10", Locality: "Villa Rica"},
		{Model: domain.Model{ID: 13}, Number: 3, BusinessName: "Acme Feeds", Address: "Route 7", Locality: "Colonia"},
	}
	require.NoError(t, db.Create(members).Error)
	return NewGormLookup(db)
}

func TestGormLookupLabel(t *testing.T) {
	lookup := newTestLookup(t)
	ctx := context.Background()

	label, err := lookup.Label(ctx, "members", "business_name", 12)
	require.NoError(t, err)
	assert.Equal(t, "Bodega Norte", label)

	_, err = lookup.Label(ctx, "members", "business_name", 99)
	assert.ErrorIs(t, err, ErrRelatedNotFound)
}

func TestGormLookupExists(t *testing.T) {
	lookup := newTestLookup(t)
	ctx := context.Background()

	ok, err := lookup.Exists(ctx, "members", 11)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = lookup.Exists(ctx, "members", 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGormLookupSearch(t *testing.T) {
	lookup := newTestLookup(t)

	got, err := lookup.Search(context.Background(), "members", "business_name", "acme", 10)
	require.NoError(t, err)
	assert.Equal(t, []Candidate{
		{ID: snowflake.ID(11), Label: "Acme Dairy"},
		{ID: snowflake.ID(13), Label: "Acme Feeds"},
	}, got)

	limited, err := lookup.Search(context.Background(), "members", "business_name", "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestAutocompleteAgainstDatabase(t *testing.T) {
	lookup := newTestLookup(t)
	w := NewAutocompleteWidget("members", lookup, map[string]string{"members": "business_name"})

	got, err := w.Decompress(context.Background(), snowflake.ID(13))
	require.NoError(t, err)
	assert.Equal(t, []any{"Acme Feeds", int64(13)}, got)
}
