package forms

import (
	"testing"

	"github.com/smallbiznis/coopbilling/internal/cooperative/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(Definition{Name: "tariffs", Title: "Tariff", Meta: Meta{Model: &domain.Tariff{}, Fields: []string{"name"}}}))
	require.NoError(t, r.Register(Definition{Name: "members", Title: "Member", Meta: memberMeta()}))

	err := r.Register(Definition{Name: "tariffs", Meta: Meta{Model: &domain.Tariff{}}})
	assert.ErrorIs(t, err, ErrFormExists)

	err = r.Register(Definition{Name: "items", Meta: Meta{Model: &domain.Item{}, Fields: []string{"price"}}})
	assert.ErrorIs(t, err, ErrUnknownField)

	def, err := r.Get("members")
	require.NoError(t, err)
	assert.Equal(t, "Member", def.Title)

	_, err = r.Get("invoices")
	assert.ErrorIs(t, err, ErrFormNotFound)

	names := []string{}
	for _, d := range r.List() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"members", "tariffs"}, names)
}
