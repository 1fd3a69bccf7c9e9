package forms

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeLookup serves related rows from memory, keyed by table then id.
type fakeLookup struct {
	rows  map[string]map[int64]map[string]string
	calls int
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{rows: map[string]map[int64]map[string]string{}}
}

func (l *fakeLookup) add(table string, id int64, columns map[string]string) {
	if l.rows[table] == nil {
		l.rows[table] = map[int64]map[string]string{}
	}
	l.rows[table][id] = columns
}

func (l *fakeLookup) Label(_ context.Context, table, column string, id int64) (string, error) {
	l.calls++
	row, ok := l.rows[table][id]
	if !ok {
		return "", fmt.Errorf("%w: %s id %d", ErrRelatedNotFound, table, id)
	}
	return row[column], nil
}

func (l *fakeLookup) Exists(_ context.Context, table string, id int64) (bool, error) {
	_, ok := l.rows[table][id]
	return ok, nil
}

func (l *fakeLookup) Search(_ context.Context, table, column, term string, limit int) ([]Candidate, error) {
	return nil, nil
}

func fieldOf(t *testing.T, model any, name string) ModelField {
	t.Helper()
	fields, err := Describe(model)
	require.NoError(t, err)
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %s not described on %T", name, model)
	return ModelField{}
}
