package shop

import (
	"errors"
	"fmt"

	"github.com/pgEdge/pgedge-shopdata/internal/datagen"
)

// ErrEmptyPool is returned when a child table needs to sample a parent
// table that has no records.
var ErrEmptyPool = errors.New("empty parent pool")

// Index maps the keys of a parent table to its records. It is built once
// per parent table and handed to the generators of dependent tables, which
// sample keys from it and look up the parent's fields without rescanning.
type Index[T any] struct {
	name  string
	keys  []string
	byKey map[string]T
}

// NewIndex builds an index over records using key to extract each key.
// Key order follows record order.
func NewIndex[T any](name string, records []T, key func(T) string) *Index[T] {
	idx := &Index[T]{
		name:  name,
		keys:  make([]string, 0, len(records)),
		byKey: make(map[string]T, len(records)),
	}
	for _, r := range records {
		k := key(r)
		if _, dup := idx.byKey[k]; !dup {
			idx.keys = append(idx.keys, k)
		}
		idx.byKey[k] = r
	}
	return idx
}

// Len returns the number of distinct keys.
func (i *Index[T]) Len() int {
	return len(i.keys)
}

// Lookup returns the record for key.
func (i *Index[T]) Lookup(key string) (T, bool) {
	r, ok := i.byKey[key]
	return r, ok
}

// Pick returns a record chosen uniformly at random.
func (i *Index[T]) Pick(f *datagen.Faker) (T, error) {
	if len(i.keys) == 0 {
		var zero T
		return zero, fmt.Errorf("%s: %w", i.name, ErrEmptyPool)
	}
	return i.byKey[datagen.Choose(f, i.keys)], nil
}
