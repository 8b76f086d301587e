/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-memory DataStore, used for static widget
// configurations and in tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/storagemodels"
)

// DataStore is an in-memory implementation of datastore.DataStore[T].
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]T
	getKeyFunc  func(entity T) string
	queryFunc   func(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)
	putError    error
	deleteError error
	now         func() time.Time
}

// New creates an empty DataStore. keyFunc extracts the key of an entity.
func New[T any](keyFunc func(T) string) *DataStore[T] {
	return &DataStore[T]{
		data:       make(map[string]T),
		getKeyFunc: keyFunc,
		now:        time.Now,
	}
}

// NewWidgetStore creates a widget store keyed by widget ID and seeded with widgets.
func NewWidgetStore(widgets ...storagemodels.Widget) (*DataStore[storagemodels.Widget], error) {
	ds := New(func(w storagemodels.Widget) string { return w.ID })
	for _, w := range widgets {
		if err := ds.Put(context.Background(), w); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// WithQueryFunc sets a custom query function
func (m *DataStore[T]) WithQueryFunc(f func(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)) *DataStore[T] {
	m.queryFunc = f
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// WithClock sets the time source used to stamp timestamped entities
func (m *DataStore[T]) WithClock(now func() time.Time) *DataStore[T] {
	m.now = now
	return m
}

// GetOne retrieves an entity by key
func (m *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}

	var zero T
	return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
}

// Put stores an entity
func (m *DataStore[T]) Put(ctx context.Context, entity T) error {
	if m.putError != nil {
		return m.putError
	}

	key := m.getKeyFunc(entity)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}

	if ts, ok := any(&entity).(storagemodels.Timestamped); ok {
		ts.Touch(m.now())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = entity
	return nil
}

// Query returns every stored entity ordered by key, as *T values, unless a
// custom query function is set. Params are ignored.
func (m *DataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		v := m.data[k]
		results = append(results, &v)
	}
	return results, nil
}

// List returns every stored entity ordered by key.
func (m *DataStore[T]) List(ctx context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]T, 0, len(keys))
	for _, k := range keys {
		results = append(results, m.data[k])
	}
	return results, nil
}

// Delete removes an entity by key
func (m *DataStore[T]) Delete(ctx context.Context, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		var zero T
		return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}
	delete(m.data, key)
	return nil
}

// Count returns the number of stored entities
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
