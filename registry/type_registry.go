/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"

	"github.com/suparena/widgetfilter/errors"
)

// HydrateFunc builds an entity from a scanned row keyed by column name.
type HydrateFunc func(row map[string]any) (any, error)

var (
	typeRegistry = make(map[string]HydrateFunc)
	typeMu       sync.RWMutex
)

// RegisterType registers the hydrate function for an entity type.
// It panics if the type is already registered, to prevent accidental overrides.
func RegisterType(entityType string, fn HydrateFunc) {
	typeMu.Lock()
	defer typeMu.Unlock()

	if _, exists := typeRegistry[entityType]; exists {
		panic(fmt.Sprintf("type registry: entity type %q already registered", entityType))
	}
	typeRegistry[entityType] = fn
}

// GetHydrateFunc returns the registered hydrate function for the entity type.
func GetHydrateFunc(entityType string) (HydrateFunc, error) {
	typeMu.RLock()
	defer typeMu.RUnlock()

	fn, ok := typeRegistry[entityType]
	if !ok {
		return nil, errors.NewNotFoundError("hydrator", entityType)
	}
	return fn, nil
}

// Hydrate converts a row into an entity. Rows of unregistered types are
// returned as the generic map.
func Hydrate(entityType string, row map[string]any) (any, error) {
	fn, err := GetHydrateFunc(entityType)
	if err != nil {
		return row, nil
	}
	obj, err := fn(row)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate row for entity type %q: %w", entityType, err)
	}
	return obj, nil
}

// unregisterType is used by tests to keep the global registry clean.
func unregisterType(entityType string) {
	typeMu.Lock()
	defer typeMu.Unlock()
	delete(typeRegistry, entityType)
}
