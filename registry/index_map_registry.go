/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"strings"
	"sync"

	"github.com/suparena/widgetfilter/errors"
)

// IndexMap holds DynamoDB key templates (PK, SK, GSI keys) for a persisted type.
// Templates use {Field} macros, e.g. "WIDGET#{ID}".
type IndexMap map[string]string

var (
	indexMapRegistry = make(map[reflect.Type]IndexMap)
	mu               sync.RWMutex
)

// RegisterIndexMap associates a Go type T with a DynamoDB index map.
// PK and SK templates are required.
func RegisterIndexMap[T any](idxMap IndexMap) error {
	for _, k := range []string{"PK", "SK"} {
		if strings.TrimSpace(idxMap[k]) == "" {
			return errors.NewValidationError(k, "index map requires a "+k+" template")
		}
	}

	var zero T
	t := reflect.TypeOf(zero)

	mu.Lock()
	defer mu.Unlock()
	indexMapRegistry[t] = idxMap
	return nil
}

// GetIndexMap retrieves the index map for type T, if any.
func GetIndexMap[T any]() (IndexMap, bool) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.RLock()
	defer mu.RUnlock()
	m, ok := indexMapRegistry[t]
	return m, ok
}
