/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/widgetfilter/storagemodels"
)

// DataStore persists entities of type T, such as widgets.
type DataStore[T any] interface {
	// GetOne returns the entity stored under key or a NotFoundError.
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)

	Delete(ctx context.Context, key string) error
}

// Lister is implemented by stores that can enumerate every stored entity.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}
