/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package orm executes entity queries through per-entity repositories.
package orm

import (
	"context"

	"github.com/suparena/widgetfilter/query"
	"github.com/suparena/widgetfilter/registry"
)

// Session resolves repositories per entity type and executes queries.
type Session interface {
	// CreateQueryBuilder returns an empty builder.
	CreateQueryBuilder() *query.Builder
	// GetRepository returns the repository registered for the entity type.
	GetRepository(entityType string) (Repository, error)
	// Execute runs q and returns the hydrated entities.
	Execute(ctx context.Context, q *query.Query) ([]any, error)
}

// Repository gives access to one entity type.
type Repository interface {
	EntityType() string
	Metadata() registry.EntityMetadata
	// CreateQueryBuilder returns a builder selecting the entity under alias.
	CreateQueryBuilder(alias string) *query.Builder
}

// EntityRepository is the default Repository backed by entity metadata.
type EntityRepository struct {
	meta registry.EntityMetadata
}

// NewEntityRepository validates meta and creates its repository.
func NewEntityRepository(meta registry.EntityMetadata) (*EntityRepository, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	return &EntityRepository{meta: meta}, nil
}

func (r *EntityRepository) EntityType() string {
	return r.meta.Type
}

func (r *EntityRepository) Metadata() registry.EntityMetadata {
	return r.meta
}

func (r *EntityRepository) CreateQueryBuilder(alias string) *query.Builder {
	return query.NewBuilder().From(r.meta, alias)
}
