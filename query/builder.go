/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package query builds SELECT statements with named parameters.
package query

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/registry"
)

// Builder accumulates the parts of a SELECT over one root entity together with
// the named parameters its conditions reference. Conditions use ":name"
// placeholders; positional "?" arguments are rejected when the query is built.
type Builder struct {
	root    registry.EntityMetadata
	alias   string
	columns []string
	where   []squirrel.Sqlizer
	orderBy []string
	limit   uint64
	params  *Parameters
	err     error
}

// NewBuilder creates an empty builder. Call From before building.
func NewBuilder() *Builder {
	return &Builder{params: NewParameters()}
}

// From sets the root entity and its alias.
func (b *Builder) From(meta registry.EntityMetadata, alias string) *Builder {
	if b.err != nil {
		return b
	}
	if !registry.IsIdentifier(alias) {
		b.err = errors.NewValidationError("alias", fmt.Sprintf("invalid alias %q", alias))
		return b
	}
	b.root = meta
	b.alias = alias
	return b
}

// Select replaces the projected columns. Without columns the root alias is
// selected whole.
func (b *Builder) Select(columns ...string) *Builder {
	b.columns = append([]string(nil), columns...)
	return b
}

// AndWhere adds a condition. pred is a SQL string or a squirrel.Sqlizer.
func (b *Builder) AndWhere(pred any) *Builder {
	if b.err != nil {
		return b
	}
	switch p := pred.(type) {
	case string:
		b.where = append(b.where, squirrel.Expr(p))
	case squirrel.Sqlizer:
		b.where = append(b.where, p)
	default:
		b.err = errors.NewValidationError("where", fmt.Sprintf("unsupported predicate type %T", pred))
	}
	return b
}

// AddOrderBy appends an ordering expression. An empty order leaves the
// database default.
func (b *Builder) AddOrderBy(sort, order string) *Builder {
	expr := strings.TrimSpace(sort + " " + order)
	b.orderBy = append(b.orderBy, expr)
	return b
}

// SetMaxResults limits the number of rows; zero removes the limit.
func (b *Builder) SetMaxResults(n uint64) *Builder {
	b.limit = n
	return b
}

// SetParameter binds a named parameter.
func (b *Builder) SetParameter(name string, value any) *Builder {
	b.params.Set(name, value)
	return b
}

// SetParameters replaces all bound parameters.
func (b *Builder) SetParameters(params *Parameters) *Builder {
	if params == nil {
		params = NewParameters()
	}
	b.params = params.Clone()
	return b
}

// Parameters returns the bound parameters. The returned set is live.
func (b *Builder) Parameters() *Parameters {
	return b.params
}

// RootAlias returns the alias of the root entity.
func (b *Builder) RootAlias() string {
	return b.alias
}

// RootEntity returns the mapping of the root entity.
func (b *Builder) RootEntity() registry.EntityMetadata {
	return b.root
}

// Identity returns the qualified identifier column of the root entity.
func (b *Builder) Identity() string {
	return b.Field(b.root.Identifier)
}

// Field returns a column of the root entity qualified by its alias.
func (b *Builder) Field(column string) string {
	return QuoteIdent(b.alias) + "." + QuoteIdent(column)
}

// Query renders the builder into an immutable Query.
func (b *Builder) Query() (*Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.alias == "" || b.root.Table == "" {
		return nil, errors.NewValidationError("from", "query builder has no root entity")
	}

	columns := b.columns
	if len(columns) == 0 {
		columns = []string{QuoteIdent(b.alias) + ".*"}
	}
	sql, err := b.render(columns)
	if err != nil {
		return nil, err
	}
	identitySQL, err := b.render([]string{b.Identity()})
	if err != nil {
		return nil, err
	}

	return &Query{
		entityType:  b.root.Type,
		alias:       b.alias,
		sql:         sql,
		identitySQL: identitySQL,
		params:      b.params.Clone(),
	}, nil
}

func (b *Builder) render(columns []string) (string, error) {
	sb := squirrel.Select(columns...).
		From(QuoteIdent(b.root.Table) + " " + QuoteIdent(b.alias))
	for _, w := range b.where {
		sb = sb.Where(w)
	}
	if len(b.orderBy) > 0 {
		sb = sb.OrderBy(b.orderBy...)
	}
	if b.limit > 0 {
		sb = sb.Limit(b.limit)
	}

	sql, args, err := sb.ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to render query: %w", err)
	}
	if len(args) > 0 {
		return "", errors.NewValidationError("where", "positional arguments are not supported, bind named parameters instead")
	}
	return sql, nil
}

// Query is a rendered, immutable query.
type Query struct {
	entityType  string
	alias       string
	sql         string
	identitySQL string
	params      *Parameters
}

// NewQuery wraps already rendered SQL. Used by sessions and tests that do not go through a Builder.
func NewQuery(entityType, sql string, params *Parameters) *Query {
	if params == nil {
		params = NewParameters()
	}
	return &Query{entityType: entityType, sql: sql, identitySQL: sql, params: params.Clone()}
}

// EntityType returns the root entity type.
func (q *Query) EntityType() string {
	return q.entityType
}

// Alias returns the root alias.
func (q *Query) Alias() string {
	return q.alias
}

// SQL returns the full query text.
func (q *Query) SQL() string {
	return q.sql
}

// IdentitySQL returns the query projected onto the root identifier, the form
// used inside an IN (...) sub-query.
func (q *Query) IdentitySQL() string {
	return q.identitySQL
}

// Parameters returns a copy of the bound parameters.
func (q *Query) Parameters() *Parameters {
	return q.params.Clone()
}

// WithParameters returns a copy of q bound to params.
func (q *Query) WithParameters(params *Parameters) *Query {
	c := *q
	c.params = params.Clone()
	return &c
}
