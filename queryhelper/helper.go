/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package queryhelper builds the queries of listing widgets.
package queryhelper

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/orm"
	"github.com/suparena/widgetfilter/query"
	"github.com/suparena/widgetfilter/registry"
	"github.com/suparena/widgetfilter/storagemodels"
)

// Aliases used by listing queries. A listing's Query fragment refers to the
// sub-selected entity as "item".
const (
	MainAlias = "main_item"
	ItemAlias = "item"
)

// CurrentEntityParameter binds the identifier of the current entity.
const CurrentEntityParameter = "currentEntity"

// Identifiable is implemented by associated entities bound as parameters by identifier.
type Identifiable interface {
	Identifier() any
}

// CurrentEntity is the entity of the page being rendered.
type CurrentEntity struct {
	ID     any
	Fields map[string]any
}

// CurrentEntityFunc returns the current entity, or nil outside of entity pages.
type CurrentEntityFunc func() *CurrentEntity

// Option configures a Helper.
type Option func(*Helper)

// WithCurrentEntity enables binding of current-entity parameters.
func WithCurrentEntity(fn CurrentEntityFunc) Option {
	return func(h *Helper) {
		h.currentEntity = fn
	}
}

// WithLogger sets the helper's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Helper) {
		h.logger = logger
	}
}

// Helper builds listing queries.
type Helper struct {
	currentEntity CurrentEntityFunc
	logger        *slog.Logger
}

// New creates a Helper.
func New(opts ...Option) *Helper {
	h := &Helper{logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// GetQueryBuilder returns a builder selecting every entity of the listing's
// business entity type under MainAlias.
func (h *Helper) GetQueryBuilder(listing *storagemodels.Listing, session orm.Session) (*query.Builder, error) {
	if listing == nil {
		return nil, errors.NewValidationError("listing", "listing is required")
	}
	if listing.BusinessEntity == "" {
		return nil, errors.NewValidationError("businessEntity", "listing has no business entity")
	}

	repo, err := session.GetRepository(listing.BusinessEntity)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", listing.ID, err)
	}

	b := repo.CreateQueryBuilder(MainAlias)
	if listing.MaxResults > 0 {
		b.SetMaxResults(listing.MaxResults)
	}
	return b, nil
}

// BuildWithSubQuery narrows b to the entities selected by the listing's Query
// fragment, applies the listing ordering and binds current-entity parameters.
func (h *Helper) BuildWithSubQuery(listing *storagemodels.Listing, b *query.Builder, session orm.Session) (*query.Builder, error) {
	if listing == nil {
		return nil, errors.NewValidationError("listing", "listing is required")
	}
	meta := b.RootEntity()

	fragment := strings.TrimSpace(listing.Query)
	if fragment != "" {
		repo, err := session.GetRepository(meta.Type)
		if err != nil {
			return nil, err
		}
		sub, err := repo.CreateQueryBuilder(ItemAlias).Query()
		if err != nil {
			return nil, fmt.Errorf("failed to build listing sub-query: %w", err)
		}
		b.AndWhere(query.In(b.Identity(), sub.IdentitySQL()+" "+fragment))
	}

	orderBy, err := storagemodels.ParseOrderBy(listing.OrderBy)
	if err != nil {
		return nil, err
	}
	for _, o := range orderBy {
		if !registry.IsIdentifier(o.By) || (len(meta.Columns) > 0 && !meta.HasColumn(o.By)) {
			return nil, errors.NewValidationError("orderBy", fmt.Sprintf("unknown field %q", o.By))
		}
		b.AddOrderBy(b.Field(o.By), o.Order)
	}

	h.bindCurrentEntity(b, fragment)
	return b, nil
}

func (h *Helper) bindCurrentEntity(b *query.Builder, fragment string) {
	if h.currentEntity == nil || fragment == "" {
		return
	}
	current := h.currentEntity()
	if current == nil {
		return
	}

	names := make([]string, 0, len(current.Fields))
	for name := range current.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !references(fragment, name) {
			continue
		}
		value := current.Fields[name]
		if id, ok := value.(Identifiable); ok {
			value = id.Identifier()
		}
		b.SetParameter(name, value)
	}
	if references(fragment, CurrentEntityParameter) {
		b.SetParameter(CurrentEntityParameter, current.ID)
	}
	h.logger.Debug("bound current entity parameters", slog.Any("parameters", b.Parameters().Names()))
}

// references reports whether fragment uses the :name placeholder.
func references(fragment, name string) bool {
	re, err := regexp.Compile(`:` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(fragment)
}
