/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/suparena/widgetfilter/datastore"
	"github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/orm"
	"github.com/suparena/widgetfilter/query"
	"github.com/suparena/widgetfilter/registry"
	"github.com/suparena/widgetfilter/storagemodels"
)

// QueryHelper builds the query of a listing.
type QueryHelper interface {
	GetQueryBuilder(listing *storagemodels.Listing, session orm.Session) (*query.Builder, error)
	BuildWithSubQuery(listing *storagemodels.Listing, b *query.Builder, session orm.Session) (*query.Builder, error)
}

// Option configures a FormFieldQueryHandler.
type Option func(*FormFieldQueryHandler)

// WithWidgetStore sets the store HandleByID loads filter widgets from.
func WithWidgetStore(ds datastore.DataStore[storagemodels.Widget]) Option {
	return func(h *FormFieldQueryHandler) {
		h.widgets = ds
	}
}

// WithLogger sets the handler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *FormFieldQueryHandler) {
		h.logger = logger
	}
}

// FormFieldQueryHandler fetches the entities a filter form field offers: the
// entities of a target type that the filtered listing would show.
type FormFieldQueryHandler struct {
	helper  QueryHelper
	session orm.Session
	widgets datastore.DataStore[storagemodels.Widget]
	logger  *slog.Logger
}

// NewFormFieldQueryHandler creates a handler over the given collaborators.
func NewFormFieldQueryHandler(helper QueryHelper, session orm.Session, opts ...Option) *FormFieldQueryHandler {
	h := &FormFieldQueryHandler{
		helper:  helper,
		session: session,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AliasFor returns the query alias of an entity type: the last segment of its
// namespaced name.
func AliasFor(entityType string) string {
	return registry.ShortName(entityType)
}

// Handle returns the entities of entityType contained in the listing query of
// the filter widget.
func (h *FormFieldQueryHandler) Handle(ctx context.Context, widget *storagemodels.Widget, entityType string) ([]any, error) {
	q, err := h.BuildQuery(ctx, widget, entityType)
	if err != nil {
		return nil, err
	}

	entities, err := h.session.Execute(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("filter widget %q: %w", widget.ID, err)
	}
	h.logger.DebugContext(ctx, "filter form field query",
		slog.String("widget", widget.ID),
		slog.String("entity", entityType),
		slog.Int("results", len(entities)),
	)
	return entities, nil
}

// HandleByID loads the filter widget from the widget store and calls Handle.
func (h *FormFieldQueryHandler) HandleByID(ctx context.Context, widgetID, entityType string) ([]any, error) {
	if h.widgets == nil {
		return nil, errors.NewValidationError("widgets", "handler has no widget store")
	}
	widget, err := h.widgets.GetOne(ctx, widgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load filter widget: %w", err)
	}
	if widget == nil {
		return nil, errors.NewNotFoundError("widget", widgetID)
	}
	return h.Handle(ctx, widget, entityType)
}

// SubQuery returns the listing query of the filter widget: the helper's base
// query, augmented with the listing's sub-query in query mode.
func (h *FormFieldQueryHandler) SubQuery(widget *storagemodels.Widget) (*query.Query, error) {
	if widget == nil {
		return nil, errors.NewValidationError("widget", "filter widget is required")
	}
	if widget.Kind != "" && widget.Kind != storagemodels.KindFilter {
		return nil, errors.NewValidationError("kind", fmt.Sprintf("widget %q is a %s widget", widget.ID, widget.Kind))
	}
	listing := widget.Listing
	if listing == nil {
		return nil, errors.NewValidationError("listing", fmt.Sprintf("filter widget %q has no listing", widget.ID))
	}
	if err := listing.ValidateMode(); err != nil {
		// any mode but query lists the base query
		h.logger.Warn("listing mode is not supported, using the base query",
			slog.String("widget", widget.ID),
			slog.String("mode", string(listing.Mode)),
		)
	}

	b, err := h.helper.GetQueryBuilder(listing, h.session)
	if err != nil {
		return nil, err
	}
	if listing.EffectiveMode() == storagemodels.ModeQuery {
		b, err = h.helper.BuildWithSubQuery(listing, b, h.session)
		if err != nil {
			return nil, err
		}
	}
	return b.Query()
}

// BuildQuery returns the query Handle executes, without running it.
func (h *FormFieldQueryHandler) BuildQuery(ctx context.Context, widget *storagemodels.Widget, entityType string) (*query.Query, error) {
	sub, err := h.SubQuery(widget)
	if err != nil {
		return nil, err
	}

	repo, err := h.session.GetRepository(entityType)
	if err != nil {
		return nil, err
	}
	alias := AliasFor(entityType)

	b := repo.CreateQueryBuilder(alias)
	b.AndWhere(query.In(b.Identity(), sub.IdentitySQL()))

	params, err := query.Merge(sub.Parameters(), b.Parameters())
	if err != nil {
		return nil, err
	}
	b.SetParameters(params)

	q, err := b.Query()
	if err != nil {
		return nil, err
	}
	h.logger.DebugContext(ctx, "built filter query",
		slog.String("alias", alias),
		slog.String("sql", q.SQL()),
		slog.Any("parameters", params.Names()),
	)
	return q, nil
}

// HandleAs is Handle with the results asserted to T. Results of another type
// are reported as an error.
func HandleAs[T any](ctx context.Context, h *FormFieldQueryHandler, widget *storagemodels.Widget, entityType string) ([]T, error) {
	entities, err := h.Handle(ctx, widget, entityType)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(entities))
	for _, e := range entities {
		v, ok := e.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("entity of type %T is not a %T", e, zero)
		}
		out = append(out, v)
	}
	return out, nil
}
