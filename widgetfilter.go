/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package widgetfilter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/suparena/widgetfilter/config"
	"github.com/suparena/widgetfilter/datastore"
	"github.com/suparena/widgetfilter/datastore/ddb"
	"github.com/suparena/widgetfilter/datastore/memory"
	"github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/filter"
	"github.com/suparena/widgetfilter/orm"
	"github.com/suparena/widgetfilter/queryhelper"
	"github.com/suparena/widgetfilter/storagemodels"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger passed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithWidgetStore replaces the widget store selected by the configuration.
func WithWidgetStore(ds datastore.DataStore[storagemodels.Widget]) Option {
	return func(s *Service) {
		s.widgets = ds
	}
}

// WithCurrentEntity sets the provider of the entity of the page being rendered.
func WithCurrentEntity(fn queryhelper.CurrentEntityFunc) Option {
	return func(s *Service) {
		s.currentEntity = fn
	}
}

// Service wires a SQL session, a widget store and a filter handler from a
// configuration.
type Service struct {
	session       *orm.SQLSession
	widgets       datastore.DataStore[storagemodels.Widget]
	handler       *filter.FormFieldQueryHandler
	currentEntity queryhelper.CurrentEntityFunc
	logger        *slog.Logger
}

// New opens the configured database, registers the configured entities and
// connects the widget store.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.NewValidationError("config", "configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	session, err := orm.Open(cfg.Database.Driver, cfg.Database.DSN, orm.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	for _, meta := range cfg.Entities {
		if err := session.RegisterEntity(meta); err != nil {
			session.Close()
			return nil, fmt.Errorf("failed to register entity %q: %w", meta.Type, err)
		}
	}
	s.session = session

	if s.widgets == nil {
		s.widgets, err = newWidgetStore(ctx, cfg.Widgets, s.logger)
		if err != nil {
			session.Close()
			return nil, err
		}
	}

	helperOpts := []queryhelper.Option{queryhelper.WithLogger(s.logger)}
	if s.currentEntity != nil {
		helperOpts = append(helperOpts, queryhelper.WithCurrentEntity(s.currentEntity))
	}
	s.handler = filter.NewFormFieldQueryHandler(
		queryhelper.New(helperOpts...),
		session,
		filter.WithWidgetStore(s.widgets),
		filter.WithLogger(s.logger),
	)

	s.logger.Info("widget filter service ready",
		slog.String("driver", cfg.Database.Driver),
		slog.String("widgets", cfg.Widgets.Backend),
		slog.Int("entities", len(cfg.Entities)),
	)
	return s, nil
}

func newWidgetStore(ctx context.Context, cfg config.WidgetsConfig, logger *slog.Logger) (datastore.DataStore[storagemodels.Widget], error) {
	switch cfg.Backend {
	case config.BackendDynamoDB:
		store, err := ddb.NewWidgetStore(ctx, ddb.Config{
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Region:    cfg.Region,
			TableName: cfg.Table,
			Endpoint:  cfg.Endpoint,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect widget store: %w", err)
		}
		return store, nil
	default:
		store, err := memory.NewWidgetStore(cfg.Static...)
		if err != nil {
			return nil, fmt.Errorf("invalid static widgets: %w", err)
		}
		return store, nil
	}
}

// Handler returns the filter form field handler.
func (s *Service) Handler() *filter.FormFieldQueryHandler {
	return s.handler
}

// Session returns the SQL session entities are read through.
func (s *Service) Session() *orm.SQLSession {
	return s.session
}

// Widgets returns the widget store.
func (s *Service) Widgets() datastore.DataStore[storagemodels.Widget] {
	return s.widgets
}

// ListWidgets returns every widget of the widget store.
func (s *Service) ListWidgets(ctx context.Context) ([]storagemodels.Widget, error) {
	lister, ok := s.widgets.(datastore.Lister[storagemodels.Widget])
	if !ok {
		return nil, errors.NewValidationError("widgets", fmt.Sprintf("widget store %T cannot list widgets", s.widgets))
	}
	return lister.List(ctx)
}

// Query returns the entities of entityType offered by the filter widget widgetID.
func (s *Service) Query(ctx context.Context, widgetID, entityType string) ([]any, error) {
	return s.handler.HandleByID(ctx, widgetID, entityType)
}

// Close releases the database connection.
func (s *Service) Close() error {
	if s.session == nil {
		return nil
	}
	return s.session.Close()
}
