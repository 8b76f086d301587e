/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package orm

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/query"
	"github.com/suparena/widgetfilter/registry"
)

// DefaultDriver is the database/sql driver name registered by modernc.org/sqlite.
const DefaultDriver = "sqlite"

// Option configures a SQLSession.
type Option func(*SQLSession)

// WithLogger sets the logger used for query traces.
func WithLogger(logger *slog.Logger) Option {
	return func(s *SQLSession) {
		s.logger = logger
	}
}

// SQLSession is a thread-safe Session over a SQL database.
type SQLSession struct {
	db     *sqlx.DB
	logger *slog.Logger

	mu    sync.RWMutex
	repos map[string]Repository
}

// Open connects to the database and creates a session.
func Open(driver, dsn string, opts ...Option) (*SQLSession, error) {
	if driver == "" {
		driver = DefaultDriver
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dsn == ":memory:" {
		// each connection would open its own empty database
		db.SetMaxOpenConns(1)
	}
	return NewSQLSession(db, opts...), nil
}

// NewSQLSession wraps an existing connection pool.
func NewSQLSession(db *sqlx.DB, opts ...Option) *SQLSession {
	s := &SQLSession{
		db:     db,
		logger: slog.Default(),
		repos:  make(map[string]Repository),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB returns the underlying connection pool.
func (s *SQLSession) DB() *sqlx.DB {
	return s.db
}

// Close closes the connection pool.
func (s *SQLSession) Close() error {
	return s.db.Close()
}

// RegisterEntity creates and registers the default repository for meta.
func (s *SQLSession) RegisterEntity(meta registry.EntityMetadata) error {
	repo, err := NewEntityRepository(meta)
	if err != nil {
		return fmt.Errorf("entity %q: %w", meta.Type, err)
	}
	return s.RegisterRepository(repo)
}

// RegisterRepository registers repo under its entity type.
func (s *SQLSession) RegisterRepository(repo Repository) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := repo.EntityType()
	if _, exists := s.repos[key]; exists {
		return errors.NewAlreadyExistsError("repository", key)
	}
	s.repos[key] = repo
	return nil
}

// GetRepository retrieves the repository registered for entityType.
func (s *SQLSession) GetRepository(entityType string) (Repository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repo, exists := s.repos[entityType]
	if !exists {
		return nil, errors.NewNotFoundError("repository", entityType)
	}
	return repo, nil
}

// EntityTypes returns the registered entity types, sorted.
func (s *SQLSession) EntityTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, 0, len(s.repos))
	for k := range s.repos {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}

// CreateQueryBuilder returns an empty builder.
func (s *SQLSession) CreateQueryBuilder() *query.Builder {
	return query.NewBuilder()
}

// Execute binds the query's named parameters, runs it and hydrates every row
// through the type registry.
func (s *SQLSession) Execute(ctx context.Context, q *query.Query) ([]any, error) {
	bound, args, err := query.Bind(q.SQL(), q.Parameters())
	if err != nil {
		return nil, fmt.Errorf("failed to bind parameters: %w", err)
	}
	bound = s.db.Rebind(bound)

	s.logger.DebugContext(ctx, "executing query",
		slog.String("entity", q.EntityType()),
		slog.String("sql", bound),
		slog.Int("args", len(args)),
	)

	rows, err := s.db.QueryxContext(ctx, bound, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		obj, err := registry.Hydrate(q.EntityType(), row)
		if err != nil {
			return nil, err
		}
		results = append(results, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return results, nil
}
