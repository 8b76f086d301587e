/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package ormtest provides an in-memory SQLite session seeded with a small catalog.
package ormtest

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/suparena/widgetfilter/orm"
	"github.com/suparena/widgetfilter/registry"
)

// Entity types of the fixture catalog.
const (
	ProductType  = `App\Entity\Product`
	CategoryType = `App\Entity\Category`
)

// Product and Category mappings.
var (
	Product = registry.EntityMetadata{
		Type:       ProductType,
		Table:      "product",
		Identifier: "id",
		Columns:    []string{"name", "category_id", "price", "published"},
	}
	Category = registry.EntityMetadata{
		Type:       CategoryType,
		Table:      "category",
		Identifier: "id",
		Columns:    []string{"name"},
	}
)

const schema = `
CREATE TABLE category (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE product (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	category_id INTEGER NOT NULL REFERENCES category(id),
	price       INTEGER NOT NULL,
	published   INTEGER NOT NULL DEFAULT 1
);
INSERT INTO category (id, name) VALUES (1, 'Lighting'), (2, 'Furniture');
INSERT INTO product (id, name, category_id, price, published) VALUES
	(1, 'Lamp',  1, 30,  1),
	(2, 'Desk',  2, 250, 1),
	(3, 'Chair', 2, 80,  0),
	(4, 'Shelf', 2, 120, 1),
	(5, 'Rug',   1, 60,  1);
`

// Seed creates and fills the product and category tables.
func Seed(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}

// NewSession opens a seeded in-memory database with Product and Category
// registered. The session is closed when the test ends.
func NewSession(t testing.TB, opts ...orm.Option) *orm.SQLSession {
	t.Helper()

	db, err := sqlx.Open(orm.DefaultDriver, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	// every pooled connection to :memory: would be a fresh database
	db.SetMaxOpenConns(1)

	if err := Seed(db); err != nil {
		db.Close()
		t.Fatalf("Failed to seed database: %v", err)
	}

	session := orm.NewSQLSession(db, opts...)
	for _, meta := range []registry.EntityMetadata{Product, Category} {
		if err := session.RegisterEntity(meta); err != nil {
			t.Fatalf("Failed to register %s: %v", meta.Type, err)
		}
	}
	t.Cleanup(func() { session.Close() })
	return session
}

// Names extracts the "name" column of generic map results.
func Names(t testing.TB, results []any) []string {
	t.Helper()

	names := make([]string, 0, len(results))
	for _, r := range results {
		row, ok := r.(map[string]any)
		if !ok {
			t.Fatalf("Expected map result, got %T", r)
		}
		name, _ := row["name"].(string)
		names = append(names, name)
	}
	return names
}
