/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"reflect"
	"testing"

	"github.com/suparena/widgetfilter/errors"
)

func TestBind(t *testing.T) {
	params := NewParameters()
	params.Set("minPrice", 10)
	params.Set("currentEntity", int64(3))

	tests := []struct {
		name     string
		sql      string
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "NamedPlaceholders",
			sql:      "WHERE item.price > :minPrice AND item.id != :currentEntity AND item.price < :minPrice",
			wantSQL:  "WHERE item.price > ? AND item.id != ? AND item.price < ?",
			wantArgs: []any{10, int64(3), 10},
		},
		{
			name:    "ColonsInStringLiterals",
			sql:     "WHERE item.name != '10:30' AND item.created > '2024-01-01 00:00:00'",
			wantSQL: "WHERE item.name != '10:30' AND item.created > '2024-01-01 00:00:00'",
		},
		{
			name:     "EscapedQuote",
			sql:      "WHERE item.name = 'it''s :minPrice' AND item.price > :minPrice",
			wantSQL:  "WHERE item.name = 'it''s :minPrice' AND item.price > ?",
			wantArgs: []any{10},
		},
		{
			name:    "QuotedIdentifier",
			sql:     `SELECT "a:b" FROM "t"`,
			wantSQL: `SELECT "a:b" FROM "t"`,
		},
		{
			name:    "Cast",
			sql:     "SELECT item.price::text FROM product item",
			wantSQL: "SELECT item.price::text FROM product item",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := Bind(tt.sql, params)
			if err != nil {
				t.Fatalf("Bind failed: %v", err)
			}
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if len(args) != 0 || len(tt.wantArgs) != 0 {
				if !reflect.DeepEqual(args, tt.wantArgs) {
					t.Errorf("args = %v, want %v", args, tt.wantArgs)
				}
			}
		})
	}

	t.Run("Unbound", func(t *testing.T) {
		if _, _, err := Bind("WHERE item.price < :price", params); !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got %v", err)
		}
	})

	t.Run("UnterminatedLiteral", func(t *testing.T) {
		if _, _, err := Bind("WHERE item.name = 'open", nil); !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got %v", err)
		}
	})
}
