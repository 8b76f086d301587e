/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/suparena/widgetfilter/datastore"
	"github.com/suparena/widgetfilter/datastore/memory"
	"github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/storagemodels"
)

var (
	_ datastore.DataStore[storagemodels.Widget] = (*memory.DataStore[storagemodels.Widget])(nil)
	_ datastore.Lister[storagemodels.Widget]    = (*memory.DataStore[storagemodels.Widget])(nil)
)

func TestMemoryDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		store, err := memory.NewWidgetStore(storagemodels.Widget{ID: "42", Kind: storagemodels.KindFilter})
		if err != nil {
			t.Fatalf("NewWidgetStore failed: %v", err)
		}

		w, err := store.GetOne(ctx, "42")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if w.Kind != storagemodels.KindFilter {
			t.Fatalf("Retrieved widget mismatch: %+v", w)
		}

		if err := store.Delete(ctx, "42"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := store.GetOne(ctx, "42"); !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
		if err := store.Delete(ctx, "42"); !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error on second delete, got: %v", err)
		}
	})

	t.Run("EmptyKey", func(t *testing.T) {
		_, err := memory.NewWidgetStore(storagemodels.Widget{Kind: storagemodels.KindFilter})
		if !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got %v", err)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		store, _ := memory.NewWidgetStore()
		putErr := errors.NewValidationError("name", "required")
		store.WithPutError(putErr)
		if err := store.Put(ctx, storagemodels.Widget{ID: "1"}); err != putErr {
			t.Fatalf("Expected put error, got: %v", err)
		}

		deleteErr := errors.NewNotFoundError("widget", "1")
		store.WithDeleteError(deleteErr)
		if err := store.Delete(ctx, "1"); err != deleteErr {
			t.Fatalf("Expected delete error, got: %v", err)
		}
	})

	t.Run("QueryOrderedByKey", func(t *testing.T) {
		store, _ := memory.NewWidgetStore(
			storagemodels.Widget{ID: "b"},
			storagemodels.Widget{ID: "a"},
			storagemodels.Widget{ID: "c"},
		)
		results, err := store.Query(ctx, &storagemodels.QueryParams{})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(results) != 3 || store.Count() != 3 {
			t.Fatalf("Expected 3 results, got %d", len(results))
		}
		if first := results[0].(*storagemodels.Widget); first.ID != "a" {
			t.Errorf("Expected first widget a, got %q", first.ID)
		}
	})

	t.Run("List", func(t *testing.T) {
		store, _ := memory.NewWidgetStore(
			storagemodels.Widget{ID: "b"},
			storagemodels.Widget{ID: "a"},
		)
		widgets, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(widgets) != 2 || widgets[0].ID != "a" || widgets[1].ID != "b" {
			t.Errorf("Unexpected widgets: %+v", widgets)
		}
	})

	t.Run("PutStampsTimestamps", func(t *testing.T) {
		now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		store, _ := memory.NewWidgetStore()
		store.WithClock(func() time.Time { return now })

		if err := store.Put(ctx, storagemodels.Widget{ID: "1"}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		w, err := store.GetOne(ctx, "1")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if w.CreatedAt == nil || !time.Time(*w.CreatedAt).Equal(now) {
			t.Errorf("Unexpected CreatedAt: %v", w.CreatedAt)
		}
		if w.UpdatedAt == nil || !time.Time(*w.UpdatedAt).Equal(now) {
			t.Errorf("Unexpected UpdatedAt: %v", w.UpdatedAt)
		}
	})

	t.Run("CustomQueryFunction", func(t *testing.T) {
		store, _ := memory.NewWidgetStore()
		store.WithQueryFunc(func(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error) {
			return []interface{}{&storagemodels.Widget{ID: "filtered"}}, nil
		})
		results, err := store.Query(ctx, nil)
		if err != nil || len(results) != 1 {
			t.Fatalf("Expected 1 result, got %d, %v", len(results), err)
		}
	})
}
