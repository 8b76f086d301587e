/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package widgetfilter_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/suparena/widgetfilter"
	"github.com/suparena/widgetfilter/config"
	"github.com/suparena/widgetfilter/datastore/memory"
	"github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/orm/ormtest"
	"github.com/suparena/widgetfilter/queryhelper"
	"github.com/suparena/widgetfilter/registry"
	"github.com/suparena/widgetfilter/storagemodels"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Entities = []registry.EntityMetadata{ormtest.Product, ormtest.Category}
	cfg.Widgets.Static = []storagemodels.Widget{
		{
			ID:   "published",
			Kind: storagemodels.KindFilter,
			Listing: &storagemodels.Listing{
				Mode:           storagemodels.ModeQuery,
				BusinessEntity: ormtest.ProductType,
				Query:          "WHERE item.published = 1",
				OrderBy:        `[{"by":"price","order":"desc"}]`,
				MaxResults:     2,
			},
		},
		{
			ID:   "same-category",
			Kind: storagemodels.KindFilter,
			Listing: &storagemodels.Listing{
				Mode:           storagemodels.ModeQuery,
				BusinessEntity: ormtest.ProductType,
				Query:          "WHERE item.category_id = :category_id AND item.id != :currentEntity",
			},
		},
	}
	return cfg
}

func newService(t *testing.T, opts ...widgetfilter.Option) *widgetfilter.Service {
	t.Helper()
	svc, err := widgetfilter.New(context.Background(), testConfig(), opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	if err := ormtest.Seed(svc.Session().DB()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	return svc
}

func TestService(t *testing.T) {
	ctx := context.Background()

	t.Run("StaticWidgets", func(t *testing.T) {
		svc := newService(t)
		results, err := svc.Query(ctx, "published", ormtest.ProductType)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		// the listing keeps its two most expensive published products
		if got := ormtest.Names(t, results); !reflect.DeepEqual(got, []string{"Desk", "Shelf"}) {
			t.Errorf("Unexpected products: %v", got)
		}
		if types := svc.Session().EntityTypes(); len(types) != 2 {
			t.Errorf("Expected 2 registered entities, got %v", types)
		}
	})

	t.Run("CurrentEntity", func(t *testing.T) {
		svc := newService(t, widgetfilter.WithCurrentEntity(func() *queryhelper.CurrentEntity {
			return &queryhelper.CurrentEntity{ID: int64(2), Fields: map[string]any{"category_id": int64(2)}}
		}))
		results, err := svc.Query(ctx, "same-category", ormtest.ProductType)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if got := ormtest.Names(t, results); !reflect.DeepEqual(got, []string{"Chair", "Shelf"}) {
			t.Errorf("Unexpected products: %v", got)
		}
	})

	t.Run("InjectedWidgetStore", func(t *testing.T) {
		widgets, err := memory.NewWidgetStore(storagemodels.Widget{
			ID:      "all",
			Kind:    storagemodels.KindFilter,
			Listing: &storagemodels.Listing{BusinessEntity: ormtest.CategoryType},
		})
		if err != nil {
			t.Fatalf("NewWidgetStore failed: %v", err)
		}
		svc := newService(t, widgetfilter.WithWidgetStore(widgets))
		results, err := svc.Query(ctx, "all", ormtest.CategoryType)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if got := ormtest.Names(t, results); !reflect.DeepEqual(got, []string{"Lighting", "Furniture"}) {
			t.Errorf("Unexpected categories: %v", got)
		}
		if _, err := svc.Query(ctx, "published", ormtest.ProductType); !errors.IsNotFound(err) {
			t.Errorf("Expected configured widgets to be replaced, got %v", err)
		}
	})

	t.Run("ListWidgets", func(t *testing.T) {
		svc := newService(t)
		widgets, err := svc.ListWidgets(ctx)
		if err != nil {
			t.Fatalf("ListWidgets failed: %v", err)
		}
		if len(widgets) != 2 || widgets[0].ID != "published" || widgets[1].ID != "same-category" {
			t.Errorf("Unexpected widgets: %+v", widgets)
		}
		if widgets[0].CreatedAt == nil {
			t.Error("Expected stored widgets to carry timestamps")
		}
	})

	t.Run("UnknownEntity", func(t *testing.T) {
		svc := newService(t)
		if _, err := svc.Query(ctx, "published", `App\Entity\Ghost`); !errors.IsNotFound(err) {
			t.Errorf("Expected not found error, got %v", err)
		}
	})
}

func TestNewValidation(t *testing.T) {
	if _, err := widgetfilter.New(context.Background(), nil); !errors.IsValidationError(err) {
		t.Errorf("Expected validation error for nil config, got %v", err)
	}

	cfg := testConfig()
	cfg.Entities = append(cfg.Entities, ormtest.Product)
	if _, err := widgetfilter.New(context.Background(), cfg); !errors.IsValidationError(err) {
		t.Errorf("Expected validation error for duplicate entity, got %v", err)
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := widgetfilter.GetVersionInfo()
	if info.Version != widgetfilter.Version || info.GoVersion == "" {
		t.Errorf("Unexpected version info: %+v", info)
	}
}
