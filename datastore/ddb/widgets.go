/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"log/slog"

	"github.com/suparena/widgetfilter/registry"
	"github.com/suparena/widgetfilter/storagemodels"
)

// WidgetIndexMap lays widgets out in the single table and indexes them by kind.
var WidgetIndexMap = registry.IndexMap{
	"PK":     "WIDGET#{ID}",
	"SK":     "WIDGET#{ID}",
	"GSI1PK": "KIND#{Kind}",
	"GSI1SK": "WIDGET#{ID}",
}

// NewWidgetStore registers WidgetIndexMap and connects a widget datastore.
func NewWidgetStore(ctx context.Context, cfg Config, logger *slog.Logger) (*DynamodbDataStore[storagemodels.Widget], error) {
	if err := registry.RegisterIndexMap[storagemodels.Widget](WidgetIndexMap); err != nil {
		return nil, err
	}
	return NewDynamodbDataStore[storagemodels.Widget](ctx, cfg, logger)
}
