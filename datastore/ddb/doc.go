/*
Package ddb provides a DynamoDB implementation of the DataStore interface,
used to persist widgets.

The DynamodbDataStore supports:
  - Single-table design with macro-based keys (e.g., "WIDGET#{ID}")
  - Listing items through the GSI1 secondary index
  - Automatic EntityType injection
  - Paged queries

Macro Expansion:
Keys use macros that are replaced with entity field values:

	registry.IndexMap{
	    "PK":     "WIDGET#{ID}",   // Becomes "WIDGET#42"
	    "SK":     "WIDGET#{ID}",
	    "GSI1PK": "KIND#{Kind}",   // Becomes "KIND#filter"
	    "GSI1SK": "WIDGET#{ID}",
	}

Usage:

	store, err := ddb.NewWidgetStore(ctx, ddb.Config{Region: "eu-west-1", TableName: "widgets"}, logger)
	widget, err := store.GetOne(ctx, "42")
	filters, err := store.QueryByGSI1PK(ctx, storagemodels.KindFilter)
*/
package ddb
