/*
Package registry manages entity mapping, row hydration and index maps for widgetfilter.

Entity Metadata:
Maps a namespaced entity type name onto its SQL table and identifier:

	meta := registry.EntityMetadata{
	    Type:       `App\Entity\Product`,
	    Table:      "product",
	    Identifier: "id",
	    Columns:    []string{"name", "category_id", "price"},
	}

ShortName derives the query alias from the type name (`App\Entity\Product` -> "Product").

Type Registry:
Maps entity type names to hydrate functions that turn scanned rows into typed values:

	registry.RegisterType(`App\Entity\Product`, func(row map[string]any) (any, error) {
	    return &Product{ID: row["id"].(int64), Name: row["name"].(string)}, nil
	})

Rows of unregistered types are returned as map[string]any.

Index Map Registry:
Associates Go types with DynamoDB key patterns for the widget store:

	registry.RegisterIndexMap[storagemodels.Widget](registry.IndexMap{
	    "PK": "WIDGET#{ID}",
	    "SK": "WIDGET#{ID}",
	})

The registries are thread-safe and should be populated during initialization.
*/
package registry
