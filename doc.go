/*
Package widgetfilter answers the queries of filter form fields: given a filter
widget, which carries the configuration of the listing it filters, and a
target entity type, it returns the entities of that type the listing shows.

The listing query is built by the queryhelper package. In "query" mode it is
narrowed by the listing's sub-query; in "direct" mode it is used as is. The
filter package then selects the target entities whose identifier is in the
listing query:

	SELECT "Product".* FROM "product" "Product"
	WHERE "Product"."id" IN (SELECT "main_item"."id" FROM "product" "main_item" ...)

Parameters of the listing query and of the outer query are merged, inner first.

Basic Usage:

	cfg, err := config.Load("widgetfilter.yaml")
	svc, err := widgetfilter.New(ctx, cfg)
	defer svc.Close()

	products, err := svc.Query(ctx, "category-filter", `App\Entity\Product`)

Widgets are read from memory (the static list of the configuration) or from
DynamoDB; entities are read through a sqlx session (SQLite by default).
*/
package widgetfilter
