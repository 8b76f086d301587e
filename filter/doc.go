/*
Package filter resolves the entities a filter form field offers.

A filter widget carries the listing configuration of the listing it filters.
FormFieldQueryHandler builds that listing's query through a QueryHelper,
narrowed by the listing sub-query when the listing mode is "query", and
selects the entities of the requested type whose identifier it returns:

	h := filter.NewFormFieldQueryHandler(queryhelper.New(), session)
	products, err := h.Handle(ctx, widget, `App\Entity\Product`)

The outer query aliases the entity by its short name ("Product" above) and
binds the listing's parameters before its own.
*/
package filter
