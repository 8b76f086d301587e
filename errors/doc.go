/*
Package errors provides semantic error types for widgetfilter.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound          = errors.New("not found")
	    ErrAlreadyExists     = errors.New("already exists")
	    ErrInvalidInput      = errors.New("invalid input")
	    ErrParameterConflict = errors.New("parameter conflict")
	    ErrUnknownMode       = errors.New("unknown listing mode")
	    ErrNoIndexMap        = errors.New("no index map found for type")
	)

Usage:

	entities, err := handler.Handle(ctx, widget, `App\Entity\Product`)
	if err != nil {
	    if errors.IsNotFound(err) {
	        // no repository registered for the entity type
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("repository", `App\Entity\Product`)
	err := errors.NewValidationError("listing", "filter widget has no listing")
	err := errors.NewParameterConflictError("status", "draft", "published")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
