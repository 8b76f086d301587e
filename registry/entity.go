/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"regexp"
	"strings"

	"github.com/suparena/widgetfilter/errors"
)

// DefaultIdentifier is the identifier column used when an entity mapping does not name one.
const DefaultIdentifier = "id"

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// EntityMetadata maps an entity type name (e.g. `App\Entity\Product`) onto its table.
type EntityMetadata struct {
	// Type is the fully qualified entity type name.
	Type string `yaml:"type"`
	// Table is the SQL table that stores the entity.
	Table string `yaml:"table"`
	// Identifier is the primary key column.
	Identifier string `yaml:"identifier"`
	// Columns lists the mapped fields. Used to resolve current-entity parameters.
	Columns []string `yaml:"columns"`
}

// Validate checks the mapping and fills the default identifier.
func (m *EntityMetadata) Validate() error {
	if m.Type == "" {
		return errors.NewValidationError("type", "entity type is required")
	}
	if !IsIdentifier(m.Table) {
		return errors.NewValidationError("table", "invalid table name "+m.Table)
	}
	if m.Identifier == "" {
		m.Identifier = DefaultIdentifier
	}
	if !IsIdentifier(m.Identifier) {
		return errors.NewValidationError("identifier", "invalid identifier column "+m.Identifier)
	}
	for _, c := range m.Columns {
		if !IsIdentifier(c) {
			return errors.NewValidationError("columns", "invalid column "+c)
		}
	}
	return nil
}

// HasColumn reports whether name is a mapped column or the identifier.
func (m EntityMetadata) HasColumn(name string) bool {
	if name == m.Identifier {
		return true
	}
	for _, c := range m.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ShortName returns the last segment of a namespaced entity type name.
// `App\Entity\Product`, `app.entity.Product` and `app/entity/Product` all yield "Product".
func ShortName(entityType string) string {
	i := strings.LastIndexAny(entityType, `\./`)
	return entityType[i+1:]
}

// IsIdentifier reports whether s is a plain SQL identifier.
func IsIdentifier(s string) bool {
	return identPattern.MatchString(s)
}
