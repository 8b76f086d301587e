/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// In builds "left IN (sub)". sub is the textual form of another query.
func In(left, sub string) squirrel.Sqlizer {
	return squirrel.Expr(left + " IN (" + sub + ")")
}

// QuoteIdent quotes a SQL identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
