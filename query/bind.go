/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"fmt"
	"strings"

	"github.com/suparena/widgetfilter/errors"
)

// Bind replaces the :name placeholders of sql with "?" and returns the bound
// values in placeholder order. Text inside quoted literals and quoted
// identifiers is left untouched, as are "::" casts. A placeholder without a
// value is a ValidationError.
func Bind(sql string, params *Parameters) (string, []any, error) {
	if params == nil {
		params = NewParameters()
	}

	var (
		out   strings.Builder
		args  []any
		quote byte
	)
	out.Grow(len(sql))

	for i := 0; i < len(sql); i++ {
		c := sql[i]

		if quote != 0 {
			out.WriteByte(c)
			if c == quote {
				// a doubled quote is an escaped quote
				if i+1 < len(sql) && sql[i+1] == quote {
					out.WriteByte(sql[i+1])
					i++
					continue
				}
				quote = 0
			}
			continue
		}

		switch {
		case c == '\'' || c == '"':
			quote = c
			out.WriteByte(c)
		case c == ':' && i+1 < len(sql) && sql[i+1] == ':':
			out.WriteString("::")
			i++
		case c == ':' && i+1 < len(sql) && isNameStart(sql[i+1]):
			j := i + 1
			for j < len(sql) && isNamePart(sql[j]) {
				j++
			}
			name := sql[i+1 : j]
			value, ok := params.Get(name)
			if !ok {
				return "", nil, errors.NewValidationError("parameters", fmt.Sprintf("no value bound for :%s", name))
			}
			out.WriteByte('?')
			args = append(args, value)
			i = j - 1
		default:
			out.WriteByte(c)
		}
	}

	if quote != 0 {
		return "", nil, errors.NewValidationError("sql", "unterminated quoted text")
	}
	return out.String(), args, nil
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNamePart(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
