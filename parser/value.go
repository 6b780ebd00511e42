// Package parser compiles a single template source string into an
// ast.Template. It is the sole producer of ast.Template values; the
// resolver package only ever stores and walks what this package builds.
package parser

import (
	"strings"

	"github.com/branchtext/tmplresolver/ast"
)

// Parse compiles source into a Template. key identifies the resolver
// entry source came from and is attached to any returned ParseError so
// bulk loads can point at the offending entry.
//
// Parse first trims ASCII whitespace around the whole input, then tries
// the selector form; if that does not even look like a selector, it
// falls back to the parts form (spec §4.1).
func Parse(key, source string) (*ast.Template, error) {
	trimmed := strings.TrimFunc(source, isASCIISpace)

	sel, err, committed := parseConditional(key, trimmed)
	if committed {
		if err != nil {
			return nil, err
		}
		return ast.NewConditional(sel), nil
	}

	parts, err := parseParts(key, trimmed)
	if err != nil {
		return nil, err
	}
	return ast.NewParts(parts), nil
}
