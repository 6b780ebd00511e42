package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/branchtext/tmplresolver/ast"
	"github.com/branchtext/tmplresolver/tmplerr"
)

// isIdentChar reports whether r may appear in a selector parameter name:
// alphanumeric (Unicode letters and numbers), '-', or '_' (spec §4.1, §6).
func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '_'
}

// parseConditional attempts to recognize the selector form:
//
//	'$' Ident WS '->' WS Branch+
//
// It returns ok=false (with no error) whenever the input does not even
// begin with the selector's shape, so the caller can fall back to the
// parts form; it returns a real error only once committed to the
// selector form (i.e. after the arrow has been recognized) and the
// branches turn out malformed.
func parseConditional(key, input string) (*ast.Selector, error, bool) {
	trimmed := strings.TrimFunc(input, isASCIISpace)
	if !strings.HasPrefix(trimmed, "$") {
		return nil, nil, false
	}
	rest := trimmed[1:]

	identEnd := 0
	for identEnd < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[identEnd:])
		if !isIdentChar(r) {
			break
		}
		identEnd += size
	}
	if identEnd == 0 {
		return nil, nil, false
	}
	param := rest[:identEnd]
	rest = strings.TrimLeft(rest[identEnd:], " \t\r\n\v\f")

	if !strings.HasPrefix(rest, "->") {
		return nil, nil, false
	}
	rest = strings.TrimLeft(rest[2:], " \t\r\n\v\f")

	sel := &ast.Selector{Param: param}
	for len(strings.TrimFunc(rest, isASCIISpace)) > 0 {
		branch, branchRest, isDefault, err := parseBranch(key, rest)
		if err != nil {
			return nil, err, true
		}
		if branch == nil {
			break
		}
		if isDefault {
			sel.Default = branch.Template
		} else {
			sel.Cases = append(sel.Cases, *branch)
		}
		rest = branchRest
	}

	if len(sel.Cases) == 0 && sel.Default == nil {
		return nil, tmplerr.WrapParse(key, "selector has no cases and no default", input, locate(input, input), nil), true
	}

	return sel, nil, true
}

// parseBranch parses one Branch:
//
//	WS ('*')? '[' caseValue ']' WS content EOL
//
// content runs up to the first LF or CR and is re-entered through the
// top-level Parse. It returns (nil, input, false, nil) when input has no
// further branch to offer (e.g. only trailing whitespace remains).
func parseBranch(key, input string) (*ast.Case, string, bool, error) {
	rest := strings.TrimLeft(input, " \t\r\n\v\f")
	if rest == "" {
		return nil, input, false, nil
	}

	isDefault := false
	if strings.HasPrefix(rest, "*") {
		isDefault = true
		rest = rest[1:]
	}

	if !strings.HasPrefix(rest, "[") {
		return nil, input, false, nil
	}
	closeIdx := strings.IndexByte(rest, ']')
	if closeIdx < 0 {
		return nil, input, false, tmplerr.WrapParse(key, "unterminated case bracket, expected ']'", input, locate(input, rest), nil)
	}
	caseValue := strings.TrimFunc(rest[1:closeIdx], isASCIISpace)
	rest = rest[closeIdx+1:]
	rest = strings.TrimLeft(rest, " \t\v\f")

	lineEnd := strings.IndexAny(rest, "\n\r")
	var content string
	if lineEnd < 0 {
		content = rest
		rest = ""
	} else {
		content = rest[:lineEnd]
		rest = rest[lineEnd:]
		rest = strings.TrimLeft(rest, "\r\n")
	}

	tmpl, err := Parse(key, content)
	if err != nil {
		return nil, input, false, err
	}

	c := &ast.Case{Value: caseValue, Template: tmpl}
	return c, rest, isDefault, nil
}
