package parser

import (
	"strings"

	"github.com/branchtext/tmplresolver/ast"
	"github.com/branchtext/tmplresolver/tmplerr"
)

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// parseParts implements the "Parts form" grammar (spec §4.1): repeatedly
// apply, to the remaining input, the first rule that matches —
// interpolation, escaped-literal block, or plain text — until the input
// is exhausted.
func parseParts(key, input string) ([]ast.Part, error) {
	var parts []ast.Part
	remaining := input

	for len(remaining) > 0 {
		if strings.HasPrefix(remaining, "{{") {
			content, rest, ok := extractBalancedBrace(remaining)
			if !ok {
				return nil, tmplerr.WrapParse(key, "unterminated brace escape", input, locate(input, remaining), nil)
			}
			remaining = rest
			if content != "" {
				parts = append(parts, ast.TextPart(content))
			}
			continue
		}

		if remaining[0] == '{' {
			ref, rest, ok := parseVariableRef(remaining)
			if !ok {
				return nil, tmplerr.WrapParse(key, "unterminated interpolation, expected '}'", input, locate(input, remaining), nil)
			}
			remaining = rest
			parts = append(parts, ast.RefPart(ref))
			continue
		}

		text, rest := takeUntilBrace(remaining)
		remaining = rest
		if text != "" {
			parts = append(parts, ast.TextPart(text))
		}
	}

	return parts, nil
}

// parseVariableRef parses a single `{...}` interpolation starting at the
// beginning of input. The content between braces is trimmed; content
// beginning with '$' is a Parameter reference (with the '$' and
// surrounding whitespace stripped), otherwise it is a Variable
// reference.
func parseVariableRef(input string) (ast.VarRef, string, bool) {
	if len(input) == 0 || input[0] != '{' {
		return ast.VarRef{}, input, false
	}
	end := strings.IndexByte(input[1:], '}')
	if end < 0 {
		return ast.VarRef{}, input, false
	}
	end++ // account for the offset introduced by input[1:]
	content := strings.TrimFunc(input[1:end], isASCIISpace)
	rest := input[end+1:]

	if strings.HasPrefix(content, "$") {
		name := strings.TrimFunc(content[1:], isASCIISpace)
		return ast.Parameter(name), rest, true
	}
	return ast.Variable(content), rest, true
}

// takeUntilBrace returns the longest prefix of input containing no '{'
// character, and the remainder.
func takeUntilBrace(input string) (text string, rest string) {
	idx := strings.IndexByte(input, '{')
	if idx < 0 {
		return input, ""
	}
	return input[:idx], input[idx:]
}

// locate computes a best-effort line/column for the start of remaining
// within the full source, for error reporting.
func locate(source, remaining string) tmplerr.Pos {
	offset := len(source) - len(remaining)
	if offset < 0 || offset > len(source) {
		offset = 0
	}
	line := 1
	col := 1
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return tmplerr.Pos{Line: line, Column: col}
}
