// Package tmplerr defines the structured error taxonomy returned by the
// parser and resolver packages. Every failure mode is a distinct Go type
// implementing error, never a panic and never a bare string, so callers
// can switch on error kind with errors.As.
package tmplerr

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"golang.org/x/xerrors"
)

// UndefinedVariable is returned when a top-level key, or a Variable(name)
// reference inside a template, has no entry in the resolver.
type UndefinedVariable struct {
	Name string
}

func (e *UndefinedVariable) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

// MissingParameter is returned when a Parameter(name) reference, or a
// selector's driving parameter, is absent from the evaluation context.
type MissingParameter struct {
	Name string
}

func (e *MissingParameter) Error() string {
	return fmt.Sprintf("missing parameter: %s", e.Name)
}

// NoDefaultBranch is returned when a selector's value matches no case and
// the selector has no default branch.
type NoDefaultBranch struct {
	Param string
}

func (e *NoDefaultBranch) Error() string {
	return fmt.Sprintf("no default branch: %s", e.Param)
}

// CycleDetected is returned when expanding a Variable(name) reference
// would re-enter a template already being expanded in the current call
// stack. This converts the self-reference hazard noted in the design
// notes (an unguarded recursive expander would otherwise overflow the
// goroutine stack) into a reportable error.
type CycleDetected struct {
	Name string
}

func (e *CycleDetected) Error() string {
	return fmt.Sprintf("cycle detected: %s", e.Name)
}

// Pos is a 1-based line/column location within a parsed source string,
// used only to render ParseError snippets. A zero Pos means "unknown"
// and suppresses snippet rendering.
type Pos struct {
	Line   int
	Column int
}

// ParseError is returned by the parser for any malformed template
// source. Key names the resolver entry the source came from, when known;
// Source is the original string the parser was given, used to render a
// caret snippet in Format.
type ParseError struct {
	Key     string
	Message string
	Source  string
	At      Pos
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("parse error in %q: %s", e.Key, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Unwrap exposes an underlying cause, if any, for errors.Is/errors.As.
func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// WrapParse builds a ParseError naming key, wrapping cause (which may be
// nil) with golang.org/x/xerrors so that %w-style chains survive.
func WrapParse(key, message string, source string, at Pos, cause error) error {
	pe := &ParseError{Key: key, Message: message, Source: source, At: at}
	if cause != nil {
		pe.Wrapped = xerrors.Errorf("%s: %w", message, cause)
	}
	return pe
}

// Format renders err as a short diagnostic line, plus a Rust/Clang-style
// caret snippet when err is a *ParseError carrying source and position
// information. When colored is true, the snippet is rendered with ANSI
// color codes via github.com/fatih/color; when false, the snippet is
// plain text. Format only returns the string and writes nothing; to show
// the color codes on Windows terminals, print it through the writer
// returned by NewColorableStdout.
func Format(err error, colored bool) string {
	var pe *ParseError
	if !xerrors.As(err, &pe) || pe.Source == "" || pe.At.Line == 0 {
		return err.Error()
	}

	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteByte('\n')
	writeSnippet(&sb, pe, colored)
	return sb.String()
}

func writeSnippet(sb *strings.Builder, pe *ParseError, colored bool) {
	lines := strings.Split(pe.Source, "\n")
	if pe.At.Line < 1 || pe.At.Line > len(lines) {
		return
	}
	line := lines[pe.At.Line-1]

	locate := fmt.Sprintf("  --> %d:%d\n", pe.At.Line, pe.At.Column)
	gutter := "   |\n"
	numbered := fmt.Sprintf("%2d | %s\n", pe.At.Line, line)
	caretPad := "   | "
	caret := ""
	if pe.At.Column > 0 && pe.At.Column <= len(line)+1 {
		caret = strings.Repeat(" ", pe.At.Column-1) + "^"
	}

	if !colored {
		sb.WriteString(locate)
		sb.WriteString(gutter)
		sb.WriteString(numbered)
		sb.WriteString(caretPad)
		sb.WriteString(caret)
		return
	}

	bold := color.New(color.Bold, color.FgHiWhite).SprintFunc()
	fgRed := color.New(color.Bold, color.FgHiRed).SprintFunc()
	sb.WriteString(bold(locate))
	sb.WriteString(bold(gutter))
	sb.WriteString(bold(numbered))
	sb.WriteString(caretPad)
	sb.WriteString(fgRed(caret))
}

// NewColorableStdout wraps os.Stdout so that the ANSI color codes Format
// embeds render correctly on Windows terminals, exactly as
// github.com/mattn/go-colorable is used in comparable CLI tooling. It
// exists for a future CLI wrapper to print Format's output directly;
// tmplerr itself only ever returns strings and never writes to stdout.
func NewColorableStdout() io.Writer {
	return colorable.NewColorableStdout()
}
