// Package ast defines the compiled representation of a single template
// entry: either a flat sequence of text/reference parts, or a selector
// that branches on a context parameter.
//
// Values in this package are constructed once by the parser package and
// never mutated afterwards; a Resolver shares them by reference across
// any number of concurrent evaluations.
package ast

import "strings"

// Template is a compiled entry. Exactly one of Parts or Selector is set,
// distinguished by Kind.
type Template struct {
	Kind     TemplateKind
	Parts    []Part
	Selector *Selector
}

// TemplateKind discriminates the two Template variants.
type TemplateKind int

const (
	// KindParts marks a Template whose Parts field holds the compiled
	// sequence of literal text and references.
	KindParts TemplateKind = iota
	// KindConditional marks a Template whose Selector field holds a
	// parameter-driven branch.
	KindConditional
)

func (k TemplateKind) String() string {
	switch k {
	case KindParts:
		return "parts"
	case KindConditional:
		return "conditional"
	default:
		return "unknown"
	}
}

// NewParts builds a Parts-kind Template.
func NewParts(parts []Part) *Template {
	return &Template{Kind: KindParts, Parts: parts}
}

// NewConditional builds a Conditional-kind Template.
func NewConditional(sel *Selector) *Template {
	return &Template{Kind: KindConditional, Selector: sel}
}

// String renders the template in source-like form, for debugging and
// test assertions. It does not reproduce the original byte sequence of
// the source it was parsed from, and literal text is written as-is:
// text containing '{' or '}' (for example from a brace escape) is not
// re-escaped, so the output does not always parse back to the same
// template.
func (t *Template) String() string {
	var sb strings.Builder
	t.WriteTo(&sb)
	return sb.String()
}

// WriteTo appends the template's source-form rendering to sb.
func (t *Template) WriteTo(sb *strings.Builder) {
	switch t.Kind {
	case KindConditional:
		t.Selector.WriteTo(sb)
	default:
		for _, p := range t.Parts {
			p.WriteTo(sb)
		}
	}
}

// Part is one segment of a Parts template: either literal text or a
// reference that must be expanded at evaluation time.
type Part struct {
	Kind PartKind
	Text string
	Ref  VarRef
}

// PartKind discriminates the two Part variants.
type PartKind int

const (
	// PartText marks a Part whose Text field holds literal output.
	PartText PartKind = iota
	// PartRef marks a Part whose Ref field holds a variable or
	// parameter reference to expand.
	PartRef
)

// TextPart builds a literal-text Part.
func TextPart(s string) Part {
	return Part{Kind: PartText, Text: s}
}

// RefPart builds a reference Part.
func RefPart(ref VarRef) Part {
	return Part{Kind: PartRef, Ref: ref}
}

func (p Part) WriteTo(sb *strings.Builder) {
	switch p.Kind {
	case PartRef:
		p.Ref.WriteTo(sb)
	default:
		sb.WriteString(p.Text)
	}
}

// VarRef is a reference inside an interpolation: either to another
// resolver entry (Variable) or to a value in the per-call context
// (Parameter).
type VarRef struct {
	Kind VarRefKind
	Name string
}

// VarRefKind discriminates the two VarRef variants.
type VarRefKind int

const (
	// RefVariable marks a reference to another key in the resolver,
	// expanded recursively in the same context.
	RefVariable VarRefKind = iota
	// RefParameter marks a reference to a key in the per-call context,
	// substituted verbatim.
	RefParameter
)

// Variable builds a Variable-kind VarRef.
func Variable(name string) VarRef {
	return VarRef{Kind: RefVariable, Name: name}
}

// Parameter builds a Parameter-kind VarRef.
func Parameter(name string) VarRef {
	return VarRef{Kind: RefParameter, Name: name}
}

func (v VarRef) WriteTo(sb *strings.Builder) {
	sb.WriteByte('{')
	if v.Kind == RefParameter {
		sb.WriteByte('$')
	}
	sb.WriteString(v.Name)
	sb.WriteByte('}')
}

// Selector is a branching template driven by a single context parameter.
// Case order from source is preserved; matching scans cases in that
// order and uses the first byte-equal match.
type Selector struct {
	Param   string
	Cases   []Case
	Default *Template
}

// Case is one branch of a Selector.
type Case struct {
	Value    string
	Template *Template
}

func (s *Selector) WriteTo(sb *strings.Builder) {
	sb.WriteByte('$')
	sb.WriteString(s.Param)
	sb.WriteString(" ->\n")
	for _, c := range s.Cases {
		sb.WriteString("  [")
		sb.WriteString(c.Value)
		sb.WriteString("] ")
		c.Template.WriteTo(sb)
		sb.WriteByte('\n')
	}
	if s.Default != nil {
		sb.WriteString("  *[")
		sb.WriteString("default")
		sb.WriteString("] ")
		s.Default.WriteTo(sb)
		sb.WriteByte('\n')
	}
}
