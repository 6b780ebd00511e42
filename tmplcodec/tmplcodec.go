// Package tmplcodec provides an optional binary serialization of a
// resolver's compiled entries. The AST is a plain value tree (spec §1,
// "Optional serialization hooks"); this package is one structural
// serializer among any number that could exist, built on
// github.com/fxamacker/cbor/v2.
package tmplcodec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/branchtext/tmplresolver/ast"
	"github.com/branchtext/tmplresolver/resolver"
)

// wireTemplate is the CBOR-friendly mirror of ast.Template: a plain
// struct with exported fields and no pointer-identity requirements,
// distinct from ast.Template so the AST package itself carries no
// serialization tags.
type wireTemplate struct {
	Kind     int8          `cbor:"1,keyasint"`
	Parts    []wirePart    `cbor:"2,keyasint,omitempty"`
	Selector *wireSelector `cbor:"3,keyasint,omitempty"`
}

type wirePart struct {
	Kind int8      `cbor:"1,keyasint"`
	Text string    `cbor:"2,keyasint,omitempty"`
	Ref  *wireRef  `cbor:"3,keyasint,omitempty"`
}

type wireRef struct {
	Kind int8   `cbor:"1,keyasint"`
	Name string `cbor:"2,keyasint"`
}

type wireSelector struct {
	Param   string        `cbor:"1,keyasint"`
	Cases   []wireCase    `cbor:"2,keyasint,omitempty"`
	Default *wireTemplate `cbor:"3,keyasint,omitempty"`
}

type wireCase struct {
	Value    string       `cbor:"1,keyasint"`
	Template wireTemplate `cbor:"2,keyasint"`
}

// wireEntry is one (key, Template) pair in the emitted array. Emitting a
// CBOR array of pairs, rather than a CBOR map, is what lets the sorted
// order spec §6 requires survive into the encoded bytes: Go's own map
// type has no stable iteration order, but a slice does.
type wireEntry struct {
	Key      string       `cbor:"1,keyasint"`
	Template wireTemplate `cbor:"2,keyasint"`
}

func toWireTemplate(t *ast.Template) wireTemplate {
	if t.Kind == ast.KindConditional {
		return wireTemplate{Kind: int8(t.Kind), Selector: toWireSelector(t.Selector)}
	}
	parts := make([]wirePart, len(t.Parts))
	for i, p := range t.Parts {
		parts[i] = toWirePart(p)
	}
	return wireTemplate{Kind: int8(t.Kind), Parts: parts}
}

func toWirePart(p ast.Part) wirePart {
	if p.Kind == ast.PartRef {
		ref := toWireRef(p.Ref)
		return wirePart{Kind: int8(p.Kind), Ref: &ref}
	}
	return wirePart{Kind: int8(p.Kind), Text: p.Text}
}

func toWireRef(v ast.VarRef) wireRef {
	return wireRef{Kind: int8(v.Kind), Name: v.Name}
}

func toWireSelector(s *ast.Selector) *wireSelector {
	cases := make([]wireCase, len(s.Cases))
	for i, c := range s.Cases {
		cases[i] = wireCase{Value: c.Value, Template: toWireTemplate(c.Template)}
	}
	ws := &wireSelector{Param: s.Param, Cases: cases}
	if s.Default != nil {
		d := toWireTemplate(s.Default)
		ws.Default = &d
	}
	return ws
}

func fromWireTemplate(w wireTemplate) *ast.Template {
	if ast.TemplateKind(w.Kind) == ast.KindConditional {
		return ast.NewConditional(fromWireSelector(w.Selector))
	}
	parts := make([]ast.Part, len(w.Parts))
	for i, p := range w.Parts {
		parts[i] = fromWirePart(p)
	}
	return ast.NewParts(parts)
}

func fromWirePart(w wirePart) ast.Part {
	if ast.PartKind(w.Kind) == ast.PartRef {
		return ast.RefPart(fromWireRef(*w.Ref))
	}
	return ast.TextPart(w.Text)
}

func fromWireRef(w wireRef) ast.VarRef {
	return ast.VarRef{Kind: ast.VarRefKind(w.Kind), Name: w.Name}
}

func fromWireSelector(w *wireSelector) *ast.Selector {
	sel := &ast.Selector{Param: w.Param}
	sel.Cases = make([]ast.Case, len(w.Cases))
	for i, c := range w.Cases {
		sel.Cases[i] = ast.Case{Value: c.Value, Template: fromWireTemplate(c.Template)}
	}
	if w.Default != nil {
		sel.Default = fromWireTemplate(*w.Default)
	}
	return sel
}

// EncodeResolver serializes r's entries as a CBOR array of (key,
// Template) pairs in key-sorted order.
func EncodeResolver(r *resolver.Resolver) ([]byte, error) {
	pairs := r.IntoPairs()
	entries := make([]wireEntry, len(pairs))
	for i, kt := range pairs {
		entries[i] = wireEntry{Key: kt.Key, Template: toWireTemplate(kt.Template)}
	}
	b, err := cbor.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("tmplcodec: encode: %w", err)
	}
	return b, nil
}

// DecodeResolver is the inverse of EncodeResolver.
func DecodeResolver(data []byte) (*resolver.Resolver, error) {
	var entries []wireEntry
	if err := cbor.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("tmplcodec: decode: %w", err)
	}
	return resolver.FromDecodedEntries(toDecodedEntries(entries)), nil
}

func toDecodedEntries(entries []wireEntry) []resolver.KeyedTemplate {
	out := make([]resolver.KeyedTemplate, len(entries))
	for i, e := range entries {
		out[i] = resolver.KeyedTemplate{Key: e.Key, Template: fromWireTemplate(e.Template)}
	}
	return out
}
