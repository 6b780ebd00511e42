package resolver

import (
	"strings"

	"github.com/branchtext/tmplresolver/ast"
	"github.com/branchtext/tmplresolver/context"
	"github.com/branchtext/tmplresolver/tmplerr"
)

// Get expands rootKey against ctx and returns the resulting string, or a
// structured error from the tmplerr package (spec §4.4).
func (r *Resolver) Get(rootKey string, ctx context.Context) (string, error) {
	tmpl, ok := r.entries[rootKey]
	if !ok {
		return "", &tmplerr.UndefinedVariable{Name: rootKey}
	}

	e := &evaluator{
		resolver: r,
		ctx:      ctx,
		visited:  map[string]bool{rootKey: true},
		maxDepth: r.maxDepth,
	}
	var sb strings.Builder
	sb.Grow(staticLen(tmpl))
	if err := e.writeTemplate(&sb, tmpl, 1); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// GetNoContext is Get with an always-missing context, a convenience for
// templates that reference no parameters (spec §6).
func (r *Resolver) GetNoContext(rootKey string) (string, error) {
	return r.Get(rootKey, context.Empty())
}

// evaluator carries the per-call recursion state: the context being
// evaluated against, the set of variable names currently being expanded
// (cycle guard), and the depth limit that the depth argument of each
// call is checked against.
type evaluator struct {
	resolver *Resolver
	ctx      context.Context
	visited  map[string]bool
	maxDepth int
}

func (e *evaluator) writeTemplate(sb *strings.Builder, tmpl *ast.Template, depth int) error {
	if depth > e.maxDepth {
		return &tmplerr.CycleDetected{Name: "max recursion depth exceeded"}
	}

	switch tmpl.Kind {
	case ast.KindConditional:
		return e.writeSelector(sb, tmpl.Selector, depth)
	default:
		return e.writeParts(sb, tmpl.Parts, depth)
	}
}

func (e *evaluator) writeParts(sb *strings.Builder, parts []ast.Part, depth int) error {
	for _, p := range parts {
		switch p.Kind {
		case ast.PartText:
			sb.WriteString(p.Text)
		case ast.PartRef:
			if err := e.writeRef(sb, p.Ref, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *evaluator) writeRef(sb *strings.Builder, ref ast.VarRef, depth int) error {
	switch ref.Kind {
	case ast.RefParameter:
		v, ok := e.ctx.Lookup(ref.Name)
		if !ok {
			return &tmplerr.MissingParameter{Name: ref.Name}
		}
		sb.WriteString(v)
		return nil
	default: // ast.RefVariable
		return e.writeVariable(sb, ref.Name, depth)
	}
}

func (e *evaluator) writeVariable(sb *strings.Builder, name string, depth int) error {
	if e.visited[name] {
		return &tmplerr.CycleDetected{Name: name}
	}
	tmpl, ok := e.resolver.entries[name]
	if !ok {
		return &tmplerr.UndefinedVariable{Name: name}
	}

	e.visited[name] = true
	defer delete(e.visited, name)

	return e.writeTemplate(sb, tmpl, depth+1)
}

func (e *evaluator) writeSelector(sb *strings.Builder, sel *ast.Selector, depth int) error {
	value, ok := e.ctx.Lookup(sel.Param)
	if !ok {
		return &tmplerr.MissingParameter{Name: sel.Param}
	}

	for _, c := range sel.Cases {
		if c.Value == value {
			return e.writeTemplate(sb, c.Template, depth+1)
		}
	}
	if sel.Default != nil {
		return e.writeTemplate(sb, sel.Default, depth+1)
	}
	return &tmplerr.NoDefaultBranch{Param: sel.Param}
}

// staticLen estimates the output size from a template's literal text, to
// seed strings.Builder.Grow and avoid repeated reallocation on the
// common short-message case (spec §5's compact-buffer guidance).
func staticLen(tmpl *ast.Template) int {
	switch tmpl.Kind {
	case ast.KindConditional:
		n := 0
		for _, c := range tmpl.Selector.Cases {
			if l := staticLen(c.Template); l > n {
				n = l
			}
		}
		if tmpl.Selector.Default != nil {
			if l := staticLen(tmpl.Selector.Default); l > n {
				n = l
			}
		}
		return n
	default:
		n := 0
		for _, p := range tmpl.Parts {
			if p.Kind == ast.PartText {
				n += len(p.Text)
			}
		}
		return n
	}
}
