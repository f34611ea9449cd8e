package extract

import (
	"strings"

	"github.com/prooflib/declgen/internal/store"
)

// binderGroup is a run of consecutive binders sharing a kind and a rendered
// type, displayed as one bracketed group.
type binderGroup struct {
	names       []string
	kind        store.BinderKind
	typ         string
	synthesized bool
}

// renderBinderGroups renders a declaration's binder list as displayed
// argument groups. Consecutive binders of identical kind and type merge
// into a single group, e.g. (a b : ℕ).
func renderBinderGroups(binders []store.Binder, r Renderer) ([]string, error) {
	var groups []binderGroup
	for _, b := range binders {
		typ, err := r.Render(b.Type)
		if err != nil {
			return nil, err
		}

		if n := len(groups); n > 0 {
			last := &groups[n-1]
			if last.kind == b.Kind && last.typ == typ && last.synthesized == b.Synthesized {
				last.names = append(last.names, b.Name)
				continue
			}
		}
		groups = append(groups, binderGroup{
			names:       []string{b.Name},
			kind:        b.Kind,
			typ:         typ,
			synthesized: b.Synthesized,
		})
	}

	rendered := make([]string, 0, len(groups))
	for _, g := range groups {
		rendered = append(rendered, g.display())
	}
	return rendered, nil
}

// display formats one group with the bracket convention of its binder kind.
func (g binderGroup) display() string {
	names := strings.Join(g.names, " ")

	switch g.kind {
	case store.BinderImplicit:
		return "{" + names + " : " + g.typ + "}"
	case store.BinderStrictImplicit:
		return "⦃" + names + " : " + g.typ + "⦄"
	case store.BinderInstImplicit:
		// Anonymous instance binders display the bare class.
		if g.synthesized {
			return "[" + g.typ + "]"
		}
		return "[" + names + " : " + g.typ + "]"
	default:
		// Explicit and compiler-internal auxiliary binders share brackets.
		return "(" + names + " : " + g.typ + ")"
	}
}
