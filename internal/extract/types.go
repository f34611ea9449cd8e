package extract

import "github.com/prooflib/declgen/internal/store"

// DeclInfo is the documentation record for one retained declaration.
// Field order matches the serialized key order exactly; slices keep source
// declaration order and are never re-sorted.
type DeclInfo struct {
	Name            string      `json:"name"`
	Args            []string    `json:"args"`
	Type            string      `json:"type"`
	DocString       string      `json:"doc_string"`
	Filename        string      `json:"filename"`
	Line            uint        `json:"line"`
	Attributes      []string    `json:"attributes"`
	Kind            string      `json:"kind"`
	StructureFields [][2]string `json:"structure_fields"`
	Constructors    [][2]string `json:"constructors"`
}

// Renderer turns an opaque term handle into its displayed form. The term
// printing engine itself lives outside this repository; store dumps carry
// pre-rendered strings and use RawRenderer.
type Renderer interface {
	Render(expr store.Expr) (string, error)
}

// RawRenderer renders an Expr as the raw string the store recorded for it.
type RawRenderer struct{}

func (RawRenderer) Render(expr store.Expr) (string, error) {
	return expr.Raw, nil
}
