package store

import "strings"

// Name is a fully qualified, dot-separated declaration name.
type Name string

func (n Name) String() string {
	return string(n)
}

// Last returns the final component of the name, e.g. "x" for "Point.x".
func (n Name) Last() string {
	s := string(n)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// IsInternal reports whether any component of the name starts with an
// underscore, the convention for compiler-synthesized declarations.
func (n Name) IsInternal() bool {
	for _, part := range strings.Split(string(n), ".") {
		if strings.HasPrefix(part, "_") {
			return true
		}
	}
	return false
}

// BinderKind classifies how a bound parameter is introduced.
type BinderKind int

const (
	BinderExplicit BinderKind = iota
	BinderImplicit
	BinderStrictImplicit
	BinderInstImplicit
	BinderAux
)

// DeclKind is the syntactic category of a declaration.
type DeclKind string

const (
	KindDef      DeclKind = "def"
	KindTheorem  DeclKind = "thm"
	KindConstant DeclKind = "cnst"
	KindAxiom    DeclKind = "ax"
)

// Expr is an opaque handle to a term owned by the proof assistant's term
// engine. The store hands them out; a Renderer turns them into strings.
// Raw is whatever the backing store recorded for the term.
type Expr struct {
	Raw string
}

// Binder is one bound parameter of a declaration.
type Binder struct {
	Name string
	Kind BinderKind
	Type Expr

	// Synthesized marks a machine-picked placeholder name, as produced for
	// anonymous instance-implicit binders.
	Synthesized bool
}

// Location is a declaration's position in its defining source file.
type Location struct {
	Filename string
	Line     uint
}

// Decl is one declaration as recorded in the symbol store. Projection and
// constructor declarations carry their parameter-instantiated type in
// ResultType; instantiation happens inside the term engine, behind the
// store boundary.
type Decl struct {
	Name       Name
	Kind       DeclKind
	Binders    []Binder
	ResultType Expr
	Doc        string
	Location   *Location // nil when the store has no position for it
	Attributes []string
	Synthetic  bool // flagged auto-generated by the elaborator
}

// DocEntry is one module-level documentation comment.
type DocEntry struct {
	Line uint   `json:"line"`
	Doc  string `json:"doc"`
}

// ModuleDoc groups the module-level documentation of one source file.
type ModuleDoc struct {
	Filename string
	Entries  []DocEntry
}

// Store is read-only access to a loaded proof-assistant library.
// Implementations must return names in a stable enumeration order; export
// output order follows it directly.
type Store interface {
	// Get looks up a declaration by name.
	Get(name Name) (*Decl, bool)

	// AllNames lists every declaration name in enumeration order.
	AllNames() []Name

	// IsStructure reports whether name is a structure (single-constructor
	// inductive with field projections).
	IsStructure(name Name) bool

	// Projections returns the projection names of a structure, in field
	// declaration order. Empty for non-structures.
	Projections(name Name) []Name

	// IsInductive reports whether name is an inductive type.
	IsInductive(name Name) bool

	// ConstructorsOf returns the constructor names of an inductive type,
	// in declaration order. Empty for non-inductives.
	ConstructorsOf(name Name) []Name

	// ModuleDocs returns all module-level documentation, grouped by file.
	ModuleDocs() []ModuleDoc
}
