package extract

import (
	"fmt"

	"github.com/prooflib/declgen/internal/store"
)

// allowedAttributes is the fixed attribute allow-list. Output order follows
// this list, not the order attributes were attached in.
var allowedAttributes = []string{
	"simp",
	"squash_cast",
	"move_cast",
	"elim_cast",
	"nolint",
	"ext",
	"instance",
}

// Extractor builds DeclInfo records from store declarations.
type Extractor struct {
	store  store.Store
	render Renderer
	filter *FileFilter
}

// NewExtractor creates an extractor. filter may be nil to retain all files.
func NewExtractor(st store.Store, r Renderer, filter *FileFilter) *Extractor {
	return &Extractor{
		store:  st,
		render: r,
		filter: filter,
	}
}

// Extract builds the record for one declaration. It returns (nil, nil) when
// the declaration is skipped by design: no source location, defining file
// outside the filter, internal name, or auto-generated. A rendering failure
// returns an error and drops the whole record; the caller moves on to the
// next declaration.
func (e *Extractor) Extract(decl *store.Decl) (*DeclInfo, error) {
	if decl.Location == nil {
		return nil, nil
	}
	if !e.filter.Match(decl.Location.Filename) {
		return nil, nil
	}
	if decl.Name.IsInternal() || decl.Synthetic {
		return nil, nil
	}

	args, err := renderBinderGroups(decl.Binders, e.render)
	if err != nil {
		return nil, fmt.Errorf("rendering args of %s: %w", decl.Name, err)
	}

	typ, err := e.render.Render(decl.ResultType)
	if err != nil {
		return nil, fmt.Errorf("rendering type of %s: %w", decl.Name, err)
	}

	info := &DeclInfo{
		Name:            decl.Name.String(),
		Args:            args,
		Type:            typ,
		DocString:       decl.Doc,
		Filename:        decl.Location.Filename,
		Line:            decl.Location.Line,
		Attributes:      filterAttributes(decl.Attributes),
		Kind:            string(decl.Kind),
		StructureFields: [][2]string{},
		Constructors:    [][2]string{},
	}

	// Structures and plain inductives are mutually exclusive; a structure's
	// single constructor is surfaced through its fields instead.
	switch {
	case e.store.IsStructure(decl.Name):
		fields, err := e.structureFields(decl.Name)
		if err != nil {
			return nil, err
		}
		info.StructureFields = fields
	case e.store.IsInductive(decl.Name):
		ctors, err := e.constructors(decl.Name)
		if err != nil {
			return nil, err
		}
		info.Constructors = ctors
	}

	return info, nil
}

// structureFields renders each field projection's type. The store hands
// back projection declarations whose ResultType already has the structure
// parameters instantiated and the receiver stripped.
func (e *Extractor) structureFields(name store.Name) ([][2]string, error) {
	projections := e.store.Projections(name)
	fields := make([][2]string, 0, len(projections))

	for _, proj := range projections {
		decl, ok := e.store.Get(proj)
		if !ok {
			continue
		}
		typ, err := e.render.Render(decl.ResultType)
		if err != nil {
			return nil, fmt.Errorf("rendering field %s: %w", proj, err)
		}
		fields = append(fields, [2]string{proj.Last(), typ})
	}
	return fields, nil
}

// constructors renders each constructor's parameter-applied type.
// Constructor names stay fully qualified.
func (e *Extractor) constructors(name store.Name) ([][2]string, error) {
	ctorNames := e.store.ConstructorsOf(name)
	ctors := make([][2]string, 0, len(ctorNames))

	for _, ctor := range ctorNames {
		decl, ok := e.store.Get(ctor)
		if !ok {
			continue
		}
		typ, err := e.render.Render(decl.ResultType)
		if err != nil {
			return nil, fmt.Errorf("rendering constructor %s: %w", ctor, err)
		}
		ctors = append(ctors, [2]string{ctor.String(), typ})
	}
	return ctors, nil
}

// filterAttributes intersects attached attributes with the allow-list,
// preserving allow-list order.
func filterAttributes(attached []string) []string {
	set := make(map[string]bool, len(attached))
	for _, a := range attached {
		set[a] = true
	}

	kept := []string{}
	for _, a := range allowedAttributes {
		if set[a] {
			kept = append(kept, a)
		}
	}
	return kept
}
