package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// Dump is the on-disk JSON form of a symbol store, as produced by the
// proof assistant's export hook. Declarations appear in enumeration order.
type Dump struct {
	Decls      []DumpDecl          `json:"decls"`
	Structures map[string][]string `json:"structures"`
	Inductives map[string][]string `json:"inductives"`
	ModuleDocs []DumpModuleDoc     `json:"module_docs"`
}

// DumpDecl is one declaration in a dump file.
type DumpDecl struct {
	Name       string       `json:"name"`
	Kind       string       `json:"kind"`
	Binders    []DumpBinder `json:"binders"`
	ResultType string       `json:"result_type"`
	Doc        string       `json:"doc,omitempty"`
	Filename   string       `json:"filename,omitempty"`
	Line       uint         `json:"line,omitempty"`
	Attributes []string     `json:"attributes,omitempty"`
	Synthetic  bool         `json:"synthetic,omitempty"`
}

// DumpBinder is one bound parameter in a dump file.
type DumpBinder struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Type        string `json:"type"`
	Synthesized bool   `json:"synthesized,omitempty"`
}

// DumpModuleDoc is one file's module docs in a dump file.
type DumpModuleDoc struct {
	Filename string     `json:"filename"`
	Entries  []DocEntry `json:"entries"`
}

var binderKinds = map[string]BinderKind{
	"explicit":        BinderExplicit,
	"implicit":        BinderImplicit,
	"strict_implicit": BinderStrictImplicit,
	"inst_implicit":   BinderInstImplicit,
	"aux":             BinderAux,
}

var declKinds = map[string]DeclKind{
	"def":  KindDef,
	"thm":  KindTheorem,
	"cnst": KindConstant,
	"ax":   KindAxiom,
}

// LoadDump reads a JSON dump file into a MemoryStore.
func LoadDump(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store dump: %w", err)
	}

	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("failed to parse store dump %s: %w", path, err)
	}

	return FromDump(&dump)
}

// FromDump converts a parsed dump into a MemoryStore.
func FromDump(dump *Dump) (*MemoryStore, error) {
	m := NewMemoryStore()

	for _, dd := range dump.Decls {
		kind, ok := declKinds[dd.Kind]
		if !ok {
			return nil, fmt.Errorf("declaration %s: unknown kind %q", dd.Name, dd.Kind)
		}

		decl := &Decl{
			Name:       Name(dd.Name),
			Kind:       kind,
			ResultType: Expr{Raw: dd.ResultType},
			Doc:        dd.Doc,
			Attributes: dd.Attributes,
			Synthetic:  dd.Synthetic,
		}
		if dd.Filename != "" {
			decl.Location = &Location{Filename: dd.Filename, Line: dd.Line}
		}
		for _, db := range dd.Binders {
			bk, ok := binderKinds[db.Kind]
			if !ok {
				return nil, fmt.Errorf("declaration %s: unknown binder kind %q", dd.Name, db.Kind)
			}
			decl.Binders = append(decl.Binders, Binder{
				Name:        db.Name,
				Kind:        bk,
				Type:        Expr{Raw: db.Type},
				Synthesized: db.Synthesized,
			})
		}
		m.Add(decl)
	}

	for name, projections := range dump.Structures {
		m.MarkStructure(Name(name), toNames(projections)...)
	}
	for name, constructors := range dump.Inductives {
		m.MarkInductive(Name(name), toNames(constructors)...)
	}
	for _, md := range dump.ModuleDocs {
		for _, entry := range md.Entries {
			m.AddModuleDoc(md.Filename, entry.Line, entry.Doc)
		}
	}

	return m, nil
}

func toNames(ss []string) []Name {
	names := make([]Name, len(ss))
	for i, s := range ss {
		names[i] = Name(s)
	}
	return names
}
