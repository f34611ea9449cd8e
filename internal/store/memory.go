package store

// MemoryStore is an in-memory Store implementation. It backs small exports
// loaded from a JSON dump and all of the test fixtures.
type MemoryStore struct {
	order      []Name
	decls      map[Name]*Decl
	structures map[Name][]Name
	inductives map[Name][]Name
	modDocs    []ModuleDoc
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		decls:      make(map[Name]*Decl),
		structures: make(map[Name][]Name),
		inductives: make(map[Name][]Name),
	}
}

// Add registers a declaration. First-add order defines enumeration order.
func (m *MemoryStore) Add(decl *Decl) {
	if _, ok := m.decls[decl.Name]; !ok {
		m.order = append(m.order, decl.Name)
	}
	m.decls[decl.Name] = decl
}

// MarkStructure records name as a structure with the given projections.
// Projection declarations must be added separately via Add.
func (m *MemoryStore) MarkStructure(name Name, projections ...Name) {
	m.structures[name] = projections
}

// MarkInductive records name as a plain inductive type with the given
// constructors. Constructor declarations must be added separately via Add.
func (m *MemoryStore) MarkInductive(name Name, constructors ...Name) {
	m.inductives[name] = constructors
}

// AddModuleDoc appends one module-doc entry for filename, keeping entries
// for the same file grouped together.
func (m *MemoryStore) AddModuleDoc(filename string, line uint, doc string) {
	for i := range m.modDocs {
		if m.modDocs[i].Filename == filename {
			m.modDocs[i].Entries = append(m.modDocs[i].Entries, DocEntry{Line: line, Doc: doc})
			return
		}
	}
	m.modDocs = append(m.modDocs, ModuleDoc{
		Filename: filename,
		Entries:  []DocEntry{{Line: line, Doc: doc}},
	})
}

func (m *MemoryStore) Get(name Name) (*Decl, bool) {
	d, ok := m.decls[name]
	return d, ok
}

func (m *MemoryStore) AllNames() []Name {
	names := make([]Name, len(m.order))
	copy(names, m.order)
	return names
}

func (m *MemoryStore) IsStructure(name Name) bool {
	_, ok := m.structures[name]
	return ok
}

func (m *MemoryStore) Projections(name Name) []Name {
	return m.structures[name]
}

func (m *MemoryStore) IsInductive(name Name) bool {
	if _, ok := m.inductives[name]; ok {
		return true
	}
	// Structures are inductive types too; extraction relies on IsStructure
	// taking precedence.
	_, ok := m.structures[name]
	return ok
}

func (m *MemoryStore) ConstructorsOf(name Name) []Name {
	return m.inductives[name]
}

func (m *MemoryStore) ModuleDocs() []ModuleDoc {
	return m.modDocs
}
