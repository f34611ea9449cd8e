package sqlitestore

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/maypok86/otter"

	"github.com/prooflib/declgen/internal/store"
)

// DefaultCacheSize bounds the decl read cache. Structure fields and
// constructors re-fetch their owning declarations, so lookups repeat.
const DefaultCacheSize = 4096

// Store is a store.Store backed by a declaration database produced by the
// export hook. Reads go through an in-process cache; the database is never
// written through this type.
type Store struct {
	db    *sql.DB
	cache otter.Cache[store.Name, *store.Decl]
}

// Open opens a declaration database. cacheSize <= 0 selects
// DefaultCacheSize.
func Open(path string, cacheSize int) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open declaration database: %w", err)
	}

	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := otter.MustBuilder[store.Name, *store.Decl](cacheSize).Build()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build decl cache: %w", err)
	}

	return &Store{db: db, cache: cache}, nil
}

// NewFromDB wraps an already-open database, used by tests that populate a
// fixture through Writer first.
func NewFromDB(db *sql.DB, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := otter.MustBuilder[store.Name, *store.Decl](cacheSize).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build decl cache: %w", err)
	}
	return &Store{db: db, cache: cache}, nil
}

// Close releases the database handle and the cache.
func (s *Store) Close() error {
	s.cache.Close()
	return s.db.Close()
}

func (s *Store) Get(name store.Name) (*store.Decl, bool) {
	if decl, ok := s.cache.Get(name); ok {
		return decl, true
	}

	decl, err := s.readDecl(name)
	if err != nil || decl == nil {
		return nil, false
	}
	s.cache.Set(name, decl)
	return decl, true
}

func (s *Store) readDecl(name store.Name) (*store.Decl, error) {
	decl := &store.Decl{Name: name}
	var kind string
	var filename sql.NullString
	var line sql.NullInt64

	err := s.db.QueryRow(
		`SELECT kind, result_type, doc, filename, line, synthetic
		 FROM decls WHERE name = ?`, name.String(),
	).Scan(&kind, &decl.ResultType.Raw, &decl.Doc, &filename, &line, &decl.Synthetic)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read decl %s: %w", name, err)
	}

	decl.Kind = store.DeclKind(kind)
	if filename.Valid {
		decl.Location = &store.Location{
			Filename: filename.String,
			Line:     uint(line.Int64),
		}
	}

	rows, err := s.db.Query(
		`SELECT name, kind, type, synthesized FROM binders
		 WHERE decl = ? ORDER BY idx`, name.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read binders of %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var b store.Binder
		var bk string
		if err := rows.Scan(&b.Name, &bk, &b.Type.Raw, &b.Synthesized); err != nil {
			return nil, fmt.Errorf("failed to scan binder of %s: %w", name, err)
		}
		b.Kind = parseBinderKind(bk)
		decl.Binders = append(decl.Binders, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	attrs, err := s.readStrings(
		`SELECT attr FROM attributes WHERE decl = ? ORDER BY idx`, name.String())
	if err != nil {
		return nil, err
	}
	decl.Attributes = attrs

	return decl, nil
}

func (s *Store) AllNames() []store.Name {
	names, err := s.readStrings(`SELECT name FROM decls ORDER BY ord`)
	if err != nil {
		return nil
	}
	return toNames(names)
}

func (s *Store) IsStructure(name store.Name) bool {
	return s.exists(`SELECT 1 FROM projections WHERE structure = ? LIMIT 1`, name)
}

func (s *Store) Projections(name store.Name) []store.Name {
	names, err := s.readStrings(
		`SELECT name FROM projections WHERE structure = ? ORDER BY idx`, name.String())
	if err != nil {
		return nil
	}
	return toNames(names)
}

func (s *Store) IsInductive(name store.Name) bool {
	return s.exists(`SELECT 1 FROM constructors WHERE inductive = ? LIMIT 1`, name) ||
		s.IsStructure(name)
}

func (s *Store) ConstructorsOf(name store.Name) []store.Name {
	names, err := s.readStrings(
		`SELECT name FROM constructors WHERE inductive = ? ORDER BY idx`, name.String())
	if err != nil {
		return nil
	}
	return toNames(names)
}

func (s *Store) ModuleDocs() []store.ModuleDoc {
	rows, err := s.db.Query(
		`SELECT filename, line, doc FROM module_docs ORDER BY filename, idx`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var docs []store.ModuleDoc
	for rows.Next() {
		var filename, doc string
		var line uint
		if err := rows.Scan(&filename, &line, &doc); err != nil {
			return nil
		}
		if n := len(docs); n > 0 && docs[n-1].Filename == filename {
			docs[n-1].Entries = append(docs[n-1].Entries, store.DocEntry{Line: line, Doc: doc})
			continue
		}
		docs = append(docs, store.ModuleDoc{
			Filename: filename,
			Entries:  []store.DocEntry{{Line: line, Doc: doc}},
		})
	}
	return docs
}

func (s *Store) exists(query string, name store.Name) bool {
	var one int
	err := s.db.QueryRow(query, name.String()).Scan(&one)
	return err == nil
}

func (s *Store) readStrings(query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func parseBinderKind(s string) store.BinderKind {
	switch s {
	case "implicit":
		return store.BinderImplicit
	case "strict_implicit":
		return store.BinderStrictImplicit
	case "inst_implicit":
		return store.BinderInstImplicit
	case "aux":
		return store.BinderAux
	default:
		return store.BinderExplicit
	}
}

func toNames(ss []string) []store.Name {
	names := make([]store.Name, len(ss))
	for i, s := range ss {
		names[i] = store.Name(s)
	}
	return names
}
