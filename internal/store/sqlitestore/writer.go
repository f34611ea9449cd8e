package sqlitestore

import (
	"database/sql"
	"fmt"

	"github.com/prooflib/declgen/internal/store"
)

// Writer populates a declaration database. It exists for the export hook
// that converts a store dump into SQLite, and for test fixtures.
type Writer struct {
	db   *sql.DB
	next int
}

// NewWriter creates a Writer over db. The schema must already exist.
func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// WriteDecl inserts one declaration; insertion order defines the
// enumeration order readers observe.
func (w *Writer) WriteDecl(decl *store.Decl) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var filename interface{}
	var line interface{}
	if decl.Location != nil {
		filename = decl.Location.Filename
		line = decl.Location.Line
	}

	_, err = tx.Exec(
		`INSERT INTO decls (name, ord, kind, result_type, doc, filename, line, synthetic)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		decl.Name.String(), w.next, string(decl.Kind), decl.ResultType.Raw,
		decl.Doc, filename, line, decl.Synthetic,
	)
	if err != nil {
		return fmt.Errorf("failed to insert decl %s: %w", decl.Name, err)
	}

	for i, b := range decl.Binders {
		_, err = tx.Exec(
			`INSERT INTO binders (decl, idx, name, kind, type, synthesized)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			decl.Name.String(), i, b.Name, binderKindString(b.Kind), b.Type.Raw, b.Synthesized,
		)
		if err != nil {
			return fmt.Errorf("failed to insert binder %d of %s: %w", i, decl.Name, err)
		}
	}

	for i, attr := range decl.Attributes {
		_, err = tx.Exec(
			`INSERT INTO attributes (decl, idx, attr) VALUES (?, ?, ?)`,
			decl.Name.String(), i, attr,
		)
		if err != nil {
			return fmt.Errorf("failed to insert attribute of %s: %w", decl.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit decl %s: %w", decl.Name, err)
	}
	w.next++
	return nil
}

// WriteStructure records name as a structure with the given projections.
func (w *Writer) WriteStructure(name store.Name, projections []store.Name) error {
	return w.writeMembers("projections", "structure", name, projections)
}

// WriteInductive records name as a plain inductive with the given
// constructors.
func (w *Writer) WriteInductive(name store.Name, constructors []store.Name) error {
	return w.writeMembers("constructors", "inductive", name, constructors)
}

func (w *Writer) writeMembers(table, ownerCol string, owner store.Name, members []store.Name) error {
	for i, member := range members {
		_, err := w.db.Exec(
			fmt.Sprintf(`INSERT INTO %s (%s, idx, name) VALUES (?, ?, ?)`, table, ownerCol),
			owner.String(), i, member.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert into %s for %s: %w", table, owner, err)
		}
	}
	return nil
}

// WriteModuleDoc appends one module-doc entry for filename.
func (w *Writer) WriteModuleDoc(filename string, line uint, doc string) error {
	var next int
	err := w.db.QueryRow(
		`SELECT COALESCE(MAX(idx)+1, 0) FROM module_docs WHERE filename = ?`, filename,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to count module docs for %s: %w", filename, err)
	}

	_, err = w.db.Exec(
		`INSERT INTO module_docs (filename, idx, line, doc) VALUES (?, ?, ?, ?)`,
		filename, next, line, doc,
	)
	if err != nil {
		return fmt.Errorf("failed to insert module doc for %s: %w", filename, err)
	}
	return nil
}

func binderKindString(k store.BinderKind) string {
	switch k {
	case store.BinderImplicit:
		return "implicit"
	case store.BinderStrictImplicit:
		return "strict_implicit"
	case store.BinderInstImplicit:
		return "inst_implicit"
	case store.BinderAux:
		return "aux"
	default:
		return "explicit"
	}
}
