package sqlitestore

import (
	"database/sql"
	"fmt"
)

const createDeclsTable = `
CREATE TABLE IF NOT EXISTS decls (
	name TEXT PRIMARY KEY,
	ord INTEGER NOT NULL,
	kind TEXT NOT NULL,
	result_type TEXT NOT NULL,
	doc TEXT NOT NULL DEFAULT '',
	filename TEXT,
	line INTEGER,
	synthetic INTEGER NOT NULL DEFAULT 0
)`

const createBindersTable = `
CREATE TABLE IF NOT EXISTS binders (
	decl TEXT NOT NULL REFERENCES decls(name),
	idx INTEGER NOT NULL,
	name TEXT NOT NULL,
	kind TEXT NOT NULL,
	type TEXT NOT NULL,
	synthesized INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (decl, idx)
)`

const createAttributesTable = `
CREATE TABLE IF NOT EXISTS attributes (
	decl TEXT NOT NULL REFERENCES decls(name),
	idx INTEGER NOT NULL,
	attr TEXT NOT NULL,
	PRIMARY KEY (decl, idx)
)`

const createProjectionsTable = `
CREATE TABLE IF NOT EXISTS projections (
	structure TEXT NOT NULL,
	idx INTEGER NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY (structure, idx)
)`

const createConstructorsTable = `
CREATE TABLE IF NOT EXISTS constructors (
	inductive TEXT NOT NULL,
	idx INTEGER NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY (inductive, idx)
)`

const createModuleDocsTable = `
CREATE TABLE IF NOT EXISTS module_docs (
	filename TEXT NOT NULL,
	idx INTEGER NOT NULL,
	line INTEGER NOT NULL,
	doc TEXT NOT NULL,
	PRIMARY KEY (filename, idx)
)`

// CreateSchema creates all tables for a declaration database. All schema
// creation succeeds or fails together.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	if _, err := tx.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	tables := []struct {
		name string
		ddl  string
	}{
		{"decls", createDeclsTable},
		{"binders", createBindersTable},
		{"attributes", createAttributesTable},
		{"projections", createProjectionsTable},
		{"constructors", createConstructorsTable},
		{"module_docs", createModuleDocsTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	return nil
}
