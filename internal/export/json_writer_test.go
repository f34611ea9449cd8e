package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflib/declgen/internal/extract"
	"github.com/prooflib/declgen/internal/store"
)

// Test Plan for JSONWriter:
// - Zero, one, and many records all produce valid JSON with correct commas
// - The document has exactly the top-level keys decls and mod_docs
// - DeclInfo keys appear in the exact serialized order
// - Fields and constructors serialize as 2-element string arrays
// - Double quotes are escaped; backslashes and newlines are not (known gap
//   kept for compatibility with the consuming site)
// - mod_docs groups entries under their filename

func record(name string) *extract.DeclInfo {
	return &extract.DeclInfo{
		Name:            name,
		Args:            []string{"(n : ℕ)"},
		Type:            "ℕ",
		Attributes:      []string{},
		Kind:            "def",
		Filename:        "src/a.lean",
		Line:            3,
		StructureFields: [][2]string{},
		Constructors:    [][2]string{},
	}
}

func writeDocument(t *testing.T, records []*extract.DeclInfo, docs []store.ModuleDoc) string {
	t.Helper()
	var sb strings.Builder
	jw := NewJSONWriter(&sb)
	require.NoError(t, jw.Begin())
	for _, r := range records {
		require.NoError(t, jw.WriteDecl(r))
	}
	require.NoError(t, jw.Finish(docs))
	return sb.String()
}

func TestJSONWriter_EmptyDocument(t *testing.T) {
	t.Parallel()

	out := writeDocument(t, nil, nil)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc, 2)
	assert.Contains(t, doc, "decls")
	assert.Contains(t, doc, "mod_docs")
	assert.JSONEq(t, "[]", string(doc["decls"]))
	assert.JSONEq(t, "{}", string(doc["mod_docs"]))
}

func TestJSONWriter_CommaPlacement(t *testing.T) {
	t.Parallel()

	for _, count := range []int{1, 2, 5} {
		var records []*extract.DeclInfo
		for i := 0; i < count; i++ {
			records = append(records, record(strings.Repeat("x", i+1)))
		}
		out := writeDocument(t, records, nil)

		var doc struct {
			Decls []extract.DeclInfo `json:"decls"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc), "count %d: %s", count, out)
		require.Len(t, doc.Decls, count)

		// Comma before every record except the first.
		assert.Equal(t, count-1, strings.Count(out, ",\n{\"name\""), "count %d", count)
	}
}

func TestJSONWriter_KeyOrder(t *testing.T) {
	t.Parallel()

	r := record("nat.double")
	r.StructureFields = [][2]string{{"x", "ℕ"}}
	out := writeDocument(t, []*extract.DeclInfo{r}, nil)

	keys := []string{
		`"name"`, `"args"`, `"type"`, `"doc_string"`, `"filename"`,
		`"line"`, `"attributes"`, `"kind"`, `"structure_fields"`, `"constructors"`,
	}
	last := -1
	for _, key := range keys {
		idx := strings.Index(out, key+":")
		require.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}

	assert.Contains(t, out, `"structure_fields":[["x","ℕ"]]`)
}

func TestJSONWriter_EscapesQuotesOnly(t *testing.T) {
	t.Parallel()

	r := record("nat.double")
	r.DocString = `He said "hi"`
	out := writeDocument(t, []*extract.DeclInfo{r}, nil)

	assert.Contains(t, out, `He said \"hi\"`)

	var doc struct {
		Decls []extract.DeclInfo `json:"decls"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Decls, 1)
	assert.Equal(t, `He said "hi"`, doc.Decls[0].DocString)
}

func TestEscape_KnownGaps(t *testing.T) {
	t.Parallel()

	// Backslashes and newlines pass through unescaped. This breaks the
	// document when they appear; kept byte-for-byte for the consuming site.
	assert.Equal(t, `a\b`, Escape(`a\b`))
	assert.Equal(t, "a\nb", Escape("a\nb"))
	assert.Equal(t, `say \"hi\"`, Escape(`say "hi"`))
}

func TestJSONWriter_ModuleDocs(t *testing.T) {
	t.Parallel()

	docs := []store.ModuleDoc{
		{Filename: "src/a.lean", Entries: []store.DocEntry{
			{Line: 1, Doc: "Basics."},
			{Line: 40, Doc: "Lemmas."},
		}},
		{Filename: "src/b.lean", Entries: []store.DocEntry{
			{Line: 5, Doc: "Orders."},
		}},
	}

	out := writeDocument(t, nil, docs)

	var doc struct {
		ModDocs map[string][]store.DocEntry `json:"mod_docs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.ModDocs, 2)
	assert.Equal(t, docs[0].Entries, doc.ModDocs["src/a.lean"])
	assert.Equal(t, docs[1].Entries, doc.ModDocs["src/b.lean"])
}
