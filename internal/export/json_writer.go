package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/prooflib/declgen/internal/extract"
	"github.com/prooflib/declgen/internal/store"
)

// JSONWriter streams the export document: a single object with the keys
// "decls" (array, one element per record, emitted as records arrive) and
// "mod_docs" (object keyed by filename), in that order. Records are written
// incrementally with manual comma bookkeeping, never buffered as a whole.
type JSONWriter struct {
	w     io.Writer
	first bool
}

// NewJSONWriter creates a writer over w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, first: true}
}

// Begin writes the document prefix and opens the decls array.
func (jw *JSONWriter) Begin() error {
	_, err := io.WriteString(jw.w, "{ \"decls\":[\n")
	return err
}

// WriteDecl appends one record to the decls array, inserting the
// separating comma before every record except the first.
func (jw *JSONWriter) WriteDecl(d *extract.DeclInfo) error {
	var sb strings.Builder
	if jw.first {
		jw.first = false
	} else {
		sb.WriteString(",\n")
	}
	writeDeclObject(&sb, d)

	_, err := io.WriteString(jw.w, sb.String())
	return err
}

// Finish closes the decls array, writes the mod_docs object and the
// document suffix.
func (jw *JSONWriter) Finish(docs []store.ModuleDoc) error {
	var sb strings.Builder
	sb.WriteString("\n],\n\"mod_docs\": {")
	for i, md := range docs {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeString(&sb, md.Filename)
		sb.WriteString(":[")
		for j, entry := range md.Entries {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString("{\"line\":")
			sb.WriteString(strconv.FormatUint(uint64(entry.Line), 10))
			sb.WriteString(",\"doc\":")
			writeString(&sb, entry.Doc)
			sb.WriteByte('}')
		}
		sb.WriteByte(']')
	}
	sb.WriteString("}}")

	_, err := io.WriteString(jw.w, sb.String())
	return err
}

// writeDeclObject serializes one record with the exact key order the
// consuming site expects.
func writeDeclObject(sb *strings.Builder, d *extract.DeclInfo) {
	sb.WriteString("{\"name\":")
	writeString(sb, d.Name)
	sb.WriteString(",\"args\":")
	writeStringArray(sb, d.Args)
	sb.WriteString(",\"type\":")
	writeString(sb, d.Type)
	sb.WriteString(",\"doc_string\":")
	writeString(sb, d.DocString)
	sb.WriteString(",\"filename\":")
	writeString(sb, d.Filename)
	sb.WriteString(",\"line\":")
	sb.WriteString(strconv.FormatUint(uint64(d.Line), 10))
	sb.WriteString(",\"attributes\":")
	writeStringArray(sb, d.Attributes)
	sb.WriteString(",\"kind\":")
	writeString(sb, d.Kind)
	sb.WriteString(",\"structure_fields\":")
	writePairArray(sb, d.StructureFields)
	sb.WriteString(",\"constructors\":")
	writePairArray(sb, d.Constructors)
	sb.WriteByte('}')
}

// Escape handles double quotes only. The consuming site was built against
// this exact behavior; backslashes and control characters pass through
// unescaped, which breaks the document if they ever appear in a string.
// TODO: switch both this and the site to full JSON escaping in one step.
func Escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	sb.WriteString(Escape(s))
	sb.WriteByte('"')
}

func writeStringArray(sb *strings.Builder, ss []string) {
	sb.WriteByte('[')
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeString(sb, s)
	}
	sb.WriteByte(']')
}

func writePairArray(sb *strings.Builder, pairs [][2]string) {
	sb.WriteByte('[')
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('[')
		writeString(sb, p[0])
		sb.WriteByte(',')
		writeString(sb, p[1])
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
}
