package export

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/prooflib/declgen/internal/batch"
	"github.com/prooflib/declgen/internal/store"
)

// DefaultOutputFile is the fixed filename the documentation site reads.
const DefaultOutputFile = "json_export.txt"

// Exporter owns the output file lifecycle: open, stream the decls array
// through a batch run, append module docs, close. The file handle is
// released on every path; a failed run can leave a partial file behind,
// which the consuming site treats the same as a missing one.
type Exporter struct {
	store      store.Store
	runner     *batch.Runner
	outputPath string
}

// NewExporter creates an exporter writing to outputPath, or to
// DefaultOutputFile in the working directory when outputPath is empty.
func NewExporter(st store.Store, runner *batch.Runner, outputPath string) *Exporter {
	if outputPath == "" {
		outputPath = DefaultOutputFile
	}
	return &Exporter{
		store:      st,
		runner:     runner,
		outputPath: outputPath,
	}
}

// Export runs one full export. Open and write failures are fatal to the
// run and propagate; per-declaration failures were already absorbed by the
// runner.
func (e *Exporter) Export() error {
	runID := uuid.New().String()
	log.Printf("export run %s -> %s", runID, e.outputPath)

	f, err := os.Create(e.outputPath)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	jw := NewJSONWriter(w)

	if err := jw.Begin(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := e.runner.Run(e.store, jw.WriteDecl); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := jw.Finish(e.store.ModuleDocs()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	return nil
}
