package batch

import (
	"log"

	"github.com/prooflib/declgen/internal/extract"
	"github.com/prooflib/declgen/internal/store"
)

// DefaultSplitDepth gives 2^3 = 8 partitions, enough to keep per-partition
// working sets small on large libraries.
const DefaultSplitDepth = 3

// Sink receives extracted records as they are produced.
type Sink func(*extract.DeclInfo) error

// Progress receives per-declaration notifications while a run is underway.
type Progress interface {
	OnStart(totalDecls int)
	OnDecl(name string)
	OnComplete(emitted int)
}

// nopProgress is used when the caller doesn't care about progress.
type nopProgress struct{}

func (nopProgress) OnStart(int)    {}
func (nopProgress) OnDecl(string)  {}
func (nopProgress) OnComplete(int) {}

// Runner enumerates a store's declarations partition by partition and
// streams extracted records to a sink. Partitions exist purely to bound the
// working set per pass; they are processed strictly sequentially and are
// invisible in the output, which follows store enumeration order.
type Runner struct {
	extractor *extract.Extractor
	depth     int
	progress  Progress
}

// NewRunner creates a runner splitting the name list into 2^depth
// partitions. Depth 0 processes everything in a single pass.
func NewRunner(ex *extract.Extractor, depth int, progress Progress) *Runner {
	if depth < 0 {
		depth = 0
	}
	if progress == nil {
		progress = nopProgress{}
	}
	return &Runner{
		extractor: ex,
		depth:     depth,
		progress:  progress,
	}
}

// Run drives extraction over every declaration in the store, forwarding
// each record to sink immediately. It returns whether anything was emitted
// (the caller needs this for comma bookkeeping) and the first sink error.
// Extraction failures abort only the failing declaration and are logged.
func (r *Runner) Run(st store.Store, sink Sink) (bool, error) {
	names := st.AllNames()
	r.progress.OnStart(len(names))

	emitted := 0
	for _, part := range Partition(names, r.depth) {
		for _, name := range part {
			r.progress.OnDecl(name.String())

			decl, ok := st.Get(name)
			if !ok {
				continue
			}

			info, err := r.extractor.Extract(decl)
			if err != nil {
				log.Printf("skipping %s: %v", name, err)
				continue
			}
			if info == nil {
				continue
			}

			if err := sink(info); err != nil {
				return emitted > 0, err
			}
			emitted++
		}
	}

	r.progress.OnComplete(emitted)
	return emitted > 0, nil
}

// Partition splits names into 2^depth contiguous pieces by repeated
// halving. Concatenating the result reproduces the input exactly; empty
// pieces are dropped.
func Partition(names []store.Name, depth int) [][]store.Name {
	parts := [][]store.Name{names}
	for i := 0; i < depth; i++ {
		next := make([][]store.Name, 0, len(parts)*2)
		for _, p := range parts {
			mid := len(p) / 2
			next = append(next, p[:mid], p[mid:])
		}
		parts = next
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if len(p) > 0 {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return nonEmpty
}
