package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ExportProgressReporter implements batch.Progress with a progress bar.
type ExportProgressReporter struct {
	quiet     bool
	bar       *progressbar.ProgressBar
	startTime time.Time
}

// NewExportProgressReporter creates a new CLI progress reporter.
func NewExportProgressReporter(quiet bool) *ExportProgressReporter {
	return &ExportProgressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
}

func (p *ExportProgressReporter) OnStart(totalDecls int) {
	if p.quiet {
		return
	}
	log.Printf("Processing %d declarations\n", totalDecls)

	p.bar = progressbar.NewOptions(totalDecls,
		progressbar.OptionSetDescription("Exporting declarations"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("decls/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (p *ExportProgressReporter) OnDecl(name string) {
	if p.quiet || p.bar == nil {
		return
	}
	p.bar.Add(1)
}

func (p *ExportProgressReporter) OnComplete(emitted int) {
	if p.quiet {
		return
	}
	elapsed := time.Since(p.startTime)
	fmt.Printf("Export complete: %d records in %.2fs\n", emitted, elapsed.Seconds())
}
