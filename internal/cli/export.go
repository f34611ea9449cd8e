package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prooflib/declgen/internal/batch"
	"github.com/prooflib/declgen/internal/config"
	"github.com/prooflib/declgen/internal/export"
	"github.com/prooflib/declgen/internal/extract"
	"github.com/prooflib/declgen/internal/store"
	"github.com/prooflib/declgen/internal/store/sqlitestore"
	"github.com/prooflib/declgen/internal/watch"
)

var (
	quietFlag bool
	watchFlag bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export declaration metadata to the documentation JSON file",
	Long: `Export walks the symbol store and writes json_export.txt in the
current working directory.

The exporter:
  - Enumerates every declaration in the store
  - Skips imported, internal, and auto-generated declarations
  - Renders binder groups, result types, fields, and constructors
  - Streams records into a single JSON document with module docs

Examples:
  # Export using .declgen/config.yml
  declgen export

  # Export without progress output
  declgen export --quiet

  # Re-export whenever the store file changes
  declgen export --watch
`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	exportCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the store file and re-export on change")
}

func runExport(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling export...")
		cancel()
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	filter, err := extract.NewFileFilter(cfg.Export.Sources)
	if err != nil {
		return fmt.Errorf("invalid source patterns: %w", err)
	}

	run := func() error {
		progress := NewExportProgressReporter(quietFlag)
		extractor := extract.NewExtractor(st, extract.RawRenderer{}, filter)
		runner := batch.NewRunner(extractor, cfg.Export.SplitDepth, progress)
		exporter := export.NewExporter(st, runner, cfg.Export.Output)
		return exporter.Export()
	}

	if err := run(); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if !watchFlag {
		return nil
	}

	if !quietFlag {
		log.Println("Watching store file for changes...")
	}
	watcher, err := watch.New(cfg.Store.Path, run)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch mode failed: %w", err)
	}
	return nil
}

// openStore opens the configured store backend. The returned closer is a
// no-op for the in-memory backend.
func openStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case "sqlite":
		st, err := sqlitestore.Open(cfg.Store.Path, cfg.Store.CacheSize)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open store: %w", err)
		}
		return st, func() { st.Close() }, nil
	default:
		st, err := store.LoadDump(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load store: %w", err)
		}
		return st, func() {}, nil
	}
}
