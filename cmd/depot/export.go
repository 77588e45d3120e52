// Export command: build the SQLite report database from the current state.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/depot/internal/sqlite"
)

var flagExportPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the depot to a SQLite report database",
	Long: `Export rebuilds a SQLite database from the current depot state for ad-hoc
querying and reporting. The database is derived state: each export replaces
it entirely, and snapshots remain the source of truth.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportPath, "out", "", "database path (default: <workspace>/report.db)")
}

func runExport(cmd *cobra.Command, args []string) error {
	m, err := loadManager()
	if err != nil {
		return err
	}

	path := flagExportPath
	if path == "" {
		workspace, err := resolveWorkspace()
		if err != nil {
			return systemErr(fmt.Errorf("resolve workspace: %w", err))
		}
		path = filepath.Join(workspace, "report.db")
	}

	if err := sqlite.Export(m, path); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	db, err := sqlite.Open(path)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer db.Close()
	open, err := db.OpenLoanCount()
	if err != nil {
		return fmt.Errorf("query report: %w", err)
	}

	fmt.Printf("Exported %d items, %d open loans to %s\n", len(m.ActiveItems())+len(m.RetiredItems()), open, path)
	return nil
}
