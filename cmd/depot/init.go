// Init command for the depot CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/depot/internal/snapshot"
	"github.com/mesh-intelligence/depot/pkg/depot"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a depot workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return systemErr(fmt.Errorf("init: %w", err))
		}
		if err := ensureConfigDir(configDir); err != nil {
			return systemErr(fmt.Errorf("init: %w", err))
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return systemErr(fmt.Errorf("init: %w", err))
		}

		workspace, err := resolveWorkspace()
		if err != nil {
			return systemErr(fmt.Errorf("init: %w", err))
		}

		// Refuse to clobber an existing depot: init only seeds a fresh
		// workspace.
		if latest := snapshot.Latest(workspace); latest != "" {
			return fmt.Errorf("workspace already initialized: %s", latest)
		}

		if err := saveManager(depot.NewSeededManager()); err != nil {
			return err
		}

		fmt.Println("Depot initialized successfully")
		fmt.Println("  config:   ", configDir)
		fmt.Println("  workspace:", workspace)
		return nil
	},
}
