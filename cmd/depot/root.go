// Root command for the depot CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/depot/internal/paths"
	"github.com/mesh-intelligence/depot/pkg/depot"
)

// Exit codes. User errors (bad arguments, unknown items) exit 1, system
// errors (unreadable workspace, failed writes) exit 2.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagWorkspace string
	flagJSON      bool
)

// configWorkspace holds the workspace value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configWorkspace string

var rootCmd = &cobra.Command{
	Use:     "depot",
	Short:   "Depot tracks a fleet of loanable items",
	Version: depot.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configWorkspace = cfg.GetString(cfgKeyWorkspace)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagWorkspace, "workspace", "", "workspace directory (default: $(CWD)/.depot-workspace)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(propertiesCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(lendCmd)
	rootCmd.AddCommand(returnCmd)
	rootCmd.AddCommand(exportCmd)
}

// resolveWorkspace returns the workspace directory following the precedence:
// --workspace flag > config.yaml workspace > DEPOT_WORKSPACE env > default.
func resolveWorkspace() (string, error) {
	return paths.ResolveWorkspace(flagWorkspace, configWorkspace)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > DEPOT_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
