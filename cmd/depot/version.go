// Version command for the depot CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/depot/pkg/depot"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the depot version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("depot", depot.Version)
	},
}
