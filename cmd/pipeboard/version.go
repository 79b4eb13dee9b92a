// Version command for the pipeboard CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipeboard/pipeboard/pkg/pipeboard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pipeboard version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pipeboard", pipeboard.Version)
	},
}
