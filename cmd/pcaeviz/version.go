// Version command for the pcaeviz CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pcaeviz version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pcaeviz", vis.Version)
	},
}
