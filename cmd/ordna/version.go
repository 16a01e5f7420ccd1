package main

import (
	"fmt"
	"strings"

	"github.com/caddan/ordna"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ordna",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ordna version %s\n", strings.TrimSpace(ordna.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
