package main

import (
	"fmt"
	"os"

	"github.com/caddan/ordna/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [directory]",
	Short: "Run one interactive organization session",
	Long: `Starts a session against the configured root: the model proposes a
plan, you review it, and approved actions run through the filesystem backend.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target, _ := cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			target = args[0]
		}

		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		operatorContext, _ := cmd.Flags().GetString("context")
		listen, _ := cmd.Flags().GetString("listen")

		err := cli.RunSession(cli.RunOptions{
			ConfigPath: configPath,
			Target:     target,
			Context:    operatorContext,
			Listen:     listen,
			Debug:      debug,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("dir", "", "Directory to organize (default: prompt)")
	runCmd.Flags().String("context", "", "Free-text context for how things should be organized")
	runCmd.Flags().String("listen", "", "Address for the observability sidecar (e.g. :8080)")

	// Make 'run' the default if no command is provided
	rootCmd.Run = runCmd.Run
	rootCmd.Args = runCmd.Args
}
