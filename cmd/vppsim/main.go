package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vppsim",
	Short: "Drive the video postprocessor with a simulated backend",
	Long: `vppsim runs synthetic frames through a postprocessing element backed by
the simulated Filter Engine and reports what came out.

Examples:
  vppsim run --frames 10 --interlace-mode interleaved
  vppsim run --preset broadcast.yaml --backend bob-only
  vppsim run --backend none -v`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetCount("verbose")
		switch {
		case verbose >= 2:
			logrus.SetLevel(logrus.TraceLevel)
		case verbose == 1:
			logrus.SetLevel(logrus.DebugLevel)
		default:
			logrus.SetLevel(logrus.InfoLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (-v, -vv)")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
