package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "linkctl",
	Short: "Interactive link control for network emulation",
	Long:  "linkctl steers the bandwidth and up/down state of an emulated link in real time, publishing the control signal through a shared memory-mapped file.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(controlCmd)
	rootCmd.AddCommand(staticCmd)
	rootCmd.AddCommand(portsCmd)
}
