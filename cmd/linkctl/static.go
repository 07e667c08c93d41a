package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"linkctl/internal/control"
)

var (
	staticFile string
	staticMbps float64
)

var staticCmd = &cobra.Command{
	Use:   "static",
	Short: "Write a fixed control record and exit",
	Long:  "static initializes a brand-new control file with a constant bandwidth and the link running. It refuses to overwrite an existing file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if staticMbps <= 0 {
			return fmt.Errorf("bandwidth must be positive, got %g", staticMbps)
		}
		if err := control.WriteStatic(staticFile, staticMbps); err != nil {
			return err
		}
		fmt.Printf("Wrote %g Mbps to %s\n", staticMbps, staticFile)
		return nil
	},
}

func init() {
	staticCmd.Flags().StringVarP(&staticFile, "file", "f", "/tmp/linkctl-static", "Path to the control file to create")
	staticCmd.Flags().Float64Var(&staticMbps, "mbps", 12.032, "Constant bandwidth of the link in Mbps")
}
