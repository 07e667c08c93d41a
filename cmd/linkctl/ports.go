package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"linkctl/internal/input"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List available MIDI ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer input.Shutdown()
		ins, outs := input.Ports()

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Port\tName (IN)")
		for _, p := range ins {
			fmt.Fprintln(tw, p)
		}
		fmt.Fprintln(tw, "\nPort\tName (OUT)")
		for _, p := range outs {
			fmt.Fprintln(tw, p)
		}
		return tw.Flush()
	},
}
