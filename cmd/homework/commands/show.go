package commands

import (
	"github.com/spf13/cobra"
)

var showFlags viewFlags

func init() {
	showFlags.register(showCmd)
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [--format table|markdown|html|csv] [--lecture <name>] [--timetable <file.html>]",
	Short: "Prints the pending assignments, from the cache if there is one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(showFlags)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.gate.Load(cmd.Context())
	},
}
