package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var lecturesFlags viewFlags

func init() {
	lecturesFlags.registerTimetable(lecturesCmd)
	rootCmd.AddCommand(lecturesCmd)
}

var lecturesCmd = &cobra.Command{
	Use:   "lectures [--timetable <file.html>]",
	Short: "Prints the ids of the lectures found in the timetable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(lecturesFlags)
		if err != nil {
			return err
		}
		defer a.Close()

		ids, err := a.pipeline.Lectures(cmd.Context())
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "講義ID"})
		for i, id := range ids {
			t.AppendRow(table.Row{i + 1, id})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
