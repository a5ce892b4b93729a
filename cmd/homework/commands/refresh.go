package commands

import (
	"errors"
	"homework-assist/internal/homework"

	"github.com/spf13/cobra"
)

var refreshFlags viewFlags

func init() {
	refreshFlags.register(refreshCmd)
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh [--format table|markdown|html|csv] [--lecture <name>] [--timetable <file.html>]",
	Short: "Fetches the pending assignments again and updates the cache.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(refreshFlags)
		if err != nil {
			return err
		}
		defer a.Close()

		err = a.gate.Refresh(cmd.Context())
		// the warning has already been shown
		if errors.Is(err, homework.ErrRefreshTooSoon) {
			return nil
		}
		return err
	},
}
