package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Deletes the cached assignments.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(viewFlags{})
		if err != nil {
			return err
		}
		defer a.Close()

		err = a.store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		slog.Info("cleared cache", "file", config.Cache.File, "url", config.Cache.Url)
		return nil
	},
}
