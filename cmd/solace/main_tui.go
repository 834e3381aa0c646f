//go:build tui

package main

import (
	"github.com/spf13/cobra"

	"github.com/unowned-ai/solace/pkg/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show terminal UI",
	Long:  `Display the interactive terminal UI: mood and journal, tasks and badges, chat and breathing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, path, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		return tui.ShowTUI(sess, path)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
