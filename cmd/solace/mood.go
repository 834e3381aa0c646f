package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/unowned-ai/solace/pkg/mood"
)

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Show or change how you are feeling",
}

var moodShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current mood",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		m := sess.Mood.Current()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mood.Emoji(m), mood.Label(m))
		return nil
	},
}

var moodSetCmd = &cobra.Command{
	Use:       "set [mood]",
	Short:     "Set the current mood",
	Args:      cobra.ExactArgs(1),
	ValidArgs: moodNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mood.Parse(args[0])
		if err != nil {
			return err
		}

		sess, _, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		if err := sess.SetMood(cmd.Context(), m); err != nil {
			return fmt.Errorf("failed to set mood: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mood set to %s %s\n", mood.Emoji(m), mood.Label(m))
		return nil
	},
}

var moodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the selectable moods",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := newTable(cmd.OutOrStdout(), table.Row{"Mood", "Emoji", "Label"})
		for _, m := range mood.All() {
			tw.AppendRow(table.Row{m, mood.Emoji(m), mood.Label(m)})
		}
		tw.Render()
		return nil
	},
}

func moodNames() []string {
	all := mood.All()
	names := make([]string, len(all))
	for i, m := range all {
		names[i] = m.String()
	}
	return names
}

func init() {
	moodCmd.AddCommand(moodShowCmd, moodSetCmd, moodListCmd)
	rootCmd.AddCommand(moodCmd)
}
