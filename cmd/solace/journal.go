package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/unowned-ai/solace/pkg/journal"
	"github.com/unowned-ai/solace/pkg/mood"
)

var (
	noteFlag   string
	moodFlag   string
	daysFlag   int
	formatFlag string
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write and review mood journal entries",
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a journal entry dated today",
	Long:  `Add a journal entry. Without --mood the entry records the current mood.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var m mood.Mood
		if moodFlag != "" {
			parsed, err := mood.Parse(moodFlag)
			if err != nil {
				return err
			}
			m = parsed
		}

		sess, _, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		entry, err := sess.AddEntry(cmd.Context(), m, noteFlag)
		if err != nil {
			return fmt.Errorf("failed to add entry: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added entry %s: %s %s %q\n", entry.ID, entry.Date, mood.Emoji(entry.Mood), entry.Note)
		return nil
	},
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		entries := sess.Journal.Entries()
		if daysFlag > 0 {
			entries = sess.Journal.EntriesForPeriod(daysFlag)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
			return nil
		}

		tw := newTable(cmd.OutOrStdout(), table.Row{"Date", "Mood", "Note", "Written"})
		for _, e := range entries {
			tw.AppendRow(table.Row{e.Date, mood.Emoji(e.Mood) + " " + mood.Label(e.Mood), e.Note, relativeTime(e.Timestamp)})
		}
		tw.Render()
		return nil
	},
}

var journalTrendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Count entries per mood",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		trends := sess.Journal.MoodTrends()
		tw := newTable(cmd.OutOrStdout(), table.Row{"Mood", "Entries"})
		total := 0
		for _, m := range mood.All() {
			tw.AppendRow(table.Row{mood.Emoji(m) + " " + mood.Label(m), trends[m]})
			total += trends[m]
		}
		tw.AppendFooter(table.Row{"Total", total})
		tw.Render()
		return nil
	},
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all entries as JSON, YAML or TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		return sess.Journal.Export(cmd.OutOrStdout(), formatFlag)
	},
}

func init() {
	journalAddCmd.Flags().StringVar(&noteFlag, "note", "", "Entry text (required)")
	journalAddCmd.Flags().StringVar(&moodFlag, "mood", "", "Mood for the entry (default: current mood)")
	journalAddCmd.MarkFlagRequired("note")

	journalListCmd.Flags().IntVar(&daysFlag, "days", 0, "Only show entries from the last N days (0 shows all)")

	journalExportCmd.Flags().StringVar(&formatFlag, "format", "json",
		fmt.Sprintf("Export format (%s)", strings.Join(journal.Formats, ", ")))

	journalCmd.AddCommand(journalAddCmd, journalListCmd, journalTrendsCmd, journalExportCmd)
	rootCmd.AddCommand(journalCmd)
}
