package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List and complete daily wellness tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wellness tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		tw := newTable(cmd.OutOrStdout(), table.Row{"ID", "Title", "Category", "Points", "Done"})
		for _, t := range sess.Game.Tasks() {
			tw.AppendRow(table.Row{t.ID, t.Title, t.Category, t.Points, checkmark(t.Completed)})
		}
		lp := sess.Game.LevelProgress()
		tw.AppendFooter(table.Row{"", "", "Total", sess.Game.Points(), fmt.Sprintf("Level %d", lp.Level)})
		tw.Render()
		return nil
	},
}

var tasksCompleteCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Complete a task and collect its points",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		before, _ := sess.Game.Task(args[0])
		task, unlocked, err := sess.CompleteTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if before.Completed {
			fmt.Fprintf(out, "%q is already completed.\n", task.Title)
			return nil
		}
		fmt.Fprintf(out, "Completed %q: +%d points (total %d, level %d)\n",
			task.Title, task.Points, sess.Game.Points(), sess.Game.Level())
		for _, b := range unlocked {
			fmt.Fprintf(out, "Badge unlocked: %s (%s) - %s\n", b.Name, b.Tier, b.Description)
		}
		return nil
	},
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show badges and progress towards them",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		tw := newTable(cmd.OutOrStdout(), table.Row{"Badge", "Tier", "Required", "Progress", "Unlocked"})
		for _, b := range sess.Game.Badges() {
			pct, err := sess.Game.BadgeProgress(b.ID)
			if err != nil {
				return err
			}
			tw.AppendRow(table.Row{b.Name, b.Tier, b.PointsRequired, fmt.Sprintf("%.0f%%", pct), checkmark(b.Unlocked)})
		}
		tw.Render()
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the wellness score and how it is made up",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		b := sess.Score()
		tw := newTable(cmd.OutOrStdout(), table.Row{"Component", "Input", "Points"})
		tw.AppendRow(table.Row{"Tasks", fmt.Sprintf("%d/%d completed", b.CompletedTasks, b.TotalTasks), fmt.Sprintf("%.1f", b.TaskScore)})
		tw.AppendRow(table.Row{"Level", fmt.Sprintf("level %d", b.Level), fmt.Sprintf("%.1f", b.LevelScore)})
		tw.AppendRow(table.Row{"Journal", fmt.Sprintf("%d entries this week", b.JournalStreak), fmt.Sprintf("%.1f", b.JournalScore)})
		tw.AppendFooter(table.Row{"Score", b.Band, b.Score})
		tw.Render()
		fmt.Fprintln(cmd.OutOrStdout(), b.Band.Message())
		return nil
	},
}

func init() {
	tasksCmd.AddCommand(tasksListCmd, tasksCompleteCmd)
	rootCmd.AddCommand(tasksCmd, badgesCmd, scoreCmd)
}
