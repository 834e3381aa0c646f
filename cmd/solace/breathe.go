package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/solace/pkg/breathing"
)

var breatheCmd = &cobra.Command{
	Use:   "breathe",
	Short: "Follow a guided 4-4-6 breathing exercise",
	Long: `Guide a breathing exercise: inhale for 4 seconds, hold for 4 and exhale for 6.
Runs until the requested number of cycles is done, or until interrupted when
--cycles is 0.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cycles, _ := cmd.Flags().GetInt("cycles")
		if cycles < 0 {
			return fmt.Errorf("cycles must not be negative, got %d", cycles)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		out := cmd.OutOrStdout()
		guide := breathing.NewGuide()
		printBreath(out, guide.State())

		err := guide.Run(ctx, time.Second, func(s breathing.State) {
			printBreath(out, s)
			if cycles > 0 && s.Cycles >= cycles {
				cancel()
			}
		})
		fmt.Fprintf(out, "\nCompleted %d cycle(s).\n", guide.State().Cycles)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func printBreath(w io.Writer, s breathing.State) {
	width := int(s.Scale() * 20)
	fmt.Fprintf(w, "\r%-14s %2ds %-30s", s.Phase.Instruction(), s.Remaining(), strings.Repeat("●", width))
}

func init() {
	breatheCmd.Flags().Int("cycles", 3, "Number of full cycles to run (0 runs until interrupted)")
	rootCmd.AddCommand(breatheCmd)
}
