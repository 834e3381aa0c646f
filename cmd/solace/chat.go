package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/solace/pkg/chat"
	"github.com/unowned-ai/solace/pkg/config"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the support bot",
	Long: `Start an interactive conversation with the support bot.

Type a message and press enter, or type the number of a suggestion to send it.
Messages mentioning anxiety or stress also update your current mood.
An empty line or EOF (Ctrl+D) ends the conversation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		transcript := sess.Bot.Transcript()
		for _, msg := range transcript.Messages() {
			printBotMessage(out, msg)
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				return nil
			}

			send := sess.Chat
			if n, err := strconv.Atoi(line); err == nil {
				suggestions := transcript.Suggestions()
				if n < 1 || n > len(suggestions) {
					fmt.Fprintf(out, "No suggestion %d.\n", n)
					continue
				}
				line = suggestions[n-1]
				send = sess.Bot.ClickSuggestion
				fmt.Fprintf(out, "you: %s\n", line)
			}

			pending, err := send(cmd.Context(), line)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "…")
			select {
			case reply := <-pending.Reply():
				printBotMessage(out, reply)
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
		}
	},
}

func printBotMessage(w io.Writer, msg chat.Message) {
	if msg.Sender != chat.SenderBot {
		return
	}
	fmt.Fprintf(w, "solace: %s\n", msg.Content)
	for i, s := range msg.Suggestions {
		fmt.Fprintf(w, "  [%d] %s\n", i+1, s)
	}
	if msg.ShowActions {
		fmt.Fprintln(w, "  [Book counselor] [Call helpline]")
	}
}

func init() {
	chatCmd.Flags().Duration("delay", chat.DefaultReplyDelay, "Delay before the bot replies")
	_ = v.BindPFlag(config.KeyReplyDelay, chatCmd.Flags().Lookup("delay"))
	rootCmd.AddCommand(chatCmd)
}
