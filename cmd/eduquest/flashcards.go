package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/unowned-ai/eduquest/pkg/app"
	"github.com/unowned-ai/eduquest/pkg/flashcards"
	"github.com/unowned-ai/eduquest/pkg/records"
)

var flashcardsCmd = &cobra.Command{
	Use:     "flashcards",
	Aliases: []string{"cards"},
	Short:   "Add and review today's flashcards",
}

var flashcardAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a flashcard for today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		front, _ := cmd.Flags().GetString("front")
		back, _ := cmd.Flags().GetString("back")
		card, err := a.AddFlashcard(ctx, app.FlashcardInput{Front: front, Back: back})
		if err != nil {
			return fmt.Errorf("failed to add flashcard: %w", err)
		}
		return render(cmd, card, func(w io.Writer) {
			okColor.Fprintf(w, "Flashcard #%d added for %s\n", card.ID, card.Date)
		})
	},
}

var flashcardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's flashcards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		cards, err := a.TodayCards(ctx)
		if err != nil {
			return fmt.Errorf("failed to list flashcards: %w", err)
		}
		return render(cmd, cards, func(w io.Writer) {
			if len(cards) == 0 {
				faintColor.Fprintln(w, flashcards.NothingToReview)
				return
			}
			for _, c := range cards {
				fmt.Fprintf(w, "%s %s %s %s\n", faintColor.Sprintf("#%-5d", c.ID), c.Front, faintColor.Sprint("->"), c.Back)
			}
		})
	},
}

var flashcardReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review today's flashcards interactively",
	Long: `Shows today's cards one at a time. Press Enter to flip, n/p to move,
q to finish. The time spent is recorded as a Flashcards study session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		deck, err := a.TodayDeck(ctx)
		if err != nil {
			return fmt.Errorf("failed to load flashcards: %w", err)
		}
		w := cmd.OutOrStdout()
		if deck.Empty() {
			fmt.Fprintln(w, flashcards.NothingToReview)
			return nil
		}

		if err := a.OpenActivity(records.SessionTypeFlashcards); err != nil {
			return err
		}
		reviewErr := reviewDeck(w, deck)

		summary, err := a.CloseActivity(ctx)
		if err != nil {
			return errors.Join(reviewErr, err)
		}
		okColor.Fprintln(w, summary.Message())
		return reviewErr
	},
}

// reviewDeck runs the flip/next/prev prompt loop until the user quits.
func reviewDeck(w io.Writer, deck *flashcards.Deck) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		side := "Q"
		if deck.ShowingBack() {
			side = "A"
		}
		fmt.Fprintf(w, "\n%s %s: %s\n", faintColor.Sprintf("[%s]", deck.Position()), side, headerColor.Sprint(deck.Face()))

		input, err := line.Prompt("(enter) flip, (n)ext, (p)rev, (q)uit > ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(input)) {
		case "", "f", "flip":
			deck.Flip()
		case "n", "next":
			if !deck.Next() {
				faintColor.Fprintln(w, "That was the last card.")
			}
		case "p", "prev":
			if !deck.Prev() {
				faintColor.Fprintln(w, "Already at the first card.")
			}
		case "q", "quit", "exit":
			return nil
		default:
			fmt.Fprintf(w, "Unknown command: %s\n", input)
		}
	}
}

func initFlashcardsCmd() {
	flashcardAddCmd.Flags().StringP("front", "f", "", "Question side (required)")
	flashcardAddCmd.MarkFlagRequired("front")
	flashcardAddCmd.Flags().StringP("back", "b", "", "Answer side (required)")
	flashcardAddCmd.MarkFlagRequired("back")

	flashcardsCmd.AddCommand(flashcardAddCmd, flashcardListCmd, flashcardReviewCmd)
}
