package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"streakling/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a habit's completion for today",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := svc.ToggleHabit(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Completed {
				fmt.Fprintf(out, "%s %s — streak %d %s\n", ui.IconCheck, res.HabitName, res.State.CurrentStreak, ui.IconFire)
			} else {
				fmt.Fprintf(out, "%s %s unmarked for today.\n", ui.IconCircle, res.HabitName)
			}

			switch {
			case res.Revived:
				fmt.Fprintf(out, "%s %s %s has come back to life!\n", ui.IconHeart, ui.BadgeRevived, res.State.Name)
			case res.Died:
				fmt.Fprintf(out, "%s %s has passed away…\n", ui.IconGrave, res.State.Name)
			case res.BecameEternal:
				fmt.Fprintf(out, "%s %s %s has transcended!\n", ui.IconSparkle, ui.BadgeEternal, res.State.Name)
			}

			fmt.Fprintf(out, "%s %s\n", res.State.Emoji(), ui.Dim.Render(`"`+res.State.Message(res.Completed, res.Date)+`"`))
			return nil
		},
	}

	return cmd
}
