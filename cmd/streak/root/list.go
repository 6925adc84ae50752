package root

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"streakling/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits and their creatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ov, err := svc.GetOverview(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			heading := ov.Date.Format("Mon, Jan 2 2006")
			if ov.TimeMachineActive {
				heading = fmt.Sprintf("%s %s (day %d of simulation)", ui.IconClock, heading, ov.DayNumber)
			}
			fmt.Fprintln(out, ui.Heading("", heading))

			if len(ov.Habits) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No habits yet. Add one with `streak add <name>`."))
				return nil
			}

			for _, h := range ov.Habits {
				line := fmt.Sprintf("%s %s [%d] %s — streak %d (%s, %s %s)",
					ui.CompletionIcon(h.Completed),
					h.State.Emoji(),
					h.ID,
					h.Name,
					h.State.CurrentStreak,
					ui.StageText(h.DisplayStage),
					ui.MoodText(h.State.Mood),
					h.State.Mood.Emoji(),
				)
				fmt.Fprintln(out, line)
				if h.CompletedOn != nil && !h.Completed {
					fmt.Fprintln(out, "   "+ui.Muted.Render("last done "+humanize.Time(*h.CompletedOn)))
				}
			}
			return nil
		},
	}

	return cmd
}
