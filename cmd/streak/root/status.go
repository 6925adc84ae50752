package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"streakling/internal/engine"
	"streakling/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <id>",
		Short: "Show one habit's creature in detail",
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
			view, err := svc.GetHabitView(ctx, id)
			if err != nil {
				return err
			}

			printHabitStatus(cmd, view)
			return nil
		},
	}

	return cmd
}

func printHabitStatus(cmd *cobra.Command, h *engine.HabitView) {
	out := cmd.OutOrStdout()
	st := h.State

	fmt.Fprintln(out, ui.Heading(st.Emoji(), fmt.Sprintf("%s — %s", h.Name, st.Name)))
	if h.Description != "" {
		fmt.Fprintln(out, ui.Muted.Render(h.Description))
	}
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, ui.LabelValue("Species", fmt.Sprintf("%s %s", st.AnimalType.DisplayName(), st.AnimalType.Emoji())))
	fmt.Fprintln(out, ui.LabelValue("Stage", ui.StageText(h.DisplayStage)))
	fmt.Fprintln(out, ui.LabelValue("Mood", fmt.Sprintf("%s %s", ui.MoodText(st.Mood), st.Mood.Emoji())))
	fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d (longest %d)", st.CurrentStreak, st.LongestStreak)))
	if st.ConsecutiveMissedDays > 0 {
		fmt.Fprintln(out, ui.LabelValue("Missed days", ui.Warn.Render(strconv.Itoa(st.ConsecutiveMissedDays))))
	}
	if st.RevivedCount > 0 {
		fmt.Fprintln(out, ui.LabelValue("Revivals", st.RevivedCount))
	}
	if st.IsDead {
		fmt.Fprintf(out, "%s %s died %d day(s) ago.\n", ui.IconGrave, st.Name, st.DaysSinceDeath(h.EffectiveDate))
	}
	if st.Eternal() {
		fmt.Fprintln(out, ui.LabelValue("Tier", ui.BadgeEternal))
		if years := st.EternalYears(h.EffectiveDate); years > 0 {
			fmt.Fprintln(out, ui.LabelValue("Eternal for", fmt.Sprintf("%d year(s)", years)))
		}
		if st.EternalAnniversary(h.EffectiveDate) {
			fmt.Fprintln(out, ui.Gold.Render(ui.IconSparkle+" Happy eternal anniversary!"))
		}
	}

	fmt.Fprintln(out, "")
	fmt.Fprintln(out, ui.Dim.Render(`"`+h.Message+`"`))
}
