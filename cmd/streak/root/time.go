package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"streakling/internal/timemachine"
	"streakling/internal/ui"
)

func newTimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Control the time machine (simulated dates)",
	}

	cmd.AddCommand(
		newTimeOnCmd(),
		newTimeOffCmd(),
		newTimeNextCmd(),
		newTimeAdvanceCmd(),
		newTimeStatusCmd(),
	)

	return cmd
}

func newTimeOnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "on",
		Short: "Activate the time machine (resets all progress)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.ActivateTimeMachine(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconClock, "Time machine activated"))
			fmt.Fprintln(out, ui.Warn.Render("All habit completions and creature progress were reset."))
			fmt.Fprintln(out, ui.LabelValue("Simulated date", st.CurrentDate.Format(timemachine.DateFormat)))
			fmt.Fprintln(out, ui.LabelValue("Day", st.DayNumber))
			return nil
		},
	}
}

func newTimeOffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "off",
		Short: "Deactivate the time machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeactivateTimeMachine(ctx); err != nil {
				if errors.Is(err, timemachine.ErrInactive) {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Time machine is already off."))
					return nil
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconClock, "Time machine deactivated"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Back to real time."))
			return nil
		},
	}
}

func newTimeNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Advance the simulated date by one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvance(cmd, 1)
		},
	}
}

func newTimeAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance <days>",
		Short: "Jump the simulated date forward by N days",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("days is required")
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return errors.New("days must be a positive integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := strconv.Atoi(args[0])
			return runAdvance(cmd, n)
		},
	}
}

func runAdvance(cmd *cobra.Command, days int) error {
	ctx := context.Background()
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.AdvanceDays(ctx, days)
	if err != nil {
		if errors.Is(err, timemachine.ErrInactive) {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Time machine is off. Run `streak time on` first."))
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconRocket, fmt.Sprintf("Advanced %d day(s)", res.Days)))
	fmt.Fprintln(out, ui.LabelValue("From", res.From.Format(timemachine.DateFormat)))
	fmt.Fprintln(out, ui.LabelValue("To", res.To.Format(timemachine.DateFormat)))
	if res.BonusDays > 0 && len(res.CreditedHabits) > 0 {
		fmt.Fprintf(out, "%s +%d streak day(s) for: %s\n",
			ui.Good.Render(ui.IconFire), res.BonusDays, strings.Join(res.CreditedHabits, ", "))
	}
	return nil
}

func newTimeStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the time machine's position",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.TimeMachineStatus(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconClock, "Time machine"))
			if !st.Active {
				fmt.Fprintln(out, ui.Muted.Render("Inactive. Dates are real."))
				return nil
			}
			fmt.Fprintln(out, ui.LabelValue("Active", ui.Good.Render("yes")))
			fmt.Fprintln(out, ui.LabelValue("Simulated date", st.CurrentDate.Format(timemachine.DateFormat)))
			fmt.Fprintln(out, ui.LabelValue("Day", st.DayNumber))
			return nil
		},
	}
}
