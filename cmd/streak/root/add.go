package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"streakling/internal/creature"
	"streakling/internal/engine"
	"streakling/internal/ui"
)

func newAddCmd() *cobra.Command {
	var description string
	var creatureName string
	var animal string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit (a creature egg comes with it)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			res, err := svc.CreateHabit(ctx, engine.CreateHabitInput{
				Name:         args[0],
				Description:  description,
				CreatureName: creatureName,
				AnimalType:   animal,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Habit created"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", res.HabitID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Name", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "%s 🥚 An egg is waiting: %s the %s %s\n",
				ui.Good.Render("Creature:"), res.CreatureName,
				res.Animal.DisplayName(), res.Animal.Emoji())
			return nil
		},
	}

	animals := make([]string, 0, len(creature.AnimalTypes()))
	for _, a := range creature.AnimalTypes() {
		animals = append(animals, string(a))
	}
	cmd.Flags().StringVarP(&description, "desc", "d", "", "Habit description")
	cmd.Flags().StringVarP(&creatureName, "name", "n", "", "Creature name (default \""+creature.DefaultName+"\")")
	cmd.Flags().StringVarP(&animal, "animal", "a", string(creature.DefaultAnimal), "Animal type ("+strings.Join(animals, "|")+")")

	return cmd
}
