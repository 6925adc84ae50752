package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"streakling/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "streak",
	Short:         "Streakling — habit tracker with a creature that grows with you",
	Long:          "Streakling is a local-first habit tracker. Each habit raises a creature whose stage, mood and very life depend on your streak.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoneCmd(),
		newRemoveCmd(),
		newListCmd(),
		newStatusCmd(),
		newTimeCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
