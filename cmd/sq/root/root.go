package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "sq",
	Short:         "Soloquest — local-first RPG life progression",
	Long:          "Soloquest turns completed real-world tasks into XP across five character stats, with streaks, achievements and boss fights.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newInitCmd(),
		newStatusCmd(),
		newDoCmd(),
		newLogCmd(),
		newAwardCmd(),
		newDailyCmd(),
		newBossCmd(),
		newQuestsCmd(),
		newCatalogCmd(),
		newGearCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
