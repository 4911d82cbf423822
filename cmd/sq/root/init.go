package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the character, stats, streaks and starter quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.InitializeCharacter(ctx)
			if err != nil {
				return err
			}
			if !res.Seeded {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Character already initialized."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Character created"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Five stats at level 1, streaks at 0, starter quests seeded."))
			return nil
		},
	}
}
