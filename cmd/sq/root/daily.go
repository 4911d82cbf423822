package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Generate today's recurring quests (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.GenerateDailyQuests(ctx)
			if err != nil {
				return err
			}
			switch {
			case res.Reason == "no_character":
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("No character yet — run: sq init"))
			case !res.Generated:
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Quests for %s already exist (%d).", res.Date, res.Count)))
			default:
				fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconQuest, fmt.Sprintf("Generated %d quests for %s", res.Count, res.Date)))
			}
			return nil
		},
	}
}
