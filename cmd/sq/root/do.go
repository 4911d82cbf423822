package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a quest",
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
			res, err := svc.CompleteQuest(ctx, id)
			if err != nil {
				return err
			}
			if res.AlreadyCompleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Quest %d is already completed.", res.QuestID)))
				return nil
			}

			xp := res.XP
			fmt.Fprintf(cmd.OutOrStdout(), "%s %+d XP → %s L%d (%d/%d)\n", ui.IconDone, xp.Amount, xp.Stat, xp.Level, xp.XP, xp.NextLevelXP)
			if xp.LevelUp {
				fmt.Fprintln(cmd.OutOrStdout(), ui.BadgeLevelUp+" "+ui.Gold.Render(fmt.Sprintf("%s reached level %d", xp.Stat, xp.Level)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Overall level", xp.OverallLevel))
			if len(res.Unlocked) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.IconTrophy+" Unlocked: "+strings.Join(res.Unlocked, ", "))
			}
			return nil
		},
	}
}
