package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "List all quest instances, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.ListAllQuests(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(quests) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no quests)"))
				return nil
			}

			date := ""
			for _, q := range quests {
				if q.Date != date {
					date = q.Date
					fmt.Fprintln(out, ui.H2.Render(date))
				}
				fmt.Fprintf(out, "- [%d] %s %s (+%d %s) %s\n", q.ID, ui.QuestIcon(q.IsBoss, q.IsPenalty), q.Name, q.XPReward, q.Stat, ui.QuestStatus(q.Completed))
			}
			return nil
		},
	}
	cmd.AddCommand(newQuestsDescCmd())
	return cmd
}

func newQuestsDescCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "desc <id> <text>",
		Short: "Set a quest's description",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and text are required")
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
			if err := svc.UpdateQuestDescription(ctx, id, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated quest "+args[0])
			return nil
		},
	}
}
