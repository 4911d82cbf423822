package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"soloquest/internal/engine"
	"soloquest/internal/ui"
)

func newBossCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boss",
		Short: "Manage the active boss fight",
	}
	cmd.AddCommand(newBossSetCmd(), newBossProgressCmd())
	return cmd
}

func newBossSetCmd() *cobra.Command {
	var statFlag string
	var xp int
	var deadline string
	var target int
	var lore string

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Start a new boss fight (retires any active boss)",
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

			stat, ok := engine.ParseStat(statFlag)
			if !ok {
				return fmt.Errorf("unknown stat: %s (int|disc|str|soc|cre)", statFlag)
			}

			in := engine.BossInput{Name: args[0], Stat: stat, XPReward: xp}
			if deadline != "" {
				in.Deadline = &deadline
			}
			if target > 0 {
				in.TargetValue = &target
			}
			if lore != "" {
				in.Lore = &lore
			}

			res, err := svc.UpsertBossFight(ctx, in)
			if err != nil {
				return err
			}
			if res.RetiredID != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Retired boss %d.", *res.RetiredID)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBoss, fmt.Sprintf("Boss %d: %s (+%d %s)", res.QuestID, args[0], xp, stat)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&statFlag, "stat", "s", "disc", "Stat (int|disc|str|soc|cre)")
	cmd.Flags().IntVarP(&xp, "xp", "x", 150, "XP reward on clear")
	cmd.Flags().StringVarP(&deadline, "deadline", "d", "", "Deadline (ISO-8601)")
	cmd.Flags().IntVarP(&target, "target", "t", 0, "Progress target value")
	cmd.Flags().StringVar(&lore, "lore", "", "Narrative text")

	return cmd
}

func newBossProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <value>",
		Short: "Update the active boss's progress counter",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("value is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("value must be an integer")
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

			value, _ := strconv.Atoi(args[0])
			boss, err := svc.UpdateBossProgress(ctx, value)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s %s: %d", ui.IconBoss, boss.Name, value)
			if boss.TargetValue != nil {
				line = fmt.Sprintf("%s/%d", line, *boss.TargetValue)
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
}
