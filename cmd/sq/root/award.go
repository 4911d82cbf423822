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

func newAwardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "award <stat> <amount>",
		Short: "Apply a signed XP amount to a stat directly",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("stat and amount are required")
			}
			if _, ok := engine.ParseStat(args[0]); !ok {
				return fmt.Errorf("unknown stat: %s (int|disc|str|soc|cre)", args[0])
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return errors.New("amount must be an integer")
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

			stat, _ := engine.ParseStat(args[0])
			amount, _ := strconv.Atoi(args[1])

			res, err := svc.AwardXP(ctx, stat, amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %+d XP → %s L%d (%d/%d, total %d)\n", ui.IconBolt, res.Amount, res.Stat, res.Level, res.XP, res.NextLevelXP, res.TotalXP)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Overall level", res.OverallLevel))
			return nil
		},
	}
}
