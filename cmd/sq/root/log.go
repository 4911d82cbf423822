package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/engine"
	"soloquest/internal/ui"
)

func newLogCmd() *cobra.Command {
	var statFlag string
	var xp int
	var penalty bool
	var note string
	var fromCatalog bool

	cmd := &cobra.Command{
		Use:   "log <name>",
		Short: "Log a completed quest by name (idempotent per day)",
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

			var notePtr *string
			if note != "" {
				notePtr = &note
			}

			var res *engine.LogResult
			if fromCatalog {
				res, err = svc.LogFromCatalog(ctx, args[0], notePtr)
			} else {
				stat, ok := engine.ParseStat(statFlag)
				if !ok {
					return fmt.Errorf("unknown stat: %s (int|disc|str|soc|cre)", statFlag)
				}
				res, err = svc.LogQuest(ctx, engine.LogQuestInput{
					Name:      args[0],
					Stat:      stat,
					XPReward:  xp,
					IsPenalty: penalty,
					Note:      notePtr,
				})
			}
			if err != nil {
				return err
			}
			if res.Duplicate {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Already logged today."))
				return nil
			}

			verb := "Patched"
			if res.Created {
				verb = "Logged"
			}
			x := res.XP
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s quest %d: %+d XP → %s L%d (%d/%d)\n", ui.IconDone, verb, res.QuestID, x.Amount, x.Stat, x.Level, x.XP, x.NextLevelXP)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Overall level", x.OverallLevel))
			return nil
		},
	}

	cmd.Flags().StringVarP(&statFlag, "stat", "s", "disc", "Stat (int|disc|str|soc|cre)")
	cmd.Flags().IntVarP(&xp, "xp", "x", 10, "XP reward")
	cmd.Flags().BoolVar(&penalty, "penalty", false, "Subtract XP instead of adding it")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Proof/note text")
	cmd.Flags().BoolVar(&fromCatalog, "from-catalog", false, "Look the quest up in the catalog by name")

	return cmd
}
