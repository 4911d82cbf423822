package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newGearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gear",
		Short: "List equipment and its stat bonuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.ListEquipment(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no equipment)"))
				return nil
			}
			for _, item := range items {
				mark := "  "
				if item.Equipped {
					mark = ui.Good.Render("* ")
				}
				line := fmt.Sprintf("%s[%d] %s %s (%s)", mark, item.ID, item.Icon, item.Name, item.Slot)
				for _, b := range item.StatBonuses {
					line += ui.Gold.Render(fmt.Sprintf(" +%d %s", b.Value, b.Stat))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.AddCommand(newGearEquipCmd(true), newGearEquipCmd(false), newGearAbilitiesCmd())
	return cmd
}

func newGearAbilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abilities",
		Short: "List abilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			abilities, err := svc.ListAbilities(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(abilities) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no abilities)"))
				return nil
			}
			for _, a := range abilities {
				state := ui.Muted.Render("locked")
				if a.Unlocked {
					state = ui.Good.Render("unlocked")
				}
				line := fmt.Sprintf("[%d] %s %s (%s)", a.ID, a.Icon, a.Name, state)
				for _, b := range a.StatBonuses {
					line += ui.Gold.Render(fmt.Sprintf(" +%d %s", b.Value, b.Stat))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newGearEquipCmd(equip bool) *cobra.Command {
	use := "equip <id>"
	short := "Equip an item (its bonuses apply to the dashboard)"
	if !equip {
		use = "unequip <id>"
		short = "Unequip an item"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
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
			if err := svc.SetEquipped(ctx, id, equip); err != nil {
				return err
			}
			verb := "Equipped"
			if !equip {
				verb = "Unequipped"
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.IconShield+" "+verb+" item "+args[0])
			return nil
		},
	}
}
