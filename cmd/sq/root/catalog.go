package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/engine"
	"soloquest/internal/storage"
	"soloquest/internal/ui"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List reusable quest templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.ListCatalog(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty — add with: sq catalog add)"))
				return nil
			}

			category := ""
			for _, e := range entries {
				if e.Category != category {
					category = e.Category
					fmt.Fprintln(out, ui.H2.Render(category))
				}
				sign := "+"
				if e.IsPenalty {
					sign = ""
				}
				fmt.Fprintf(out, "- %s (%s%d %s)\n", e.Name, sign, e.XP, e.Stat)
			}
			return nil
		},
	}
	cmd.AddCommand(newCatalogAddCmd())
	return cmd
}

func newCatalogAddCmd() *cobra.Command {
	var statFlag string
	var xp int
	var penalty bool
	var category string
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or update a catalog template",
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

			if _, ok := engine.ParseStat(statFlag); !ok {
				return fmt.Errorf("unknown stat: %s (int|disc|str|soc|cre)", statFlag)
			}
			stat, _ := engine.ParseStat(statFlag)

			entry := storage.CatalogEntry{
				Name:      args[0],
				Stat:      string(stat),
				XP:        xp,
				IsPenalty: penalty,
				Category:  category,
			}
			if penalty && entry.XP > 0 {
				entry.XP = -entry.XP
			}
			if description != "" {
				entry.Description = &description
			}
			if err := svc.UpsertCatalogEntry(ctx, entry); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, "Catalog entry saved: "+args[0]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&statFlag, "stat", "s", "disc", "Stat (int|disc|str|soc|cre)")
	cmd.Flags().IntVarP(&xp, "xp", "x", 10, "XP (stored negative for penalties)")
	cmd.Flags().BoolVar(&penalty, "penalty", false, "Mark as a penalty")
	cmd.Flags().StringVarP(&category, "category", "c", "general", "Category (health|fitness|coding|social|…)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")

	return cmd
}
