package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the character dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := svc.Dashboard(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if snap.Character == nil {
				fmt.Fprintln(out, ui.Warn.Render("No character yet — run: sq init"))
				return nil
			}

			c := snap.Character
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, fmt.Sprintf("%s the %s", c.Name, c.Class)))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d (%d/%d XP, total %d)", snap.OverallLevel, snap.OverallXPInLevel, snap.OverallNextLevelXP, c.OverallTotalXP)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			for _, sv := range snap.Stats {
				line := fmt.Sprintf("- %s %s: lvl %d (%d/%d, lifetime %d)", ui.StatIcon(sv.ID), sv.ID, sv.Level, sv.XP, sv.Level*100, sv.TotalXP)
				if sv.Bonus != 0 {
					line += ui.Gold.Render(fmt.Sprintf(" +%d gear", sv.Bonus))
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconStreak+" Streaks"))
			for _, st := range snap.Streaks {
				last := ""
				if st.LastUpdated != nil {
					last = ui.Muted.Render(" (last " + *st.LastUpdated + ")")
				}
				fmt.Fprintf(out, "- %s: %d%s\n", st.Label, st.Count, last)
			}
			fmt.Fprintln(out, "")

			if boss := snap.ActiveBoss; boss != nil {
				fmt.Fprintln(out, ui.H2.Render(ui.IconBoss+" Active Boss"))
				line := fmt.Sprintf("- [%d] %s (+%d %s)", boss.ID, boss.Name, boss.XPReward, boss.Stat)
				if boss.TargetValue != nil {
					cur := 0
					if boss.CurrentValue != nil {
						cur = *boss.CurrentValue
					}
					line += fmt.Sprintf(" — %d/%d", cur, *boss.TargetValue)
				}
				if boss.Deadline != nil {
					line += ui.Muted.Render(" due " + *boss.Deadline)
				}
				fmt.Fprintln(out, line)
				fmt.Fprintln(out, "")
			}

			fmt.Fprintln(out, ui.H2.Render(ui.IconQuest+" Today ("+snap.Today+")"))
			if len(snap.QuestsToday) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("- no quests — run: sq daily"))
			}
			for _, q := range snap.QuestsToday {
				fmt.Fprintf(out, "- [%d] %s %s (+%d %s) %s\n", q.ID, ui.QuestIcon(q.IsBoss, q.IsPenalty), q.Name, q.XPReward, q.Stat, ui.QuestStatus(q.Completed))
			}
			fmt.Fprintln(out, "")

			unlockedCount := 0
			for _, a := range snap.Achievements {
				if a.Unlocked {
					unlockedCount++
				}
			}
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, unlockedCount, len(snap.Achievements))))
			for _, a := range snap.Achievements {
				if !a.Unlocked {
					continue
				}
				when := ""
				if a.UnlockedAt != nil {
					when = ui.Muted.Render(" " + *a.UnlockedAt)
				}
				fmt.Fprintf(out, "- %s %s%s\n", a.Icon, a.Name, when)
			}

			return nil
		},
	}
}
