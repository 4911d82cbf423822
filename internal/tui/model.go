package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"soloquest/internal/engine"
	"soloquest/internal/storage"
	"soloquest/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	snap *engine.DashboardSnapshot

	selected int

	xpBar progress.Model

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	snap *engine.DashboardSnapshot
	err  error
}

type completedMsg struct {
	id  int64
	res *engine.CompleteResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		xpBar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.svc.Dashboard(m.ctx)
		return loadedMsg{snap: snap, err: err}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteQuest(m.ctx, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.snap = msg.snap
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.AlreadyCompleted {
			m.lastLog = fmt.Sprintf("Quest %d already completed.", msg.res.QuestID)
			return m, m.loadCmd()
		}
		xp := msg.res.XP
		m.lastLog = fmt.Sprintf("Completed %d: %+d XP → %s L%d (overall L%d)", msg.res.QuestID, xp.Amount, xp.Stat, xp.Level, xp.OverallLevel)
		if len(msg.res.Unlocked) > 0 {
			m.lastLog += " " + ui.IconTrophy + " " + strings.Join(msg.res.Unlocked, ", ")
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.questRows())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			rows := m.questRows()
			if m.selected < 0 || m.selected >= len(rows) {
				return m, nil
			}
			q := rows[m.selected]
			if q.Completed {
				m.lastLog = "Already done."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %d…", q.ID)
			return m, m.completeCmd(q.ID)
		}
	}
	return m, nil
}

// questRows returns today's quests plus the active boss as the final row.
func (m boardModel) questRows() []storage.Quest {
	if m.snap == nil {
		return nil
	}
	rows := make([]storage.Quest, 0, len(m.snap.QuestsToday)+1)
	rows = append(rows, m.snap.QuestsToday...)
	if m.snap.ActiveBoss != nil {
		rows = append(rows, *m.snap.ActiveBoss)
	}
	return rows
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.snap == nil || m.snap.Character == nil {
		return "Soloquest — not initialized (run: sq init)"
	}
	c := m.snap.Character
	ratio := 0.0
	if m.snap.OverallNextLevelXP > 0 {
		ratio = float64(m.snap.OverallXPInLevel) / float64(m.snap.OverallNextLevelXP)
	}
	bar := m.xpBar.ViewAs(ratio)
	return fmt.Sprintf("Soloquest | %s the %s | Level %d | %s %d/%d", c.Name, c.Class, m.snap.OverallLevel, bar, m.snap.OverallXPInLevel, m.snap.OverallNextLevelXP)
}

func (m boardModel) renderSidebar() string {
	if m.snap == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Stats"}
	for _, sv := range m.snap.Stats {
		lines = append(lines, renderStat(sv))
	}
	lines = append(lines, "")
	lines = append(lines, "Streaks")
	for _, st := range m.snap.Streaks {
		lines = append(lines, fmt.Sprintf("- %s %s: %d", ui.IconStreak, st.Label, st.Count))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space/enter: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string

	if boss := m.snap.ActiveBoss; boss != nil {
		out = append(out, ui.IconBoss+" Boss")
		line := fmt.Sprintf("- %s (+%d %s)", boss.Name, boss.XPReward, boss.Stat)
		if boss.TargetValue != nil {
			cur := 0
			if boss.CurrentValue != nil {
				cur = *boss.CurrentValue
			}
			line += fmt.Sprintf(" [%d/%d]", cur, *boss.TargetValue)
		}
		if boss.Deadline != nil {
			line += " due " + *boss.Deadline
		}
		out = append(out, line)
		out = append(out, "")
	}

	out = append(out, fmt.Sprintf("Today's Quests (%s)", m.snap.Today))
	rows := m.questRows()
	if len(rows) == 0 {
		out = append(out, "(none — run: sq daily)")
		return strings.Join(out, "\n")
	}
	for i, q := range rows {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if q.Completed {
			mark = "[x]"
		}
		out = append(out, fmt.Sprintf("%s%s %s %s (+%d %s)", cursor, mark, ui.QuestIcon(q.IsBoss, q.IsPenalty), q.Name, q.XPReward, q.Stat))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func renderStat(sv engine.StatView) string {
	bar := textBar(sv.XP, engine.StatNextLevelXP(sv.Level), 12)
	line := fmt.Sprintf("- %s %s L%d %s", ui.StatIcon(sv.ID), sv.ID, sv.Level, bar)
	if sv.Bonus != 0 {
		line += fmt.Sprintf(" (+%d)", sv.Bonus)
	}
	return line
}

func textBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
