package engine

import "strings"

type Stat string

const (
	StatINT  Stat = "INT"
	StatDISC Stat = "DISC"
	StatSTR  Stat = "STR"
	StatSOC  Stat = "SOC"
	StatCRE  Stat = "CRE"
)

// AllStats returns the five stats in display order.
func AllStats() []Stat {
	return []Stat{StatINT, StatDISC, StatSTR, StatSOC, StatCRE}
}

func (s Stat) IsValid() bool {
	switch s {
	case StatINT, StatDISC, StatSTR, StatSOC, StatCRE:
		return true
	default:
		return false
	}
}

// DisplayName returns the long-form stat name.
func (s Stat) DisplayName() string {
	switch s {
	case StatINT:
		return "Intelligence"
	case StatDISC:
		return "Discipline"
	case StatSTR:
		return "Strength"
	case StatSOC:
		return "Social"
	case StatCRE:
		return "Creativity"
	default:
		return string(s)
	}
}

// ParseStat parses user input to a Stat.
// Supported: int, disc, str, soc, cre (plus a few aliases).
func ParseStat(input string) (Stat, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "int", "intelligence":
		return StatINT, true
	case "disc", "discipline":
		return StatDISC, true
	case "str", "strength":
		return StatSTR, true
	case "soc", "social":
		return StatSOC, true
	case "cre", "creativity", "creative":
		return StatCRE, true
	default:
		return "", false
	}
}

type StreakType string

const (
	StreakDaily    StreakType = "daily"
	StreakGym      StreakType = "gym"
	StreakDeepWork StreakType = "deep_work"
	StreakReading  StreakType = "reading"
)
