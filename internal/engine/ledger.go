package engine

import (
	"context"

	"soloquest/internal/storage"
)

// XPResult reports the outcome of applying one signed XP delta to a stat,
// including the freshly recomputed overall level.
type XPResult struct {
	Stat         Stat
	Amount       int
	Level        int
	XP           int
	TotalXP      int
	NextLevelXP  int
	LevelUp      bool
	OverallLevel int
}

// AwardXP applies a signed XP amount to one stat.
func (s *Service) AwardXP(ctx context.Context, stat Stat, amount int) (*XPResult, error) {
	var res *XPResult
	err := s.runTx(ctx, func(r *storage.Repos) error {
		if _, err := s.requireCharacter(ctx, r); err != nil {
			return err
		}
		var err error
		res, err = s.applyStatDelta(ctx, r, stat, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// applyStatDelta is the stat ledger. Only positive contributions count
// toward total_xp, so penalties never reduce the lifetime total the
// overall level derives from. Triggers the character recompute
// synchronously within the same transaction.
func (s *Service) applyStatDelta(ctx context.Context, r *storage.Repos, stat Stat, amount int) (*XPResult, error) {
	row, err := r.Stats.Get(ctx, string(stat))
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, NotFoundError{Entity: "stat", Key: string(stat)}
	}

	totalXP := row.TotalXP
	if amount > 0 {
		totalXP += amount
	}
	level, xp := ApplyStatDelta(row.Level, row.XP, amount)

	if err := r.Stats.UpdateProgress(ctx, row.ID, level, xp, totalXP); err != nil {
		return nil, err
	}

	overall, err := s.recalcCharacter(ctx, r)
	if err != nil {
		return nil, err
	}

	return &XPResult{
		Stat:         stat,
		Amount:       amount,
		Level:        level,
		XP:           xp,
		TotalXP:      totalXP,
		NextLevelXP:  StatNextLevelXP(level),
		LevelUp:      level > row.Level,
		OverallLevel: overall,
	}, nil
}

// recalcCharacter refreshes the cached overall progression on the
// character singleton from the sum of all stats' lifetime XP. Returns a
// default level of 1 when no character exists.
func (s *Service) recalcCharacter(ctx context.Context, r *storage.Repos) (int, error) {
	stats, err := r.Stats.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	totalXP := 0
	for _, st := range stats {
		totalXP += st.TotalXP
	}
	level, _, _ := CharacterProgress(totalXP)

	c, err := r.Characters.Get(ctx)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 1, nil
	}
	if err := r.Characters.UpdateProgress(ctx, level, totalXP, s.nowISO()); err != nil {
		return 0, err
	}
	return level, nil
}

// SetStatXP overwrites a stat's progression directly (migration and
// correction tool). The character aggregate is recomputed like any other
// XP change.
func (s *Service) SetStatXP(ctx context.Context, stat Stat, level, xp, totalXP int) error {
	return s.runTx(ctx, func(r *storage.Repos) error {
		row, err := r.Stats.Get(ctx, string(stat))
		if err != nil {
			return err
		}
		if row == nil {
			return NotFoundError{Entity: "stat", Key: string(stat)}
		}
		if err := r.Stats.UpdateProgress(ctx, row.ID, level, xp, totalXP); err != nil {
			return err
		}
		_, err = s.recalcCharacter(ctx, r)
		return err
	})
}
