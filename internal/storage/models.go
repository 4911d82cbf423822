package storage

// Character is the singleton progression record. OverallLevel and
// OverallTotalXP are caches recomputed after every XP change.
type Character struct {
	Key            string
	Name           string
	Class          string
	OverallLevel   int
	OverallTotalXP int
	LastUpdated    string
}

// Stat is one of the five fixed progression tracks. XP is progress within
// the current level; TotalXP is lifetime-earned and never decremented.
type Stat struct {
	ID      string
	Name    string
	Level   int
	XP      int
	TotalXP int
}

type Streak struct {
	Type        string
	Label       string
	Count       int
	LastUpdated *string
}

type Quest struct {
	ID           int64
	Name         string
	Stat         string
	XPReward     int
	Completed    bool
	Date         string
	Description  *string
	Lore         *string
	Proof        *string
	IsBoss       bool
	IsPenalty    bool
	Deadline     *string
	CurrentValue *int
	TargetValue  *int
	CreatedAt    string
}

type CatalogEntry struct {
	ID          int64
	Name        string
	Stat        string
	XP          int
	IsPenalty   bool
	Category    string
	Description *string
	Lore        *string
}

type Achievement struct {
	Key        string
	Name       string
	Icon       string
	Unlocked   bool
	UnlockedAt *string
	Condition  *string
}

// StatBonus is one additive per-stat modifier carried by equipment and
// abilities. Bonuses are summed at read time, never written into stats.
type StatBonus struct {
	Stat  string `json:"stat"`
	Value int    `json:"value"`
}

type EquipmentItem struct {
	ID          int64
	Name        string
	Slot        string
	Icon        string
	Description *string
	Equipped    bool
	StatBonuses []StatBonus
}

type Ability struct {
	ID          int64
	Name        string
	Icon        string
	Description *string
	Unlocked    bool
	StatBonuses []StatBonus
}
