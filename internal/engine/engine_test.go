package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soloquest/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService(t *testing.T) (*Service, *fakeClock) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return NewService(db, clock, time.UTC), clock
}

func mustInit(t *testing.T, svc *Service) {
	t.Helper()
	res, err := svc.InitializeCharacter(context.Background())
	require.NoError(t, err)
	require.True(t, res.Seeded)
}

func questByName(t *testing.T, snap *DashboardSnapshot, name string) storage.Quest {
	t.Helper()
	for _, q := range snap.QuestsToday {
		if q.Name == name {
			return q
		}
	}
	t.Fatalf("quest %q not on today's board", name)
	return storage.Quest{}
}

func TestInitializeCharacterSeedsOnce(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustInit(t, svc)

	snap, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Character)
	assert.Equal(t, "Player", snap.Character.Name)
	assert.Equal(t, 1, snap.Character.OverallLevel)
	assert.Len(t, snap.Stats, 5)
	for _, st := range snap.Stats {
		assert.Equal(t, 1, st.Level)
		assert.Equal(t, 0, st.XP)
	}
	assert.Len(t, snap.Streaks, 4)
	assert.Len(t, snap.Achievements, 9)
	assert.Len(t, snap.QuestsToday, 6)
	require.NotNil(t, snap.ActiveBoss)
	assert.Equal(t, "Boss Fight: Ship Weekly Milestone", snap.ActiveBoss.Name)
	assert.Equal(t, "2025-03-10", snap.Today)

	again, err := svc.InitializeCharacter(ctx)
	require.NoError(t, err)
	assert.False(t, again.Seeded)
	assert.Equal(t, "already_initialized", again.Reason)
}

func TestAwardXPRequiresCharacter(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AwardXP(context.Background(), StatDISC, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUninitialized))
}

func TestAwardXPMultiLevelAndPenalty(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	res, err := svc.AwardXP(ctx, StatDISC, 250)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Level)
	assert.Equal(t, 150, res.XP)
	assert.Equal(t, 250, res.TotalXP)
	assert.Equal(t, 200, res.NextLevelXP)
	assert.True(t, res.LevelUp)
	assert.Equal(t, 1, res.OverallLevel)

	// A crushing penalty demotes exactly one level and leaves the
	// lifetime total untouched.
	res, err = svc.AwardXP(ctx, StatDISC, -1000)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Level)
	assert.Equal(t, 0, res.XP)
	assert.Equal(t, 250, res.TotalXP)
	assert.False(t, res.LevelUp)

	// Lifetime XP keeps accruing; 500 total crosses the first overall
	// threshold.
	res, err = svc.AwardXP(ctx, StatDISC, 250)
	require.NoError(t, err)
	assert.Equal(t, 500, res.TotalXP)
	assert.Equal(t, 2, res.OverallLevel)

	snap, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Character.OverallLevel)
	assert.Equal(t, 500, snap.Character.OverallTotalXP)
	assert.Equal(t, 2, snap.OverallLevel)
	assert.Equal(t, 0, snap.OverallXPInLevel)
	assert.Equal(t, 1000, snap.OverallNextLevelXP)
}

func TestCompleteQuestIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	snap, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	q := questByName(t, snap, "Plan your top 3 priorities")

	res, err := svc.CompleteQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.False(t, res.AlreadyCompleted)
	require.NotNil(t, res.XP)
	assert.Equal(t, StatDISC, res.XP.Stat)
	assert.Equal(t, 20, res.XP.Amount)
	assert.Contains(t, res.Unlocked, "first_quest")

	daily, err := svc.Repos().Streaks.Get(ctx, "daily")
	require.NoError(t, err)
	require.NotNil(t, daily)
	assert.Equal(t, 1, daily.Count)
	require.NotNil(t, daily.LastUpdated)
	assert.Equal(t, "2025-03-10", *daily.LastUpdated)

	// Second completion is a reported no-op; no XP, no streak advance.
	res, err = svc.CompleteQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.True(t, res.AlreadyCompleted)
	assert.Nil(t, res.XP)
	assert.Empty(t, res.Unlocked)

	daily, err = svc.Repos().Streaks.Get(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, 1, daily.Count)

	st, err := svc.Repos().Stats.Get(ctx, "DISC")
	require.NoError(t, err)
	assert.Equal(t, 20, st.TotalXP)
}

func TestCompleteQuestNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	mustInit(t, svc)

	_, err := svc.CompleteQuest(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestLogQuestCreateAndDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	res, err := svc.LogQuest(ctx, LogQuestInput{Name: "Read 20 pages", Stat: StatINT, XPReward: 15})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.False(t, res.Duplicate)
	require.NotNil(t, res.XP)
	assert.Equal(t, 15, res.XP.Amount)

	// Same name, same day: duplicate, nothing moves.
	res, err = svc.LogQuest(ctx, LogQuestInput{Name: "Read 20 pages", Stat: StatINT, XPReward: 15})
	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.Nil(t, res.XP)

	st, err := svc.Repos().Stats.Get(ctx, "INT")
	require.NoError(t, err)
	assert.Equal(t, 15, st.TotalXP)

	// The logged pathway never advances the daily streak or unlocks
	// first_quest.
	daily, err := svc.Repos().Streaks.Get(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, 0, daily.Count)
	first, err := svc.Repos().Achievements.Get(ctx, "first_quest")
	require.NoError(t, err)
	assert.False(t, first.Unlocked)
}

func TestLogQuestPatchesExistingInstance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	note := "gym, 45min"
	// The input's stat and reward are ignored when a generated instance
	// already exists; the stored row wins.
	res, err := svc.LogQuest(ctx, LogQuestInput{
		Name:     "Workout / movement session",
		Stat:     StatINT,
		XPReward: 999,
		Note:     &note,
	})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.False(t, res.Duplicate)
	require.NotNil(t, res.XP)
	assert.Equal(t, StatSTR, res.XP.Stat)
	assert.Equal(t, 30, res.XP.Amount)

	q, err := svc.Repos().Quests.Get(ctx, res.QuestID)
	require.NoError(t, err)
	assert.True(t, q.Completed)
	require.NotNil(t, q.Proof)
	assert.Equal(t, note, *q.Proof)
}

func TestLogQuestPenaltyFloorsAtLevelOne(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	res, err := svc.LogQuest(ctx, LogQuestInput{Name: "Skipped workout", Stat: StatSTR, XPReward: 50, IsPenalty: true})
	require.NoError(t, err)
	require.NotNil(t, res.XP)
	assert.Equal(t, -50, res.XP.Amount)
	assert.Equal(t, 1, res.XP.Level)
	assert.Equal(t, 0, res.XP.XP)
	assert.Equal(t, 0, res.XP.TotalXP)
}

func TestGenerateDailyQuestsIdempotentPerDay(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	// Initialization already seeded today's board.
	res, err := svc.GenerateDailyQuests(ctx)
	require.NoError(t, err)
	assert.False(t, res.Generated)
	assert.Equal(t, "already_exists", res.Reason)
	assert.Equal(t, 6, res.Count)

	clock.Advance(24 * time.Hour)

	res, err = svc.GenerateDailyQuests(ctx)
	require.NoError(t, err)
	assert.True(t, res.Generated)
	assert.Equal(t, 6, res.Count)
	assert.Equal(t, "2025-03-11", res.Date)

	snap, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.QuestsToday, 6)
	for _, q := range snap.QuestsToday {
		assert.False(t, q.Completed)
		assert.Equal(t, "2025-03-11", q.Date)
	}
}

func TestGenerateDailyQuestsNoCharacter(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.GenerateDailyQuests(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Generated)
	assert.Equal(t, "no_character", res.Reason)
}

func TestBossLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	starter, err := svc.Repos().Quests.ActiveBoss(ctx)
	require.NoError(t, err)
	require.NotNil(t, starter)

	target := 5
	res, err := svc.UpsertBossFight(ctx, BossInput{
		Name:        "Boss Fight: Launch v1",
		Stat:        StatCRE,
		XPReward:    200,
		TargetValue: &target,
	})
	require.NoError(t, err)
	require.NotNil(t, res.RetiredID)
	assert.Equal(t, starter.ID, *res.RetiredID)

	// Exactly one active boss at any time; retirement awards nothing.
	active, err := svc.Repos().Quests.ActiveBoss(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, res.QuestID, active.ID)
	disc, err := svc.Repos().Stats.Get(ctx, "DISC")
	require.NoError(t, err)
	assert.Equal(t, 0, disc.TotalXP)

	boss, err := svc.UpdateBossProgress(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, boss.CurrentValue)
	assert.Equal(t, 3, *boss.CurrentValue)

	done, err := svc.CompleteQuest(ctx, active.ID)
	require.NoError(t, err)
	require.NotNil(t, done.XP)
	assert.Equal(t, 200, done.XP.Amount)
	assert.Contains(t, done.Unlocked, "boss_clear")

	_, err = svc.UpdateBossProgress(ctx, 4)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRetiredBossDoesNotCountAsClear(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	_, err := svc.UpsertBossFight(ctx, BossInput{Name: "Boss Fight: Launch v1", Stat: StatCRE, XPReward: 200})
	require.NoError(t, err)

	a, err := svc.Repos().Achievements.Get(ctx, "boss_clear")
	require.NoError(t, err)
	assert.False(t, a.Unlocked)
}

func TestMilestoneAchievements(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	// 100+200+300+400 lifts STR to exactly level 5.
	_, err := svc.AwardXP(ctx, StatSTR, 1000)
	require.NoError(t, err)

	snap, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	workout := questByName(t, snap, "Workout / movement session")

	res, err := svc.CompleteQuest(ctx, workout.ID)
	require.NoError(t, err)
	assert.Contains(t, res.Unlocked, "first_quest")
	assert.Contains(t, res.Unlocked, "strength_5")
	assert.NotContains(t, res.Unlocked, "unicornslayer")

	str, err := svc.Repos().Stats.Get(ctx, "STR")
	require.NoError(t, err)
	assert.Equal(t, 5, str.Level)
	assert.Equal(t, 30, str.XP)
}

func TestWeekStreakMilestone(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	err := svc.Repos().Streaks.UpdateCount(ctx, "daily", 6, "2025-03-09")
	require.NoError(t, err)

	snap, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	q := questByName(t, snap, "Push a commit")

	res, err := svc.CompleteQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.Contains(t, res.Unlocked, "week_streak")

	daily, err := svc.Repos().Streaks.Get(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, 7, daily.Count)
}

func TestAddAchievementNoOpOnExisting(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	created, err := svc.AddAchievement(ctx, "marathon", "Marathon", "🏃")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.AddAchievement(ctx, "marathon", "Other", "x")
	require.NoError(t, err)
	assert.False(t, created)

	a, err := svc.Repos().Achievements.Get(ctx, "marathon")
	require.NoError(t, err)
	assert.Equal(t, "Marathon", a.Name)
}

func TestDashboardEquipmentBonuses(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	_, err := svc.AddEquipment(ctx, storage.EquipmentItem{
		Name:        "Iron Ring",
		Slot:        "ring",
		Icon:        "💍",
		Equipped:    true,
		StatBonuses: []storage.StatBonus{{Stat: "STR", Value: 2}},
	})
	require.NoError(t, err)
	_, err = svc.AddEquipment(ctx, storage.EquipmentItem{
		Name:        "Dusty Tome",
		Slot:        "offhand",
		Icon:        "📕",
		Equipped:    false,
		StatBonuses: []storage.StatBonus{{Stat: "INT", Value: 3}},
	})
	require.NoError(t, err)

	snap, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	// Only equipped items contribute, and bonuses never touch stored
	// levels.
	assert.Equal(t, 2, snap.EquipmentBonuses[StatSTR])
	assert.Zero(t, snap.EquipmentBonuses[StatINT])
	for _, st := range snap.Stats {
		if st.ID == "STR" {
			assert.Equal(t, 1, st.Level)
			assert.Equal(t, 2, st.Bonus)
			assert.Equal(t, 3, st.EffectiveLevel)
		}
	}
}

func TestCatalogLogRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	err := svc.UpsertCatalogEntry(ctx, storage.CatalogEntry{
		Name:      "Junk food binge",
		Stat:      "DISC",
		XP:        -15,
		IsPenalty: true,
		Category:  "health",
	})
	require.NoError(t, err)

	res, err := svc.LogFromCatalog(ctx, "Junk food binge", nil)
	require.NoError(t, err)
	assert.True(t, res.Created)
	require.NotNil(t, res.XP)
	assert.Equal(t, -15, res.XP.Amount)

	_, err = svc.LogFromCatalog(ctx, "does not exist", nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestAddQuestTodayNoOpOnDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	created, err := svc.AddQuestToday(ctx, "Call the bank", StatSOC, 10, false, nil)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.AddQuestToday(ctx, "Call the bank", StatSOC, 10, false, nil)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestUpdateQuestDescription(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	snap, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	q := questByName(t, snap, "Push a commit")

	require.NoError(t, svc.UpdateQuestDescription(ctx, q.ID, "at least one"))
	got, err := svc.Repos().Quests.Get(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "at least one", *got.Description)

	err = svc.UpdateQuestDescription(ctx, 9999, "nope")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestUpdateAchievementMeta(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	name := "Unicorn Slayer"
	cond := "ship something people pay for"
	require.NoError(t, svc.UpdateAchievement(ctx, "unicornslayer", &name, nil, &cond))

	a, err := svc.Repos().Achievements.Get(ctx, "unicornslayer")
	require.NoError(t, err)
	assert.Equal(t, "Unicorn Slayer", a.Name)
	assert.Equal(t, "🦄", a.Icon)
	require.NotNil(t, a.Condition)
	assert.Equal(t, cond, *a.Condition)
	assert.False(t, a.Unlocked)

	err = svc.UpdateAchievement(ctx, "missing", &name, nil, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestAbilitiesRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	id, err := svc.AddAbility(ctx, storage.Ability{
		Name:        "Deep Focus",
		Icon:        "🎯",
		StatBonuses: []storage.StatBonus{{Stat: "INT", Value: 1}},
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	abilities, err := svc.ListAbilities(ctx)
	require.NoError(t, err)
	require.Len(t, abilities, 1)
	assert.Equal(t, "Deep Focus", abilities[0].Name)
	assert.False(t, abilities[0].Unlocked)
}

func TestSetStatXPRecomputesOverall(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustInit(t, svc)

	err := svc.SetStatXP(ctx, StatINT, 4, 50, 2000)
	require.NoError(t, err)

	snap, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	// 2000 lifetime: 500 + 1000 consumed, 500 into level 3.
	assert.Equal(t, 3, snap.Character.OverallLevel)
	assert.Equal(t, 2000, snap.Character.OverallTotalXP)
	assert.Equal(t, 500, snap.OverallXPInLevel)
}
