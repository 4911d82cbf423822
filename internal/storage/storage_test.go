package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) *Repos {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepos(db)
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening an existing file must not fail on already-applied
	// migrations.
	db, err = Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestQuestQueriesExcludeBosses(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	_, err := r.Quests.Insert(ctx, QuestInsert{Name: "Workout", Stat: "STR", XPReward: 30, Date: "2025-03-10", CreatedAt: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)
	bossID, err := r.Quests.Insert(ctx, QuestInsert{Name: "Boss Fight: Workout", Stat: "STR", XPReward: 150, Date: "2025-03-10", IsBoss: true, CreatedAt: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	count, err := r.Quests.CountOnDate(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	listed, err := r.Quests.ListOnDate(ctx, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Workout", listed[0].Name)

	// Template-identity lookup never matches a boss, even on a name
	// collision.
	found, err := r.Quests.FindByNameOnDate(ctx, "Boss Fight: Workout", "2025-03-10")
	require.NoError(t, err)
	assert.Nil(t, found)

	boss, err := r.Quests.ActiveBoss(ctx)
	require.NoError(t, err)
	require.NotNil(t, boss)
	assert.Equal(t, bossID, boss.ID)

	require.NoError(t, r.Quests.MarkCompleted(ctx, bossID))
	boss, err = r.Quests.ActiveBoss(ctx)
	require.NoError(t, err)
	assert.Nil(t, boss)
}

func TestQuestNullableColumnsRoundTrip(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	deadline := "2025-03-16T23:59:59Z"
	target := 5
	id, err := r.Quests.Insert(ctx, QuestInsert{
		Name:        "Boss Fight: Launch",
		Stat:        "CRE",
		XPReward:    200,
		Date:        "2025-03-10",
		IsBoss:      true,
		Deadline:    &deadline,
		TargetValue: &target,
		CreatedAt:   "2025-03-10T09:00:00Z",
	})
	require.NoError(t, err)

	q, err := r.Quests.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, q)
	require.NotNil(t, q.Deadline)
	assert.Equal(t, deadline, *q.Deadline)
	require.NotNil(t, q.TargetValue)
	assert.Equal(t, 5, *q.TargetValue)
	assert.Nil(t, q.CurrentValue)
	assert.Nil(t, q.Proof)

	require.NoError(t, r.Quests.UpdateCurrentValue(ctx, id, 2))
	q, err = r.Quests.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, q.CurrentValue)
	assert.Equal(t, 2, *q.CurrentValue)
}

func TestAchievementUnlockGuard(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, r.Achievements.Insert(ctx, Achievement{Key: "first_quest", Name: "First Blood", Icon: "🗡️"}))
	require.NoError(t, r.Achievements.Unlock(ctx, "first_quest", "2025-03-10T09:00:00Z"))

	// A second unlock must not overwrite the original timestamp.
	require.NoError(t, r.Achievements.Unlock(ctx, "first_quest", "2025-04-01T00:00:00Z"))

	a, err := r.Achievements.Get(ctx, "first_quest")
	require.NoError(t, err)
	assert.True(t, a.Unlocked)
	require.NotNil(t, a.UnlockedAt)
	assert.Equal(t, "2025-03-10T09:00:00Z", *a.UnlockedAt)
}

func TestCatalogUpsertReplacesByName(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, r.Catalog.Upsert(ctx, CatalogEntry{Name: "Morning run", Stat: "STR", XP: 20, Category: "fitness"}))
	require.NoError(t, r.Catalog.Upsert(ctx, CatalogEntry{Name: "Morning run", Stat: "STR", XP: 35, Category: "fitness"}))

	entries, err := r.Catalog.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 35, entries[0].XP)

	missing, err := r.Catalog.GetByName(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEquipmentBonusesRoundTrip(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	id, err := r.Equipment.Insert(ctx, EquipmentItem{
		Name:        "Iron Ring",
		Slot:        "ring",
		Icon:        "💍",
		StatBonuses: []StatBonus{{Stat: "STR", Value: 2}, {Stat: "DISC", Value: 1}},
	})
	require.NoError(t, err)

	item, err := r.Equipment.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.False(t, item.Equipped)
	require.Len(t, item.StatBonuses, 2)
	assert.Equal(t, "STR", item.StatBonuses[0].Stat)
	assert.Equal(t, 2, item.StatBonuses[0].Value)

	require.NoError(t, r.Equipment.SetEquipped(ctx, id, true))
	equipped, err := r.Equipment.ListEquipped(ctx)
	require.NoError(t, err)
	require.Len(t, equipped, 1)
	assert.Equal(t, id, equipped[0].ID)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("boom")
	err = WithTx(ctx, db, func(r *Repos) error {
		if _, err := r.Quests.Insert(ctx, QuestInsert{Name: "Doomed", Stat: "INT", XPReward: 10, Date: "2025-03-10", CreatedAt: "2025-03-10T09:00:00Z"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	quests, err := NewRepos(db).Quests.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, quests)
}
