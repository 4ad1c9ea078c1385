// store/knights_test.go
package store

import (
	"fmt"
	"strings"
	"testing"

	"eduventure/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.KnightProfile{}, &models.LearningRoute{}))
	return New(db)
}

func testKnight(id, loginID string, xp int, region string) models.KnightProfile {
	return models.KnightProfile{
		ID:              id,
		LoginID:         loginID,
		PasswordHash:    "hash-" + loginID,
		KnightName:      "Knight " + loginID,
		Region:          region,
		Rank:            models.RankNovice,
		TotalXP:         xp,
		CurrentHP:       models.StartingHP,
		MaxHP:           models.StartingHP,
		EquippedWeapon:  "Wooden Sword",
		DefeatedEnemies: datatypes.JSONSlice[string]{},
		UnlockedRoutes:  datatypes.JSONSlice[string]{models.StarterRouteID},
		Badges:          datatypes.JSONSlice[models.Badge]{},
	}
}

func TestFindByLoginNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Knights.FindByLogin("ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.Knights.Get("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertAndGetRoundtrip(t *testing.T) {
	st := newTestStore(t)

	k := testKnight("k1", "STU001", 150, "North Kingdom")
	k.DefeatedEnemies = datatypes.JSONSlice[string]{"Goblin", "Troll"}
	k.Badges = datatypes.JSONSlice[models.Badge]{{ID: "first_quest", Name: "First Steps"}}
	require.NoError(t, st.Knights.Insert(&k))

	got, err := st.Knights.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, "STU001", got.LoginID)
	assert.Equal(t, 150, got.TotalXP)
	assert.Equal(t, []string{"Goblin", "Troll"}, []string(got.DefeatedEnemies))
	require.Len(t, got.Badges, 1)
	assert.Equal(t, "first_quest", got.Badges[0].ID)
}

func TestListTopByExperience(t *testing.T) {
	st := newTestStore(t)

	for i, xp := range []int{40, 850, 220, 480} {
		k := testKnight(fmt.Sprintf("k%d", i), fmt.Sprintf("STU%03d", i), xp, "North Kingdom")
		require.NoError(t, st.Knights.Insert(&k))
	}

	top, err := st.Knights.ListTopByExperience(3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, 850, top[0].TotalXP)
	assert.Equal(t, 480, top[1].TotalXP)
	assert.Equal(t, 220, top[2].TotalXP)
}

func TestListTopByRegion(t *testing.T) {
	st := newTestStore(t)

	north := testKnight("k1", "STU001", 100, "North Kingdom")
	east := testKnight("k2", "STU002", 500, "East Empire")
	require.NoError(t, st.Knights.Insert(&north))
	require.NoError(t, st.Knights.Insert(&east))

	got, err := st.Knights.ListTopByRegion("East Empire", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "STU002", got[0].LoginID)
}

func TestUpdateProfileFieldsIsNarrow(t *testing.T) {
	st := newTestStore(t)

	k := testKnight("k1", "STU001", 300, "North Kingdom")
	require.NoError(t, st.Knights.Insert(&k))

	require.NoError(t, st.Knights.UpdateProfileFields("k1", "New Name", "new@example.com", "555-0100"))

	got, err := st.Knights.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.KnightName)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "555-0100", got.PhoneNumber)
	// Everything else stays put.
	assert.Equal(t, 300, got.TotalXP)
	assert.Equal(t, "hash-STU001", got.PasswordHash)
	assert.Equal(t, "STU001", got.LoginID)
}

func TestUpdatePasswordHash(t *testing.T) {
	st := newTestStore(t)

	k := testKnight("k1", "STU001", 0, "North Kingdom")
	require.NoError(t, st.Knights.Insert(&k))

	require.NoError(t, st.Knights.UpdatePasswordHash("k1", "new-hash"))

	got, err := st.Knights.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.Equal(t, "Knight STU001", got.KnightName)
}

func TestClassAggregates(t *testing.T) {
	st := newTestStore(t)

	avg, err := st.Knights.AverageXP()
	require.NoError(t, err)
	assert.Zero(t, avg)

	ranks := []models.KnightRank{models.RankNovice, models.RankNovice, models.RankSquire}
	for i, r := range ranks {
		k := testKnight(fmt.Sprintf("k%d", i), fmt.Sprintf("STU%03d", i), (i+1)*100, "North Kingdom")
		k.Rank = r
		require.NoError(t, st.Knights.Insert(&k))
	}

	n, err := st.Knights.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	avg, err = st.Knights.AverageXP()
	require.NoError(t, err)
	assert.InDelta(t, 200.0, avg, 0.01)

	dist, err := st.Knights.RankDistribution()
	require.NoError(t, err)
	buckets := make(map[models.KnightRank]int64)
	for _, rc := range dist {
		buckets[rc.Rank] = rc.Count
	}
	assert.EqualValues(t, 2, buckets[models.RankNovice])
	assert.EqualValues(t, 1, buckets[models.RankSquire])
}

func TestRouteReplacePersistsModuleFlags(t *testing.T) {
	st := newTestStore(t)

	route := models.LearningRoute{
		ID:        "r1",
		RouteName: "Test Route",
		Modules: datatypes.JSONSlice[models.QuestModule]{
			{ID: "m1", ModuleNumber: 1, EnemyName: "Goblin", XPReward: 50},
		},
	}
	require.NoError(t, st.Routes.InsertIfAbsent([]models.LearningRoute{route}))

	_, err := st.Routes.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	route.Modules[0].IsCompleted = true
	require.NoError(t, st.Routes.Replace(&route))

	got, err := st.Routes.Get("r1")
	require.NoError(t, err)
	require.Len(t, got.Modules, 1)
	assert.True(t, got.Modules[0].IsCompleted)
}

func TestTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)

	k := testKnight("k1", "STU001", 0, "North Kingdom")
	require.NoError(t, st.Knights.Insert(&k))

	wantErr := fmt.Errorf("boom")
	err := st.Tx(func(tx *Store) error {
		k.TotalXP = 999
		if err := tx.Knights.Replace(&k); err != nil {
			return err
		}
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	got, err := st.Knights.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalXP)
}
