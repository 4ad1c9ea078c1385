// services/sessions_test.go
package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"eduventure/game"
	"eduventure/models"
	"eduventure/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.KnightProfile{}, &models.LearningRoute{}))
	return store.New(db)
}

func insertKnight(t *testing.T, st *store.Store, id string) {
	t.Helper()
	k := models.KnightProfile{
		ID:              id,
		LoginID:         "login-" + id,
		PasswordHash:    "hash",
		KnightName:      "Knight " + id,
		Region:          models.DefaultRegion,
		Rank:            models.RankNovice,
		CurrentHP:       models.StartingHP,
		MaxHP:           models.StartingHP,
		DefeatedEnemies: datatypes.JSONSlice[string]{},
		UnlockedRoutes:  datatypes.JSONSlice[string]{models.StarterRouteID},
		Badges:          datatypes.JSONSlice[models.Badge]{},
	}
	require.NoError(t, st.Knights.Insert(&k))
}

func TestEngineRestoresMissingSession(t *testing.T) {
	st := newTestStore(t)
	insertKnight(t, st, "k1")

	r := NewSessionRegistry(st, time.Hour)

	e, err := r.Engine("k1")
	require.NoError(t, err)
	assert.True(t, e.LoggedIn())
	assert.Equal(t, 1, r.Len())

	// Same engine on the second lookup.
	again, err := r.Engine("k1")
	require.NoError(t, err)
	assert.Same(t, e, again)
	assert.Equal(t, 1, r.Len())
}

func TestEngineUnknownKnight(t *testing.T) {
	r := NewSessionRegistry(newTestStore(t), time.Hour)

	_, err := r.Engine("no-such-knight")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 0, r.Len())
}

func TestRemoveLogsOut(t *testing.T) {
	st := newTestStore(t)
	insertKnight(t, st, "k1")

	r := NewSessionRegistry(st, time.Hour)
	e, err := r.Engine("k1")
	require.NoError(t, err)

	r.Remove("k1")
	assert.Equal(t, 0, r.Len())
	assert.False(t, e.LoggedIn())

	r.Remove("k1") // idempotent
	assert.Equal(t, 0, r.Len())
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	st := newTestStore(t)
	insertKnight(t, st, "idle")
	insertKnight(t, st, "active")

	r := NewSessionRegistry(st, time.Hour)
	idle, err := r.Engine("idle")
	require.NoError(t, err)
	active, err := r.Engine("active")
	require.NoError(t, err)

	r.mu.Lock()
	r.sessions["idle"].lastActive = time.Now().Add(-2 * time.Hour)
	r.mu.Unlock()

	r.Sweep()

	assert.Equal(t, 1, r.Len())
	assert.False(t, idle.LoggedIn())
	assert.True(t, active.LoggedIn())
}

func TestAttachReplacesSession(t *testing.T) {
	st := newTestStore(t)
	insertKnight(t, st, "k1")

	r := NewSessionRegistry(st, time.Hour)

	first := game.NewEngine(st)
	_, err := first.Restore("k1")
	require.NoError(t, err)
	r.Attach("k1", first)

	second := game.NewEngine(st)
	_, err = second.Restore("k1")
	require.NoError(t, err)
	r.Attach("k1", second)

	got, err := r.Engine("k1")
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Equal(t, 1, r.Len())
}

func TestStopIsIdempotent(t *testing.T) {
	r := NewSessionRegistry(newTestStore(t), time.Hour)
	r.Start()
	r.Stop()
	r.Stop()
}
