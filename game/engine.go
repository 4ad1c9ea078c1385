// game/engine.go
package game

import (
	"errors"
	"sync"
	"time"

	"eduventure/models"
	"eduventure/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Engine owns one session: the current knight and the loaded route catalog.
// It is either logged out (nil knight) or logged in; there are no other
// states. All mutation happens copy-and-replace behind a single mutex, and
// every update publishes a wholly new snapshot to watchers.
type Engine struct {
	store *store.Store

	mu       sync.RWMutex
	knight   *models.KnightProfile
	routes   []models.LearningRoute
	watchers map[chan Snapshot]struct{}
}

// Snapshot is the published view of a session. Knight is nil when logged out.
type Snapshot struct {
	Knight *models.KnightProfile  `json:"knight"`
	Routes []models.LearningRoute `json:"routes"`
}

func NewEngine(st *store.Store) *Engine {
	return &Engine{
		store:    st,
		watchers: make(map[chan Snapshot]struct{}),
	}
}

// Register creates a new knight profile and opens a session for it. Fails
// with ErrLoginTaken when the login id already exists; nothing is written in
// that case.
func (e *Engine) Register(loginID, password, knightName, email, phone string) (*models.KnightProfile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.Knights.FindByLogin(loginID); err == nil {
		return nil, ErrLoginTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	knight := models.KnightProfile{
		ID:              uuid.NewString(),
		LoginID:         loginID,
		PasswordHash:    string(hash),
		KnightName:      knightName,
		Email:           email,
		PhoneNumber:     phone,
		Region:          models.DefaultRegion,
		Rank:            RankFor(0),
		TotalXP:         0,
		CurrentHP:       models.StartingHP,
		MaxHP:           models.StartingHP,
		EquippedWeapon:  WeaponFor(0),
		EquippedArmor:   "Leather Armor",
		DefeatedEnemies: datatypes.JSONSlice[string]{},
		UnlockedRoutes:  datatypes.JSONSlice[string]{models.StarterRouteID},
		Badges:          datatypes.JSONSlice[models.Badge]{},
		CreatedAt:       now,
		LastLogin:       now,
	}

	if err := e.store.Knights.Insert(&knight); err != nil {
		return nil, err
	}
	return e.beginSession(&knight)
}

// Login verifies credentials and opens a session. Wrong id and wrong password
// are deliberately indistinguishable to the caller.
func (e *Engine) Login(loginID, password string) (*models.KnightProfile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	knight, err := e.store.Knights.FindByLogin(loginID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(knight.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if err := e.store.Knights.TouchLastLogin(knight.ID); err != nil {
		return nil, err
	}
	knight.LastLogin = time.Now()

	return e.beginSession(knight)
}

// Restore reopens a session for an already-authenticated knight, used when a
// valid token outlives the in-memory session (e.g. across a restart).
func (e *Engine) Restore(knightID string) (*models.KnightProfile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	knight, err := e.store.Knights.Get(knightID)
	if err != nil {
		return nil, err
	}
	return e.beginSession(knight)
}

// beginSession loads the catalog and publishes the first snapshot.
// Caller holds e.mu.
func (e *Engine) beginSession(knight *models.KnightProfile) (*models.KnightProfile, error) {
	routes, err := e.store.Routes.ListAll()
	if err != nil {
		return nil, err
	}
	e.knight = knight
	e.routes = routes
	e.publishLocked()

	out := knight.Clone()
	return &out, nil
}

// CompleteModule marks the module defeated: grants its XP reward, records the
// enemy, re-derives rank and weapon, flips the module's completed flag and
// persists both records in one transaction. Unknown module ids, a logged-out
// session and already-completed modules are all silent no-ops, so the reward
// is granted exactly once.
func (e *Engine) CompleteModule(moduleID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.knight == nil {
		return nil
	}

	routeIdx, modIdx := -1, -1
	for i := range e.routes {
		if j := e.routes[i].ModuleIndex(moduleID); j >= 0 {
			routeIdx, modIdx = i, j
			break
		}
	}
	if routeIdx < 0 {
		return nil
	}

	module := e.routes[routeIdx].Modules[modIdx]
	if module.IsCompleted {
		return nil
	}

	knight := e.knight.Clone()
	knight.TotalXP += module.XPReward
	knight.Rank = RankFor(knight.TotalXP)
	if !knight.HasDefeated(module.EnemyName) {
		knight.DefeatedEnemies = append(knight.DefeatedEnemies, module.EnemyName)
	}
	knight.EquippedWeapon = WeaponFor(len(knight.DefeatedEnemies))
	awardMilestoneBadges(&knight)

	route := e.routes[routeIdx].Clone()
	route.Modules[modIdx].IsCompleted = true

	// One transaction spans both records so a crash cannot grant XP without
	// marking the module complete, or vice versa.
	err := e.store.Tx(func(tx *store.Store) error {
		if err := tx.Routes.Replace(&route); err != nil {
			return err
		}
		return tx.Knights.Replace(&knight)
	})
	if err != nil {
		return err
	}

	routes := append([]models.LearningRoute{}, e.routes...)
	routes[routeIdx] = route
	e.knight = &knight
	e.routes = routes
	e.publishLocked()
	return nil
}

// UnlockBadge pins a badge to the current knight. Duplicate ids are ignored.
func (e *Engine) UnlockBadge(badge models.Badge) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.knight == nil {
		return ErrNotLoggedIn
	}
	if e.knight.HasBadge(badge.ID) {
		return nil
	}

	knight := e.knight.Clone()
	if badge.UnlockedAt == 0 {
		badge.UnlockedAt = time.Now().UnixMilli()
	}
	knight.Badges = append(knight.Badges, badge)

	if err := e.store.Knights.Replace(&knight); err != nil {
		return err
	}
	e.knight = &knight
	e.publishLocked()
	return nil
}

// UpdateProfile edits the display name and contact fields. XP, rank and
// inventory are untouched.
func (e *Engine) UpdateProfile(name, email, phone string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.knight == nil {
		return ErrNotLoggedIn
	}

	if err := e.store.Knights.UpdateProfileFields(e.knight.ID, name, email, phone); err != nil {
		return err
	}

	knight := e.knight.Clone()
	knight.KnightName = name
	knight.Email = email
	knight.PhoneNumber = phone
	e.knight = &knight
	e.publishLocked()
	return nil
}

// ChangePassword verifies the old password before storing a new hash. On
// failure the stored hash is untouched and the old password keeps working.
func (e *Engine) ChangePassword(oldPassword, newPassword string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.knight == nil {
		return ErrNotLoggedIn
	}

	if bcrypt.CompareHashAndPassword([]byte(e.knight.PasswordHash), []byte(oldPassword)) != nil {
		return ErrIncorrectPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := e.store.Knights.UpdatePasswordHash(e.knight.ID, string(hash)); err != nil {
		return err
	}

	knight := e.knight.Clone()
	knight.PasswordHash = string(hash)
	e.knight = &knight
	return nil
}

// Leaderboard returns the top knights by total XP. Does not require a
// session.
func (e *Engine) Leaderboard(limit int) ([]models.KnightProfile, error) {
	return e.store.Knights.ListTopByExperience(limit)
}

// Logout clears the session. Idempotent.
func (e *Engine) Logout() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.knight == nil && e.routes == nil {
		return
	}
	e.knight = nil
	e.routes = nil
	e.publishLocked()
}

// LoggedIn reports whether a session is open.
func (e *Engine) LoggedIn() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.knight != nil
}

// Snapshot returns a deep copy of the current session state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

// Watch subscribes to session snapshots. The current snapshot is delivered
// immediately; slow consumers only ever see the latest state. The returned
// cancel func must be called to release the subscription.
func (e *Engine) Watch() (<-chan Snapshot, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan Snapshot, 1)
	ch <- e.snapshotLocked()
	e.watchers[ch] = struct{}{}

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.watchers[ch]; ok {
			delete(e.watchers, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// snapshotLocked deep-copies the session state. Caller holds e.mu.
func (e *Engine) snapshotLocked() Snapshot {
	var snap Snapshot
	if e.knight != nil {
		k := e.knight.Clone()
		snap.Knight = &k
	}
	if e.routes != nil {
		snap.Routes = make([]models.LearningRoute, len(e.routes))
		for i, r := range e.routes {
			snap.Routes[i] = r.Clone()
		}
	}
	return snap
}

// publishLocked pushes the current snapshot to every watcher, replacing any
// undelivered one. Caller holds e.mu.
func (e *Engine) publishLocked() {
	snap := e.snapshotLocked()
	for ch := range e.watchers {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
