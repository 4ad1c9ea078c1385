// store/routes.go
package store

import (
	"errors"

	"eduventure/models"

	"gorm.io/gorm"
)

// RouteStore persists learning routes. A route row carries its full ordered
// module list; modules are not independently queryable.
type RouteStore struct {
	db *gorm.DB
}

// ListAll returns every route, no filtering.
func (s *RouteStore) ListAll() ([]models.LearningRoute, error) {
	var routes []models.LearningRoute
	if err := s.db.Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

// Get returns the route with the given id, or ErrNotFound.
func (s *RouteStore) Get(routeID string) (*models.LearningRoute, error) {
	var r models.LearningRoute
	if err := s.db.First(&r, "id = ?", routeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// InsertIfAbsent seeds the given routes. Not idempotent on its own: callers
// must check Count() == 0 first, double-seeding is a caller bug.
func (s *RouteStore) InsertIfAbsent(routes []models.LearningRoute) error {
	if len(routes) == 0 {
		return nil
	}
	return s.db.Create(&routes).Error
}

// Replace writes the whole route back, used after a module's completion flag
// changes.
func (s *RouteStore) Replace(r *models.LearningRoute) error {
	return s.db.Save(r).Error
}

// Count returns the number of stored routes.
func (s *RouteStore) Count() (int64, error) {
	var n int64
	err := s.db.Model(&models.LearningRoute{}).Count(&n).Error
	return n, err
}
