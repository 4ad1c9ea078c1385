// store/knights.go
package store

import (
	"errors"
	"time"

	"eduventure/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KnightStore persists knight profiles and answers the credential queries
// used by the progression engine.
type KnightStore struct {
	db *gorm.DB
}

// FindByLogin returns the profile with the given login id, or ErrNotFound.
func (s *KnightStore) FindByLogin(loginID string) (*models.KnightProfile, error) {
	var k models.KnightProfile
	if err := s.db.Where("login_id = ?", loginID).First(&k).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &k, nil
}

// Get returns the profile with the given primary id, or ErrNotFound.
func (s *KnightStore) Get(id string) (*models.KnightProfile, error) {
	var k models.KnightProfile
	if err := s.db.First(&k, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &k, nil
}

// Insert upserts the profile keyed by id, replace-on-conflict.
func (s *KnightStore) Insert(k *models.KnightProfile) error {
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(k).Error
}

// Replace writes the whole profile back, last writer wins.
func (s *KnightStore) Replace(k *models.KnightProfile) error {
	return s.db.Save(k).Error
}

// ListTopByExperience returns up to limit profiles ordered by total XP
// descending. Ties carry no defined order.
func (s *KnightStore) ListTopByExperience(limit int) ([]models.KnightProfile, error) {
	var knights []models.KnightProfile
	if err := s.db.Order("total_xp DESC").Limit(limit).Find(&knights).Error; err != nil {
		return nil, err
	}
	return knights, nil
}

// ListTopByRegion is ListTopByExperience restricted to one region tag.
func (s *KnightStore) ListTopByRegion(region string, limit int) ([]models.KnightProfile, error) {
	var knights []models.KnightProfile
	if err := s.db.Where("region = ?", region).
		Order("total_xp DESC").Limit(limit).Find(&knights).Error; err != nil {
		return nil, err
	}
	return knights, nil
}

// UpdatePasswordHash replaces only the stored hash for the given knight.
func (s *KnightStore) UpdatePasswordHash(id, newHash string) error {
	return s.db.Model(&models.KnightProfile{}).
		Where("id = ?", id).
		Update("password_hash", newHash).Error
}

// UpdateProfileFields updates the three editable profile fields without
// re-persisting the whole record.
func (s *KnightStore) UpdateProfileFields(id, name, email, phone string) error {
	return s.db.Model(&models.KnightProfile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"knight_name":  name,
			"email":        email,
			"phone_number": phone,
		}).Error
}

// TouchLastLogin stamps the profile's last successful login.
func (s *KnightStore) TouchLastLogin(id string) error {
	return s.db.Model(&models.KnightProfile{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

// Count returns the number of stored profiles.
func (s *KnightStore) Count() (int64, error) {
	var n int64
	err := s.db.Model(&models.KnightProfile{}).Count(&n).Error
	return n, err
}

// RankCount is one bucket of the rank distribution.
type RankCount struct {
	Rank  models.KnightRank `json:"rank"`
	Count int64             `json:"count"`
}

// RankDistribution returns how many knights hold each rank.
func (s *KnightStore) RankDistribution() ([]RankCount, error) {
	var rows []RankCount
	err := s.db.Model(&models.KnightProfile{}).
		Select("rank, COUNT(*) as count").
		Group("rank").
		Find(&rows).Error
	return rows, err
}

// AverageXP returns the mean total XP across all knights, 0 when empty.
func (s *KnightStore) AverageXP() (float64, error) {
	var avg *float64
	err := s.db.Model(&models.KnightProfile{}).
		Select("AVG(total_xp)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
