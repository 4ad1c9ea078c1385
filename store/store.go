// store/store.go
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist. Absence is an
// ordinary outcome here, never a storage failure.
var ErrNotFound = errors.New("store: record not found")

// Store bundles the persistence contracts over a single database handle so
// callers can run mutations that span both tables in one transaction.
type Store struct {
	Knights *KnightStore
	Routes  *RouteStore

	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{
		Knights: &KnightStore{db: db},
		Routes:  &RouteStore{db: db},
		db:      db,
	}
}

// Tx runs fn against transactional views of the stores. The transaction is
// rolled back if fn returns an error.
func (s *Store) Tx(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
