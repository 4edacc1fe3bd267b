// Package store persists the expression history and the variables defined in
// interactive sessions.
package store

import (
	"fmt"
	"time"

	"github.com/aurelia/aurelia-sub054/pkg/logutil"
	"github.com/aurelia/aurelia-sub054/pkg/store/storedefs"
	bolt "go.etcd.io/bbolt"
)

var logger = logutil.GetLogger("[store] ")

const (
	bucketHistory = "history"
	bucketVar     = "var"
)

// Functions that initialize buckets, keyed by description. Populated by init
// functions in the files that own each bucket.
var initDB = map[string]func(*bolt.Tx) error{}

// DBStore is the permanent storage backend, backed by a bbolt database.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens the database file at the given path, creating it when it
// does not exist.
func NewStore(path string) (DBStore, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new store from a database that is already open.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	st := &dbStore{db}
	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
