package store

import (
	. "github.com/aurelia/aurelia-sub054/pkg/store/storedefs"
	bolt "go.etcd.io/bbolt"
)

func init() {
	initDB["initialize variable table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketVar))
		return err
	}
}

// Var gets the source text of a stored variable.
func (s *dbStore) Var(name string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketVar))
		v := b.Get([]byte(name))
		if v == nil {
			return ErrNoVar
		}
		value = string(v)
		return nil
	})
	return value, err
}

// SetVar sets the source text of a stored variable.
func (s *dbStore) SetVar(name, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketVar))
		return b.Put([]byte(name), []byte(value))
	})
}

// DelVar deletes a stored variable. Deleting a variable that does not exist
// is not an error.
func (s *dbStore) DelVar(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketVar))
		return b.Delete([]byte(name))
	})
}

// VarNames returns the names of all stored variables, in byte order.
func (s *dbStore) VarNames() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketVar)).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}
