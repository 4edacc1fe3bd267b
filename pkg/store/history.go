package store

import (
	"bytes"
	"encoding/binary"

	. "github.com/aurelia/aurelia-sub054/pkg/store/storedefs"
	bolt "go.etcd.io/bbolt"
)

func init() {
	initDB["create history bucket"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketHistory))
		return err
	}
}

func history(tx *bolt.Tx) *bolt.Bucket { return tx.Bucket([]byte(bucketHistory)) }

// NextSeq returns the sequence number the next history entry will get.
func (s *dbStore) NextSeq() (int, error) {
	var next uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		next = history(tx).Sequence() + 1
		return nil
	})
	return int(next), err
}

// AddEntry appends an expression to the history and returns its sequence
// number.
func (s *dbStore) AddEntry(text string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := history(tx)
		var err error
		if seq, err = b.NextSequence(); err != nil {
			return err
		}
		return b.Put(seqKey(seq), []byte(text))
	})
	return int(seq), err
}

// DelEntry deletes a history entry. The sequence numbers of other entries
// do not change.
func (s *dbStore) DelEntry(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return history(tx).Delete(seqKey(uint64(seq)))
	})
}

// Entry returns the text of a history entry.
func (s *dbStore) Entry(seq int) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := history(tx).Get(seqKey(uint64(seq)))
		if v == nil {
			return ErrNoMatchingEntry
		}
		text = string(v)
		return nil
	})
	return text, err
}

// Entries returns the entries with sequence numbers in [from, upto), oldest
// first.
func (s *dbStore) Entries(from, upto int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := history(tx).Cursor()
		for k, v := c.Seek(seqKey(uint64(from))); k != nil && seqOf(k) < uint64(upto); k, v = c.Next() {
			entries = append(entries, entry(k, v))
		}
		return nil
	})
	return entries, err
}

// NextEntry returns the oldest entry starting with prefix whose sequence
// number is at least from.
func (s *dbStore) NextEntry(from int, prefix string) (Entry, error) {
	return s.search(prefix, func(c *bolt.Cursor) ([]byte, []byte) {
		return c.Seek(seqKey(uint64(from)))
	}, (*bolt.Cursor).Next)
}

// PrevEntry returns the newest entry starting with prefix whose sequence
// number is below upto.
func (s *dbStore) PrevEntry(upto int, prefix string) (Entry, error) {
	return s.search(prefix, func(c *bolt.Cursor) ([]byte, []byte) {
		if k, _ := c.Seek(seqKey(uint64(upto))); k != nil {
			return c.Prev()
		}
		// upto is past the last entry.
		return c.Last()
	}, (*bolt.Cursor).Prev)
}

// Walks the history from the position found by start, in the direction of
// step, until an entry with the prefix is found.
func (s *dbStore) search(prefix string, start, step func(*bolt.Cursor) ([]byte, []byte)) (Entry, error) {
	var found Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := history(tx).Cursor()
		p := []byte(prefix)
		for k, v := start(c); k != nil; k, v = step(c) {
			if bytes.HasPrefix(v, p) {
				found = entry(k, v)
				return nil
			}
		}
		return ErrNoMatchingEntry
	})
	return found, err
}

func entry(k, v []byte) Entry {
	return Entry{Text: string(v), Seq: int(seqOf(k))}
}

// Keys are big-endian so that byte order is numeric order.
func seqKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func seqOf(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
