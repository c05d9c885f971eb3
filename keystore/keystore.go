// Package keystore persists wallet seeds under names in a local bbolt
// database. Seeds are sealed with an Argon2id-derived key and AES-256-GCM
// before they touch disk.
package keystore

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketSeeds = []byte("seeds")

// Store is a bbolt-backed encrypted seed store.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the store at dbPath, creating the parent
// directory if needed.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("keystore: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("keystore: open db: %w", err)
	}

	err = db.Update(func(btx *bbolt.Tx) error {
		_, err := btx.CreateBucketIfNotExists(bucketSeeds)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("keystore: create bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Put seals and stores a seed under name. Existing names are not
// overwritten.
func (s *Store) Put(name string, seed []byte, password string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	sealed, err := sealSeed(seed, password)
	if err != nil {
		return err
	}

	return s.db.Update(func(btx *bbolt.Tx) error {
		bucket := btx.Bucket(bucketSeeds)
		if bucket.Get([]byte(name)) != nil {
			return fmt.Errorf("%w: %q", ErrSeedExists, name)
		}
		return bucket.Put([]byte(name), sealed)
	})
}

// Get loads and opens the seed stored under name.
func (s *Store) Get(name string, password string) ([]byte, error) {
	var sealed []byte
	err := s.db.View(func(btx *bbolt.Tx) error {
		v := btx.Bucket(bucketSeeds).Get([]byte(name))
		if v == nil {
			return fmt.Errorf("%w: %q", ErrSeedNotFound, name)
		}
		sealed = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return openSeed(sealed, password)
}

// Delete removes the seed stored under name.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(btx *bbolt.Tx) error {
		bucket := btx.Bucket(bucketSeeds)
		if bucket.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %q", ErrSeedNotFound, name)
		}
		return bucket.Delete([]byte(name))
	})
}

// List returns the stored seed names in key order.
func (s *Store) List() ([]string, error) {
	var names []string
	err := s.db.View(func(btx *bbolt.Tx) error {
		return btx.Bucket(bucketSeeds).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
