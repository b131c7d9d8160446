// Package storage keeps fetched provider payloads in a buntdb key/value store.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/buntdb"
)

// DefaultTTL is how long a cached payload stays fresh.
const DefaultTTL = time.Hour

// BuntCache implements provider.Cache using BuntDB. Entries expire after the TTL.
type BuntCache struct {
	db  *buntdb.DB
	ttl time.Duration
}

// FromMemory creates an in-memory cache
func FromMemory(ttl time.Duration) (*BuntCache, error) {
	return NewBuntCache(":memory:", ttl)
}

// NewBuntCache opens path (":memory:" for a process-local cache). A non-positive
// ttl falls back to DefaultTTL.
func NewBuntCache(path string, ttl time.Duration) (*BuntCache, error) {
	if path == "" {
		path = ":memory:"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	return &BuntCache{db: db, ttl: ttl}, nil
}

// Get decodes the payload stored under key into dst.
func (b *BuntCache) Get(key string, dst any) (bool, error) {
	var content string
	err := b.db.View(func(tx *buntdb.Tx) error {
		var err error
		content, err = tx.Get(key)
		return err
	})

	if errors.Is(err, buntdb.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(content), dst); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Set stores value as JSON under key.
func (b *BuntCache) Set(key string, value any) error {
	content, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	return b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, string(content), &buntdb.SetOptions{Expires: true, TTL: b.ttl})
		if err != nil {
			return fmt.Errorf("failed to store %s: %w", key, err)
		}
		return nil
	})
}

// Purge drops every entry.
func (b *BuntCache) Purge() error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		return tx.DeleteAll()
	})
}

// Len returns the number of live entries.
func (b *BuntCache) Len() (int, error) {
	var n int
	err := b.db.View(func(tx *buntdb.Tx) error {
		var err error
		n, err = tx.Len()
		return err
	})
	return n, err
}

// Close closes the database connection
func (b *BuntCache) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
