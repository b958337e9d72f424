package items

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/curatehub/libcurate-go/registry"
)

var bucketItemSets = []byte("item_sets")

// BoltCache persists fetched item sets in a bbolt database, keyed the
// same way as the in-memory cache. It lets a restarted process warm its
// listings without waiting for a full re-fetch.
type BoltCache struct {
	db *bbolt.DB
}

// OpenBoltCache opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltCache(dbPath string) (*BoltCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("items: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("items: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketItemSets)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("items: create bucket: %w", err)
	}
	return &BoltCache{db: db}, nil
}

// Close closes the underlying database.
func (c *BoltCache) Close() error { return c.db.Close() }

// Put stores an item set under key, overwriting any previous entry.
func (c *BoltCache) Put(key string, items []registry.Item) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(items); err != nil {
		return fmt.Errorf("items: encode item set: %w", err)
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketItemSets).Put([]byte(key), buf.Bytes())
	})
}

// Get returns the item set stored under key, if present.
func (c *BoltCache) Get(key string) ([]registry.Item, bool, error) {
	var items []registry.Item
	found := false
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketItemSets).Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		return gob.NewDecoder(bytes.NewReader(data)).Decode(&items)
	})
	if err != nil {
		return nil, false, fmt.Errorf("items: decode item set: %w", err)
	}
	return items, found, nil
}

// Delete removes the entry for key, if present.
func (c *BoltCache) Delete(key string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketItemSets).Delete([]byte(key))
	})
}

// Flush removes all entries.
func (c *BoltCache) Flush() error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketItemSets); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketItemSets)
		return err
	})
}
