package badger

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

// Cache stores engine decisions in an embedded Badger database, for
// deployments that run without Redis.
type Cache struct {
	db *badger.DB
}

// Open opens (or creates) the cache under dir.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory keeps everything in memory; nothing touches disk.
func OpenInMemory() (*Cache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Cache, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	log.Printf("[CACHE] Badger opened (in-memory=%v, dir=%q)", opts.InMemory, opts.Dir)
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Set stores value under key. Strings and byte slices are stored as-is; a
// non-positive expiration keeps the entry until it is deleted.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return errors.New("badger cache: value must be string or []byte")
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data)
		if expiration > 0 {
			entry = entry.WithTTL(expiration)
		}
		return txn.SetEntry(entry)
	})
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	var val string
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return domain.ErrCacheMiss
		}
		if err != nil {
			return err
		}
		return item.Value(func(b []byte) error {
			val = string(b)
			return nil
		})
	})
	return val, err
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}
