package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketDocuments = []byte("documents")

// BoltBackend keeps documents in a BoltDB bucket, keyed by document name.
type BoltBackend struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewBoltBackend opens vista.db under dir. An empty dir gives a memory-only backend.
func NewBoltBackend(dir string) (*BoltBackend, error) {
	if dir == "" {
		return &BoltBackend{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "vista.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltBackend{db: db, cache: make(map[string][]byte)}, nil
}

func (b *BoltBackend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func (b *BoltBackend) Read(name string) ([]byte, error) {
	b.mu.RLock()
	if data, ok := b.cache[name]; ok {
		b.mu.RUnlock()
		return data, nil
	}
	b.mu.RUnlock()

	if b.db == nil {
		return nil, ErrDocumentNotFound
	}

	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get([]byte(name)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if data == nil {
		return nil, ErrDocumentNotFound
	}

	b.mu.Lock()
	b.cache[name] = data
	b.mu.Unlock()

	return data, nil
}

func (b *BoltBackend) Write(name string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	if b.db != nil {
		err := b.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketDocuments).Put([]byte(name), stored)
		})
		if err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	b.mu.Lock()
	b.cache[name] = stored
	b.mu.Unlock()
	return nil
}
