package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vitrinashop/vitrina/internal/domain"
)

// Bucket names
var (
	bucketProducts = []byte("products")
	bucketKV       = []byte("kv")
	bucketContacts = []byte("contacts")
)

// CatalogStore implements domain.CatalogStore using BoltDB.
// It keeps the last successfully merged catalog so the storefront can
// open offline, plus a small kv bucket for arbitrary values that must
// survive restarts.
type CatalogStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewCatalogStore opens (or creates) the store under baseCacheDir.
// An empty baseCacheDir yields a memory-only store with no persistence.
func NewCatalogStore(baseCacheDir, catalogURL string) (*CatalogStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &CatalogStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if catalogURL != "" {
		dir = filepath.Join(baseCacheDir, hashSourceURL(catalogURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "vitrina.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketProducts, bucketKV, bucketContacts} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &CatalogStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashSourceURL(url string) string {
	normalized := strings.TrimRight(strings.ToLower(url), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *CatalogStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *CatalogStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.setRaw(bucket, key, data)
}

func (s *CatalogStore) setRaw(bucket []byte, key string, data []byte) error {
	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Products ===

// GetProducts returns the last persisted catalog, if any.
func (s *CatalogStore) GetProducts() ([]domain.Product, bool) {
	var products []domain.Product
	ok := s.get(bucketProducts, "list", &products)
	return products, ok
}

// SaveProducts replaces the persisted catalog and records the save time.
func (s *CatalogStore) SaveProducts(products []domain.Product) error {
	if err := s.set(bucketProducts, "list", products); err != nil {
		return err
	}
	return s.set(bucketProducts, "saved_at", time.Now().Unix())
}

// SavedAt returns the unix time of the last catalog save, 0 when never.
func (s *CatalogStore) SavedAt() int64 {
	var ts int64
	if !s.get(bucketProducts, "saved_at", &ts) {
		return 0
	}
	return ts
}

// === Key-value pairs ===

// GetValue reads one small stored value.
func (s *CatalogStore) GetValue(key string) (string, bool) {
	var v string
	ok := s.get(bucketKV, key, &v)
	return v, ok
}

// SetValue stores one small value.
func (s *CatalogStore) SetValue(key, value string) error {
	return s.set(bucketKV, key, value)
}

// === Contact submissions ===

// SaveContact appends one submitted contact message payload.
func (s *CatalogStore) SaveContact(id string, payload []byte) error {
	return s.setRaw(bucketContacts, id, payload)
}

// InvalidateAll wipes the entire store.
func (s *CatalogStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketProducts, bucketKV, bucketContacts} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
