package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

const scoresBucketName = "scores"

// ErrNotFound is returned when no score exists for an ID
var ErrNotFound = errors.New("score not found")

// DB defines the interface for score storage
type DB interface {
	// SaveScore stores a score record, replacing any record with the same ID
	SaveScore(record *ScoreRecord) error

	// GetScore retrieves a score record by receipt ID
	GetScore(id string) (*ScoreRecord, error)

	// Close closes the database connection
	Close() error
}

// MemoryDB implements the DB interface with an in-process map.
// Records are lost when the process exits.
type MemoryDB struct {
	mu     sync.RWMutex
	scores map[string]ScoreRecord
}

// NewMemoryDB creates an empty MemoryDB
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		scores: make(map[string]ScoreRecord),
	}
}

// SaveScore stores a copy of the record
func (m *MemoryDB) SaveScore(record *ScoreRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[record.ID] = *record
	return nil
}

// GetScore returns a copy of the stored record
func (m *MemoryDB) GetScore(id string) (*ScoreRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.scores[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &record, nil
}

// Close is a no-op
func (m *MemoryDB) Close() error {
	return nil
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(scoresBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveScore saves a score record to the database
func (b *BoltDB) SaveScore(record *ScoreRecord) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(scoresBucketName))
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling score: %w", err)
		}
		return bucket.Put([]byte(record.ID), data)
	})
}

// GetScore retrieves a score record by ID
func (b *BoltDB) GetScore(id string) (*ScoreRecord, error) {
	var record *ScoreRecord
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(scoresBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
