// Package storage implements the single string-keyed persistent store every
// higher layer reads and writes through. Each key holds one JSON-encoded
// value; that per-key JSON layout is the wire contract with the rest of the
// system and must stay stable across releases.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known keys.
const (
	KeyProducts    = "products"
	KeyUsers       = "users"
	KeyCart        = "cart"
	KeyOrders      = "orders"
	KeyJobs        = "jobs"
	KeyCurrentUser = "currentUser"
	KeyVisits      = "visits"
	KeyCookies     = "cookiesAccepted"

	keySchemaVersion = "schemaVersion"
)

// schemaVersion guards the per-key value layout. Bump it when the encoded
// shape of any entity changes.
const schemaVersion = 1

var (
	ErrNotFound       = errors.New("storage: key not found")
	ErrDecode         = errors.New("storage: malformed value")
	ErrWrite          = errors.New("storage: write failed")
	ErrSchemaMismatch = errors.New("storage: schema version mismatch")
)

// Entry is one row of the key/value table.
type Entry struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "kv_entries" }

// Store wraps a gorm handle over the kv_entries table. The zero value is not
// usable; construct with New.
type Store struct {
	db *gorm.DB
}

// New migrates the key/value table and verifies the schema version marker,
// initializing it on first open. A version mismatch fails with
// ErrSchemaMismatch rather than silently decoding stale layouts.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("%w: migrate kv table: %v", ErrWrite, err)
	}

	s := &Store{db: db}

	var stored int
	switch err := s.Get(keySchemaVersion, &stored); {
	case errors.Is(err, ErrNotFound):
		if err := s.Put(keySchemaVersion, schemaVersion); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case stored != schemaVersion:
		return nil, fmt.Errorf("%w: store has v%d, expected v%d", ErrSchemaMismatch, stored, schemaVersion)
	}

	return s, nil
}

// Get decodes the value stored under key into out. Missing keys report
// ErrNotFound; undecodable values report ErrDecode.
func (s *Store) Get(key string, out any) error {
	var entry Entry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return err
	}
	if err := json.Unmarshal([]byte(entry.Value), out); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrDecode, key, err)
	}
	return nil
}

// Put JSON-encodes v and upserts it under key.
func (s *Store) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %q: %v", ErrWrite, key, err)
	}
	entry := Entry{Key: key, Value: string(raw)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWrite, key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if err := s.db.Delete(&Entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("%w: delete %q: %v", ErrWrite, key, err)
	}
	return nil
}

// Update runs fn against a transaction-scoped store. All keys written inside
// fn commit atomically; any returned error rolls the whole batch back.
func (s *Store) Update(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
