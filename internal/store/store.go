package store

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Keys under which each collection is mirrored. One JSON document per
// collection.
const (
	KeyAccounts     = "lcen-users"
	KeyAuditLog     = "lcen-audit-log"
	KeyReminders    = "lcen-reminders"
	KeyMarketStocks = "lcen-market-stocks"
	KeyChatSessions = "lcen-sessions"
	KeyBackupEmail  = "lcen-backup-email"
)

// KV is the durable mirror behind the in-memory collections. Values are
// JSON-encoded collections keyed by the constants above.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Entry is one mirrored document in the backing database.
type Entry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte
	UpdatedAt time.Time
}

// TableName keeps the table name stable across drivers.
func (Entry) TableName() string { return "kv_entries" }

// GormKV persists documents in a kv_entries table via GORM. It works the same
// over the embedded SQLite file and a shared MySQL instance.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV builds a KV over an already-migrated GORM connection.
func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

// Migrate creates the kv_entries table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Entry{})
}

func (s *GormKV) Get(key string) ([]byte, bool, error) {
	var entry Entry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *GormKV) Put(key string, value []byte) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}

// MemKV is an in-memory KV with no durability. Used for tests and for running
// the server without a database file.
type MemKV struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemKV builds an empty in-memory KV.
func NewMemKV() *MemKV {
	return &MemKV{entries: make(map[string][]byte)}
}

func (s *MemKV) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *MemKV) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.entries[key] = stored
	return nil
}
