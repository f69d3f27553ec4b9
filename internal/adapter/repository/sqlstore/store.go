package sqlstore

import (
	"context"
	"errors"
	"time"

	"loan-application-backend/internal/domain/kv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one key/value row. Column names avoid the reserved word KEY.
type Entry struct {
	Key       string    `gorm:"primaryKey;column:entry_key;size:191"`
	Value     []byte    `gorm:"column:entry_value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Entry) TableName() string { return "kv_entries" }

// LockRow backs SELECT ... FOR UPDATE so writers on different instances
// exclude each other. sqlite ignores the locking clause.
type LockRow struct {
	Key string `gorm:"primaryKey;column:lock_key;size:191"`
}

func (LockRow) TableName() string { return "kv_locks" }

type Store struct{ db *gorm.DB }

var _ kv.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// Migrate creates the kv_entries and kv_locks tables if needed.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&Entry{}, &LockRow{})
}

// Tx runs fn in a db transaction, passing a store bound to the tx
func (s *Store) Tx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var out Entry
	res := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, kv.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return out.Value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
		}).
		Create(&Entry{Key: key, Value: value}).Error
}

// lockRow takes a row lock on key until the surrounding tx ends.
func lockRow(ctx context.Context, tx *gorm.DB, key string) error {
	if err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "lock_key"}}, DoNothing: true}).
		Create(&LockRow{Key: key}).Error; err != nil {
		return err
	}
	var row LockRow
	return tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("lock_key = ?", key).
		First(&row).Error
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&Entry{}).Error
}
