package vault

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// vaultEntry is one row of the vault_entries table.
type vaultEntry struct {
	KeyID     string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

func (vaultEntry) TableName() string {
	return "vault_entries"
}

// SQLiteVault stores values in a sqlite database.
type SQLiteVault struct {
	db *gorm.DB
}

// NewSQLiteVault opens (and migrates) the sqlite database at dsn.
func NewSQLiteVault(dsn string) (*SQLiteVault, error) {
	if dsn == "" {
		return nil, errors.New("vault: sqlite 'dsn' is required")
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "vault: failed to connect sqlite database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "vault: failed to connect sqlite database")
	}
	// sqlite allows a single writer
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&vaultEntry{}); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "vault: failed to migrate sqlite schema")
	}
	return &SQLiteVault{db: db}, nil
}

func (sv *SQLiteVault) Import(keyID string, key []byte) error {
	if keyID == "" {
		return ErrInvalidKeyID
	}
	entry := &vaultEntry{KeyID: keyID, Data: key}
	err := sv.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(entry).Error
	return errors.Wrapf(err, "vault: failed to store %s", keyID)
}

func (sv *SQLiteVault) Get(keyID string) ([]byte, error) {
	var entry vaultEntry
	if err := sv.db.Where("key_id = ?", keyID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "vault: failed to load %s", keyID)
	}
	if entry.Data == nil {
		return []byte{}, nil
	}
	return entry.Data, nil
}

func (sv *SQLiteVault) Delete(keyID string) error {
	err := sv.db.Where("key_id = ?", keyID).Delete(&vaultEntry{}).Error
	return errors.Wrapf(err, "vault: failed to delete %s", keyID)
}

func (sv *SQLiteVault) List() ([]string, error) {
	var ids []string
	if err := sv.db.Model(&vaultEntry{}).Order("key_id").Pluck("key_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "vault: failed to list entries")
	}
	return ids, nil
}

func (sv *SQLiteVault) Close() error {
	db, err := sv.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
