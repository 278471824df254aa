// Package syncstore persists since-id watermarks so incremental record
// pulls can resume where the previous run stopped. State lives in a local
// sqlite database, one watermark row per (server, profile, page).
package syncstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Watermark tracks the highest record id seen for one page.
type Watermark struct {
	ID           uint   `gorm:"primaryKey"`
	Server       string `gorm:"uniqueIndex:idx_watermark_scope"`
	ProfileID    int64  `gorm:"uniqueIndex:idx_watermark_scope"`
	PageID       int64  `gorm:"uniqueIndex:idx_watermark_scope"`
	LastRecordID int64
	LastSyncedAt time.Time
	RecordCount  int64
}

// CachedRecord is one fetched record kept locally, keyed by its remote id.
type CachedRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Server    string `gorm:"uniqueIndex:idx_record_scope"`
	ProfileID int64  `gorm:"uniqueIndex:idx_record_scope"`
	PageID    int64  `gorm:"uniqueIndex:idx_record_scope"`
	RecordID  int64  `gorm:"uniqueIndex:idx_record_scope"`
	Payload   string
	FetchedAt time.Time
}

type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the sqlite store at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {

	if dir := filepath.Dir(path); len(dir) > 0 && dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create sync store directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sync store: %w", err)
	}

	if err := db.AutoMigrate(&Watermark{}, &CachedRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sync store: %w", err)
	}

	logrus.WithField("path", path).Debug("Opened sync store")

	return &Store{db: db}, nil
}

// LastRecordID returns the watermark for the page, or zero when the page
// has never been synced.
func (s *Store) LastRecordID(server string, profileID, pageID int64) (int64, error) {
	var watermark Watermark
	err := s.db.Where(&Watermark{Server: server, ProfileID: profileID, PageID: pageID}).
		First(&watermark).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read watermark: %w", err)
	}

	return watermark.LastRecordID, nil
}

// Advance moves the watermark forward after a successful pull. A lastID
// at or below the stored watermark leaves it unchanged.
func (s *Store) Advance(server string, profileID, pageID int64, lastID int64, fetched int) error {

	var watermark Watermark
	err := s.db.Where(&Watermark{Server: server, ProfileID: profileID, PageID: pageID}).
		First(&watermark).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		watermark = Watermark{
			Server:    server,
			ProfileID: profileID,
			PageID:    pageID,
		}
	case err != nil:
		return fmt.Errorf("failed to read watermark: %w", err)
	}

	if lastID > watermark.LastRecordID {
		watermark.LastRecordID = lastID
	}
	watermark.LastSyncedAt = time.Now().UTC()
	watermark.RecordCount += int64(fetched)

	if err := s.db.Save(&watermark).Error; err != nil {
		return fmt.Errorf("failed to save watermark: %w", err)
	}

	return nil
}

// CacheRecord stores one fetched record payload, replacing any previous
// copy of the same remote record.
func (s *Store) CacheRecord(server string, profileID, pageID, recordID int64, payload string) error {

	record := CachedRecord{
		Server:    server,
		ProfileID: profileID,
		PageID:    pageID,
		RecordID:  recordID,
		Payload:   payload,
		FetchedAt: time.Now().UTC(),
	}

	err := s.db.Where(&CachedRecord{
		Server:    server,
		ProfileID: profileID,
		PageID:    pageID,
		RecordID:  recordID,
	}).Assign(CachedRecord{
		Payload:   payload,
		FetchedAt: record.FetchedAt,
	}).FirstOrCreate(&record).Error

	if err != nil {
		return fmt.Errorf("failed to cache record %d: %w", recordID, err)
	}

	return nil
}

// CachedRecords returns the locally cached payloads for a page in record
// id order.
func (s *Store) CachedRecords(server string, profileID, pageID int64) ([]CachedRecord, error) {
	var records []CachedRecord
	err := s.db.Where(&CachedRecord{Server: server, ProfileID: profileID, PageID: pageID}).
		Order("record_id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read cached records: %w", err)
	}
	return records, nil
}

// Reset drops the watermark and cached records for a page so the next
// sync starts from scratch.
func (s *Store) Reset(server string, profileID, pageID int64) error {
	if err := s.db.Where(&Watermark{Server: server, ProfileID: profileID, PageID: pageID}).
		Delete(&Watermark{}).Error; err != nil {
		return fmt.Errorf("failed to reset watermark: %w", err)
	}
	if err := s.db.Where(&CachedRecord{Server: server, ProfileID: profileID, PageID: pageID}).
		Delete(&CachedRecord{}).Error; err != nil {
		return fmt.Errorf("failed to reset cached records: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
