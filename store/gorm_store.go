package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Document is one versioned JSON document. The revision column is what makes
// Update a compare-and-swap: the conditional UPDATE only matches when the
// revision is still the one the cycle read.
type Document struct {
	Key      string `gorm:"primaryKey;type:varchar(100)"`
	Value    string `gorm:"type:longtext;not null"`
	Revision uint64 `gorm:"not null;default:0"`
}

// GormStore implements Store on a relational database through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var doc Document
	err := s.db.WithContext(ctx).First(&doc, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store get %q: %w", key, err)
	}
	return json.RawMessage(doc.Value), nil
}

func (s *GormStore) Put(ctx context.Context, key string, value json.RawMessage) error {
	res := s.db.WithContext(ctx).Exec(
		"UPDATE documents SET value = ?, revision = revision + 1 WHERE `key` = ?",
		string(value), key,
	)
	if res.Error != nil {
		return fmt.Errorf("store put %q: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		err := s.db.WithContext(ctx).Create(&Document{Key: key, Value: string(value)}).Error
		if err != nil {
			return fmt.Errorf("store put %q: %w", key, err)
		}
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, key string, fn UpdateFunc) (json.RawMessage, error) {
	var doc Document
	found := true
	err := s.db.WithContext(ctx).First(&doc, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		found = false
	} else if err != nil {
		return nil, fmt.Errorf("store update %q: %w", key, err)
	}

	var prev json.RawMessage
	if found {
		prev = json.RawMessage(doc.Value)
	}

	next, err := fn(prev)
	if err != nil {
		return nil, err
	}

	if !found {
		// First write for the key. The primary key makes a racing create
		// fail, which is exactly a conflict.
		err = s.db.WithContext(ctx).Create(&Document{Key: key, Value: string(next), Revision: 1}).Error
		if err != nil {
			return nil, ErrConflict
		}
		return next, nil
	}

	res := s.db.WithContext(ctx).Exec(
		"UPDATE documents SET value = ?, revision = ? WHERE `key` = ? AND revision = ?",
		string(next), doc.Revision+1, key, doc.Revision,
	)
	if res.Error != nil {
		return nil, fmt.Errorf("store update %q: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}
	return next, nil
}
