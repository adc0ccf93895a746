package services

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// ActivityService appends audit entries after successful claims, releases
// and payments. Recording is fire-and-forget: a failed write is logged and
// swallowed, it must never fail the action it describes.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

func (s *ActivityService) Record(kind, actor, message string) models.ActivityLog {
	entry := models.ActivityLog{
		Kind:    kind,
		Actor:   actor,
		Message: message,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		utils.ErrorLogger.Printf("activity log write failed (%s / %s): %v", kind, actor, err)
	}
	return entry
}

// Recent returns the latest entries, newest first.
func (s *ActivityService) Recent(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.ActivityLog
	err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
