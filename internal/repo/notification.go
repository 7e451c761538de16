package repo

import (
	"context"
	"time"

	"github.com/KNICEX/watchlist-agent/internal/entity"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	Create(ctx context.Context, record entity.NotificationRecord) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{
		db: db,
	}
}

func (r *notificationRepo) Create(ctx context.Context, record entity.NotificationRecord) (int64, error) {
	err := r.db.WithContext(ctx).Create(&record).Error
	if err != nil {
		return 0, err
	}
	return record.Id, nil
}

func (r *notificationRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.NotificationRecord{}).
		Where("sent_at >= ?", since).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
