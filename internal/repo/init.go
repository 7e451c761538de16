package repo

import (
	"github.com/KNICEX/watchlist-agent/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.NotificationRecord{})
}
