package entity

import (
	"time"
)

// NotificationRecord is one delivered alert, kept for auditing.
type NotificationRecord struct {
	Id        int64  `gorm:"primaryKey;autoIncrement"`
	Symbol    string `gorm:"index"`
	Direction string `gorm:"index"`
	Threshold string
	Price     string
	Recipient string
	SentAt    time.Time `gorm:"index"`
	CreatedAt time.Time
}
