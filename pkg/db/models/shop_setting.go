package models

import "time"

// ShopSetting is one row of the generic key/value settings store the admin
// back-office writes through.
type ShopSetting struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
