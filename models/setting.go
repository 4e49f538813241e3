package models

import (
	"time"

	"gorm.io/gorm"
)

// Setting 配置项模型，key 唯一，value 为任意 JSON 字符串，可为空
type Setting struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UUID        string         `json:"uuid" gorm:"column:uuid;size:36;uniqueIndex"`
	Key         string         `json:"key" gorm:"size:100;not null;uniqueIndex"`
	Value       *string        `json:"value" gorm:"type:text"` // NULL 表示未设置
	Description string         `json:"description" gorm:"size:255"`
	Enabled     bool           `json:"enabled" gorm:"default:true"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	CreatedBy   *uint          `json:"createdBy"`
	UpdatedBy   *uint          `json:"updatedBy"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	DeletedBy   *uint          `json:"-"`
}

// TableName 设置表名
func (Setting) TableName() string {
	return "settings"
}
