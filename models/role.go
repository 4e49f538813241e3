package models

import (
	"time"

	"gorm.io/gorm"
)

// Role 角色模型，名称按中英文两份存储
type Role struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Code      string         `json:"code" gorm:"size:50;not null;uniqueIndex"`
	NameZh    string         `json:"nameZh" gorm:"size:50"`
	NameEn    string         `json:"nameEn" gorm:"size:50"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	CreatedBy *uint          `json:"createdBy"`
	UpdatedBy *uint          `json:"updatedBy"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	DeletedBy *uint          `json:"-"`
}

// TableName 设置表名
func (Role) TableName() string {
	return "roles"
}

// UserRole 用户-角色关联，关联行本身可软删除
type UserRole struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"userId" gorm:"index;not null"`
	RoleID    uint           `json:"roleId" gorm:"index;not null"`
	Role      Role           `json:"role" gorm:"foreignKey:RoleID"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	CreatedBy *uint          `json:"createdBy"`
	UpdatedBy *uint          `json:"updatedBy"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	DeletedBy *uint          `json:"-"`
}

// TableName 设置表名
func (UserRole) TableName() string {
	return "user_roles"
}
