package models

import (
	"time"

	"gorm.io/gorm"
)

// 认证方式编码
const (
	AuthTypeUsername = 0
	AuthTypeEmail    = 1
	AuthTypeGitHub   = 2
	AuthTypeGoogle   = 3
	AuthTypeWeChat   = 4
)

// AuthTypeNameMap 认证方式编码到符号名的映射
var AuthTypeNameMap = map[int]string{
	AuthTypeUsername: "USERNAME",
	AuthTypeEmail:    "EMAIL",
	AuthTypeGitHub:   "GITHUB",
	AuthTypeGoogle:   "GOOGLE",
	AuthTypeWeChat:   "WECHAT",
}

// Auth 认证方式记录，多对一挂在用户下
type Auth struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"userId" gorm:"index;not null"`
	AuthType  int            `json:"authType" gorm:"index;not null"` // 见 AuthType* 常量
	OpenID    string         `json:"openId" gorm:"column:open_id;size:128"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	CreatedBy *uint          `json:"createdBy"`
	UpdatedBy *uint          `json:"updatedBy"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	DeletedBy *uint          `json:"-"`
}

// TableName 设置表名
func (Auth) TableName() string {
	return "auths"
}
