package models

import (
	"time"

	"gorm.io/gorm"
)

// 性别编码
const (
	GenderSecret = 0
	GenderMale   = 1
	GenderFemale = 2
)

// GenderLabelKeyMap 性别编码到国际化文案 key 的映射
var GenderLabelKeyMap = map[int]string{
	GenderSecret: "Gender.Secret",
	GenderMale:   "Gender.Male",
	GenderFemale: "Gender.Female",
}

// User 用户模型
type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Username    string         `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Password    string         `json:"-" gorm:"size:255;not null"`
	Email       *string        `json:"email" gorm:"uniqueIndex;size:100"` // NULL 表示未填写，唯一索引允许多个 NULL
	PhoneNumber *string        `json:"phoneNumber" gorm:"size:30"`
	Name        *string        `json:"name" gorm:"size:50"`
	FirstName   *string        `json:"firstName" gorm:"size:50"`
	LastName    *string        `json:"lastName" gorm:"size:50"`
	NickName    *string        `json:"nickName" gorm:"size:50"`
	AvatarURL   *string        `json:"avatarUrl" gorm:"column:avatar_url;size:255"`
	Gender      *int           `json:"gender"` // 0-保密 1-男 2-女
	Country     *string        `json:"country" gorm:"size:50"`
	Province    *string        `json:"province" gorm:"size:50"`
	City        *string        `json:"city" gorm:"size:50"`
	Address     *string        `json:"address" gorm:"size:255"`
	Biography   *string        `json:"biography" gorm:"size:500"`
	BirthDate   *time.Time     `json:"birthDate"`
	Verified    bool           `json:"verified" gorm:"default:false"`
	Enabled     bool           `json:"enabled" gorm:"default:false"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	CreatedBy   *uint          `json:"createdBy"`
	UpdatedBy   *uint          `json:"updatedBy"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	DeletedBy   *uint          `json:"-"`

	UserRoles []UserRole `json:"-" gorm:"foreignKey:UserID"`
	Auths     []Auth     `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
