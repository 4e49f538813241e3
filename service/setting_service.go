package service

import (
	"time"

	"usercenter/database"
	"usercenter/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingService 配置项服务
type SettingService struct{}

// NewSettingService 创建配置项服务
func NewSettingService() *SettingService {
	return &SettingService{}
}

// SettingInput 配置项写入入参，Value 为空表示落库 NULL
type SettingInput struct {
	Key         string
	Value       *string
	Description string
}

// GetSettings 分页查询配置项列表与总数
func (s *SettingService) GetSettings(page, pageSize int) ([]models.Setting, int64, error) {
	var settings []models.Setting
	if err := database.DB.
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&settings).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := database.DB.Model(&models.Setting{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return settings, total, nil
}

// GetSettingByKey 按 key 查询配置项，不存在时返回 (nil, nil)
func (s *SettingService) GetSettingByKey(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := database.DB.Where("`key` = ?", key).First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// GetSettingsByKeys 批量按 key 查询配置项
func (s *SettingService) GetSettingsByKeys(keys []string) ([]models.Setting, error) {
	var settings []models.Setting
	if err := database.DB.Where("`key` IN ?", keys).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// CreateSetting 创建配置项，enabled 默认开启，并记录创建人。
// key 唯一性由存储层唯一索引兜底。
func (s *SettingService) CreateSetting(input *SettingInput, operatorID *uint) (*models.Setting, error) {
	setting := models.Setting{
		UUID:        uuid.NewString(),
		Key:         input.Key,
		Value:       input.Value,
		Description: input.Description,
		Enabled:     true,
		CreatedBy:   operatorID,
	}
	if err := database.DB.Create(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// CreateSettings 批量创建配置项，每行生成独立 UUID
func (s *SettingService) CreateSettings(inputs []SettingInput, operatorID *uint) ([]models.Setting, error) {
	settings := make([]models.Setting, 0, len(inputs))
	for _, input := range inputs {
		settings = append(settings, models.Setting{
			UUID:        uuid.NewString(),
			Key:         input.Key,
			Value:       input.Value,
			Description: input.Description,
			Enabled:     true,
			CreatedBy:   operatorID,
		})
	}
	if err := database.DB.Create(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettingByKey 按 key 更新值与描述并记录更新人。
// Value 为空指针时清空为 NULL；目标行不存在返回 ErrRecordNotFound。
func (s *SettingService) UpdateSettingByKey(input *SettingInput, operatorID *uint) (*models.Setting, error) {
	var setting models.Setting
	if err := database.DB.Where("`key` = ?", input.Key).First(&setting).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&setting).Updates(map[string]interface{}{
		"value":       input.Value,
		"description": input.Description,
		"updated_by":  operatorID,
	}).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// DeleteSettingByKey 软删除配置项：写入删除时间与删除人
func (s *SettingService) DeleteSettingByKey(key string, operatorID *uint) error {
	var setting models.Setting
	if err := database.DB.Where("`key` = ?", key).First(&setting).Error; err != nil {
		return err
	}
	return database.DB.Model(&setting).Updates(map[string]interface{}{
		"deleted_at": time.Now(),
		"deleted_by": operatorID,
		"updated_by": operatorID,
	}).Error
}

// EnableSettingByKey 启用配置项
func (s *SettingService) EnableSettingByKey(key string, operatorID *uint) error {
	return s.updateEnabled(key, true, operatorID)
}

// BanSettingByKey 禁用配置项
func (s *SettingService) BanSettingByKey(key string, operatorID *uint) error {
	return s.updateEnabled(key, false, operatorID)
}

func (s *SettingService) updateEnabled(key string, enabled bool, operatorID *uint) error {
	var setting models.Setting
	if err := database.DB.Where("`key` = ?", key).First(&setting).Error; err != nil {
		return err
	}
	return database.DB.Model(&setting).Updates(map[string]interface{}{
		"enabled":    enabled,
		"updated_by": operatorID,
	}).Error
}
