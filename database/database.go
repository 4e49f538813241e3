package database

import (
	"fmt"
	"log"
	"time"

	"usercenter/config"
	"usercenter/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Auth{},
		&models.Setting{},
	); err != nil {
		return err
	}

	if err := seed(); err != nil {
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// seed 初始化默认角色与管理员账号（仅当对应表为空时）
func seed() error {
	// 默认角色
	var roleCount int64
	DB.Model(&models.Role{}).Count(&roleCount)
	if roleCount == 0 {
		roles := []models.Role{
			{Code: "admin", NameZh: "管理员", NameEn: "Administrator"},
			{Code: "visitor", NameZh: "访客", NameEn: "Visitor"},
		}
		if err := DB.Create(&roles).Error; err != nil {
			return err
		}
	}

	// 默认管理员
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	name := "Admin"
	birthDate := time.Date(1990, 1, 1, 0, 0, 0, 0, time.Local)
	admin := models.User{
		Username:  "Admin",
		Password:  string(hashed),
		Name:      &name,
		BirthDate: &birthDate,
		Verified:  true,
		Enabled:   true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	// 管理员角色与账号密码认证方式
	var adminRole models.Role
	if err := DB.Where("code = ?", "admin").First(&adminRole).Error; err == nil {
		_ = DB.Create(&models.UserRole{UserID: admin.ID, RoleID: adminRole.ID}).Error
	}
	_ = DB.Create(&models.Auth{UserID: admin.ID, AuthType: models.AuthTypeUsername}).Error

	log.Printf("已创建默认管理员账号: %s（请尽快修改初始密码）", admin.Username)
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
