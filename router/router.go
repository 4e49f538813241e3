package router

import (
	"time"

	"usercenter/api"
	"usercenter/config"
	_ "usercenter/docs"
	"usercenter/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// 按 ?lang= 和 Accept-Language 解析请求语言
	r.Use(middleware.Localize(cfg.Server.DefaultLang))

	authHandler := api.NewAuthHandler(cfg)
	userHandler := api.NewUserHandler()
	settingHandler := api.NewSettingHandler()
	exportHandler := api.NewExportHandler()

	// 认证接口（无需登录），登录接口带限流
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)
	}

	// 用户管理接口
	users := r.Group("/users")
	users.Use(middleware.JWTAuth())
	{
		users.GET("", userHandler.GetUsers)
		users.POST("", userHandler.CreateUser)
		// 固定路径要先于 /:id 注册
		users.GET("/info", userHandler.GetCurrentUserInfo)
		users.GET("/export", exportHandler.ExportUsers)
		users.GET("/:id", userHandler.GetUserByID)
		users.PATCH("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
		users.POST("/:id/activate", userHandler.ActivateUser)
		users.POST("/:id/deactivate", userHandler.DeactivateUser)
		users.POST("/:id/change-password", userHandler.ChangePassword)
		users.POST("/:id/reset-password", userHandler.ResetPassword)
	}

	// 配置管理接口
	settings := r.Group("/settings")
	settings.Use(middleware.JWTAuth())
	{
		settings.GET("", settingHandler.GetSettings)
		settings.POST("", settingHandler.CreateSetting)
		settings.GET("/batch", settingHandler.GetSettingsByKeys)
		settings.POST("/batch", settingHandler.CreateSettings)
		settings.GET("/:key", settingHandler.GetSettingByKey)
		settings.PATCH("/:key", settingHandler.UpdateSettingByKey)
		settings.DELETE("/:key", settingHandler.DeleteSettingByKey)
		settings.POST("/:key/enable", settingHandler.EnableSetting)
		settings.POST("/:key/disable", settingHandler.DisableSetting)
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
