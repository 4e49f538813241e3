package api

import (
	"log"
	"strings"
	"time"

	"usercenter/config"
	"usercenter/middleware"
	"usercenter/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg         *config.Config
	userService *service.UserService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg:         cfg,
		userService: service.NewUserService(),
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"123456"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户名密码登录，返回 JWT 与用户信息。被禁用的账号不允许登录。
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 401 {object} Response "用户名或密码错误"
// @Failure 403 {object} Response "账号已被禁用"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	t := middleware.GetT(c)

	var req LoginRequest
	_ = c.ShouldBindJSON(&req)

	if strings.TrimSpace(req.Username) == "" {
		BadRequest(c, t("Username.Require"))
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		BadRequest(c, t("Password.Require"))
		return
	}

	exists, user, err := h.userService.AlreadyExists(strings.TrimSpace(req.Username))
	if err != nil {
		log.Printf("登录查询用户失败: %v", err)
		InternalError(c, t("Login.Failed"))
		return
	}
	// 不区分"用户不存在"和"密码错误"，避免用户名枚举
	if !exists {
		Unauthorized(c, t("Login.Failed"))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		Unauthorized(c, t("Login.Failed"))
		return
	}
	if !user.Enabled {
		Error(c, 403, t("Login.Disabled"))
		return
	}

	expire := time.Duration(h.cfg.JWT.ExpireHours) * time.Hour
	token, err := middleware.GenerateToken(user.ID, user.Username, expire)
	if err != nil {
		log.Printf("生成令牌失败: %v", err)
		InternalError(c, t("Login.Failed"))
		return
	}

	Success(c, LoginResponse{
		Token: token,
		User:  service.FilterSafeUserInfo(user),
	})
}
