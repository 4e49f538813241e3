package api

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"usercenter/database"
	"usercenter/middleware"
	"usercenter/models"
	"usercenter/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler 创建用户管理处理器
func NewUserHandler() *UserHandler {
	return &UserHandler{userService: service.NewUserService()}
}

// getCurrentUser 加载当前登录用户所在行
func getCurrentUser(c *gin.Context) (*models.User, error) {
	userID := middleware.GetCurrentUserID(c)
	if userID == 0 {
		return nil, errors.New("未登录")
	}
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// currentOperator 返回当前登录用户 ID 指针，用于审计字段
func currentOperator(c *gin.Context) *uint {
	if id := middleware.GetCurrentUserID(c); id != 0 {
		return &id
	}
	return nil
}

// parseDateParam 解析日期参数，兼容 RFC3339 与 2006-01-02
func parseDateParam(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return &t
	}
	return nil
}

// GetUsers 用户列表
// @Summary 用户列表
// @Description 分页查询用户，支持模糊搜索、创建时间范围、认证方式筛选和多字段排序
// @Tags 用户管理
// @Produce json
// @Param page query int true "页码，从 1 开始"
// @Param pageSize query int true "每页数量"
// @Param searchText query string false "搜索词，匹配用户名/手机号/邮箱/姓名/昵称，纯数字时额外按 id 匹配"
// @Param startDate query string false "创建时间下界"
// @Param endDate query string false "创建时间上界"
// @Param sort query string false "排序字段列表，逗号分隔"
// @Param order query string false "排序方向列表，逗号分隔，与 sort 按下标配对"
// @Param authTypes query string false "认证方式编码列表，逗号分隔"
// @Success 200 {object} map[string]interface{} "用户列表与总数"
// @Failure 400 {object} Response "分页参数错误"
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	t := middleware.GetT(c)
	lang := middleware.GetLang(c)

	pageStr := c.Query("page")
	pageSizeStr := c.Query("pageSize")
	if pageStr == "" || pageSizeStr == "" {
		BadRequest(c, t("Page.Require"))
		return
	}
	page, err1 := strconv.Atoi(pageStr)
	pageSize, err2 := strconv.Atoi(pageSizeStr)
	if err1 != nil || err2 != nil || page < 1 || pageSize < 1 {
		BadRequest(c, t("Page.Invalid"))
		return
	}

	req := &service.UserPageRequest{
		Page:       page,
		PageSize:   pageSize,
		SearchText: c.Query("searchText"),
		StartDate:  parseDateParam(c.Query("startDate")),
		EndDate:    parseDateParam(c.Query("endDate")),
		Sort:       c.Query("sort"),
		Order:      c.Query("order"),
		AuthTypes:  c.Query("authTypes"),
	}

	result, err := h.userService.GetUsers(req, lang, t)
	if err != nil {
		log.Printf("查询用户列表失败: %v", err)
		InternalError(c, SafeErrorMessage(err, t("User.GetFailed")))
		return
	}

	c.JSON(200, gin.H{
		"data":     result.Users,
		"total":    result.Total,
		"page":     result.Page,
		"pageSize": result.PageSize,
	})
}

// GetUserByID 用户信息
// @Summary 用户信息
// @Tags 用户管理
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} Response "用户信息"
// @Failure 404 {object} Response "用户不存在"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	t := middleware.GetT(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	user, err := h.userService.GetUserByID(uint(id))
	if err != nil {
		log.Printf("查询用户失败: %v", err)
		InternalError(c, t("User.GetFailed"))
		return
	}
	if user == nil {
		NotFound(c, t("User.NotExist"))
		return
	}
	Success(c, service.FilterSafeUserInfo(user))
}

// GetCurrentUserInfo 当前用户
// @Summary 当前登录用户信息
// @Tags 用户管理
// @Produce json
// @Success 200 {object} Response "当前用户信息"
// @Failure 401 {object} Response "未登录"
// @Security BearerAuth
// @Router /users/info [get]
func (h *UserHandler) GetCurrentUserInfo(c *gin.Context) {
	t := middleware.GetT(c)
	user, err := getCurrentUser(c)
	if err != nil {
		Unauthorized(c, t("User.NotExist"))
		return
	}
	Success(c, service.FilterSafeUserInfo(user))
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUser 创建用户
// @Summary 创建用户
// @Description 创建用户，verified 和 enabled 由服务端强制置为 true
// @Tags 用户管理
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "用户名与密码"
// @Success 201 {object} Response "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 409 {object} Response "用户名已存在"
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	t := middleware.GetT(c)

	var req CreateUserRequest
	_ = c.ShouldBindJSON(&req)

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" {
		BadRequest(c, t("Username.Require"))
		return
	}
	if password == "" {
		BadRequest(c, t("Password.Require"))
		return
	}
	if len(username) < 4 {
		BadRequest(c, t("Username.MaxLength"))
		return
	}
	if len(password) < 6 {
		BadRequest(c, t("Password.MaxLength"))
		return
	}

	exists, _, err := h.userService.AlreadyExists(username)
	if err != nil {
		log.Printf("检查用户名失败: %v", err)
		InternalError(c, t("User.CreateFailed"))
		return
	}
	if exists {
		Conflict(c, t("Username.AlreadyExist"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, t("User.CreateFailed"))
		return
	}

	user := models.User{
		Username: username,
		Password: string(hashed),
	}
	if err := h.userService.CreateUser(&user, currentOperator(c)); err != nil {
		// 并发创建时唯一索引兜底
		if _, ok := duplicateKeyColumn(err); ok {
			Conflict(c, t("Username.AlreadyExist"))
			return
		}
		log.Printf("创建用户失败: %v", err)
		InternalError(c, t("User.CreateFailed"))
		return
	}

	CreatedWithMessage(c, t("User.Created"), service.FilterSafeUserInfo(&user))
}

// UpdateUserRequest 修改用户请求，缺省字段保留原值
type UpdateUserRequest struct {
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Name        *string `json:"name"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	NickName    *string `json:"nickName"`
	AvatarURL   *string `json:"avatarUrl"`
	Gender      *int    `json:"gender"`
	Country     *string `json:"country"`
	Province    *string `json:"province"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
	Biography   *string `json:"biography"`
	BirthDate   *string `json:"birthDate"`
	Verified    *bool   `json:"verified"`
	Enabled     *bool   `json:"enabled"`
}

// UpdateUser 修改用户
// @Summary 修改用户
// @Description 逐字段合并："新值或旧值"，未提交的字段保留原值
// @Tags 用户管理
// @Accept json
// @Produce json
// @Param id path int true "用户ID"
// @Param request body UpdateUserRequest true "用户资料"
// @Success 200 {object} Response "修改成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "用户不存在"
// @Failure 409 {object} Response "用户名或邮箱已被占用"
// @Security BearerAuth
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	t := middleware.GetT(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if id == 0 {
		BadRequest(c, t("User.ID.Require"))
		return
	}

	var req UpdateUserRequest
	_ = c.ShouldBindJSON(&req)

	original, err := h.userService.GetUserByID(uint(id))
	if err != nil {
		log.Printf("查询用户失败: %v", err)
		InternalError(c, t("User.UpdateFailed"))
		return
	}
	if original == nil {
		NotFound(c, t("User.NotExist"))
		return
	}

	input := mergeUserUpdate(&req, original)
	user, err := h.userService.UpdateUser(uint(id), input, currentOperator(c))
	if err != nil {
		if column, ok := duplicateKeyColumn(err); ok {
			switch column {
			case "username":
				Conflict(c, t("User.Username.Unique"))
			case "email":
				Conflict(c, t("User.Email.Unique"))
			default:
				Conflict(c, t("User.UpdateFailed"))
			}
			return
		}
		if isNotFound(err) {
			NotFound(c, t("User.NotExist"))
			return
		}
		log.Printf("修改用户失败: %v", err)
		InternalError(c, t("User.UpdateFailed"))
		return
	}

	SuccessWithMessage(c, t("User.Updated"), service.FilterSafeUserInfo(user))
}

// mergeUserUpdate 逐字段做"新值或旧值"合并
func mergeUserUpdate(req *UpdateUserRequest, original *models.User) *service.UserUpdateInput {
	input := &service.UserUpdateInput{
		Email:       original.Email,
		PhoneNumber: original.PhoneNumber,
		Name:        original.Name,
		FirstName:   original.FirstName,
		LastName:    original.LastName,
		NickName:    original.NickName,
		AvatarURL:   original.AvatarURL,
		Gender:      original.Gender,
		Country:     original.Country,
		Province:    original.Province,
		City:        original.City,
		Address:     original.Address,
		Biography:   original.Biography,
		Verified:    original.Verified,
		Enabled:     original.Enabled,
	}
	if original.BirthDate != nil {
		birthDate := original.BirthDate.Format(time.RFC3339)
		input.BirthDate = &birthDate
	}

	if req.Email != nil {
		input.Email = req.Email
	}
	if req.PhoneNumber != nil {
		input.PhoneNumber = req.PhoneNumber
	}
	if req.Name != nil {
		input.Name = req.Name
	}
	if req.FirstName != nil {
		input.FirstName = req.FirstName
	}
	if req.LastName != nil {
		input.LastName = req.LastName
	}
	if req.NickName != nil {
		input.NickName = req.NickName
	}
	if req.AvatarURL != nil {
		input.AvatarURL = req.AvatarURL
	}
	if req.Gender != nil {
		input.Gender = req.Gender
	}
	if req.Country != nil {
		input.Country = req.Country
	}
	if req.Province != nil {
		input.Province = req.Province
	}
	if req.City != nil {
		input.City = req.City
	}
	if req.Address != nil {
		input.Address = req.Address
	}
	if req.Biography != nil {
		input.Biography = req.Biography
	}
	if req.BirthDate != nil {
		input.BirthDate = req.BirthDate
	}
	if req.Verified != nil {
		input.Verified = *req.Verified
	}
	if req.Enabled != nil {
		input.Enabled = *req.Enabled
	}
	return input
}

// DeleteUser 删除用户（软删除）
// @Summary 删除用户
// @Tags 用户管理
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "用户不存在"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	t := middleware.GetT(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if id == 0 {
		BadRequest(c, t("User.ID.Require"))
		return
	}

	if err := h.userService.DeleteUser(uint(id), currentOperator(c)); err != nil {
		if isNotFound(err) {
			NotFound(c, t("User.NotExist"))
			return
		}
		log.Printf("删除用户失败: %v", err)
		InternalError(c, t("User.DeleteFailed"))
		return
	}
	Message(c, t("User.Deleted"))
}

// ActivateUser 启用用户
// @Summary 启用用户
// @Description 启用指定用户，不能操作当前登录用户自身
// @Tags 用户管理
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} Response "启用成功"
// @Failure 400 {object} Response "参数错误或操作自身"
// @Failure 404 {object} Response "用户不存在"
// @Security BearerAuth
// @Router /users/{id}/activate [post]
func (h *UserHandler) ActivateUser(c *gin.Context) {
	h.setEnabled(c, true)
}

// DeactivateUser 禁用用户
// @Summary 禁用用户
// @Description 禁用指定用户，不能操作当前登录用户自身
// @Tags 用户管理
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} Response "禁用成功"
// @Failure 400 {object} Response "参数错误或操作自身"
// @Failure 404 {object} Response "用户不存在"
// @Security BearerAuth
// @Router /users/{id}/deactivate [post]
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	h.setEnabled(c, false)
}

func (h *UserHandler) setEnabled(c *gin.Context, enabled bool) {
	t := middleware.GetT(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if id == 0 {
		BadRequest(c, t("User.ID.Require"))
		return
	}

	// 自锁防护：启用/禁用都不允许操作自己
	if uint(id) == middleware.GetCurrentUserID(c) {
		BadRequest(c, t("User.CanNotProcessCurrentUser"))
		return
	}

	var (
		err        error
		successKey string
		failedKey  string
	)
	if enabled {
		err = h.userService.ActivateUser(uint(id), currentOperator(c))
		successKey, failedKey = "User.Activated", "User.ActivatedFailed"
	} else {
		err = h.userService.DeactivateUser(uint(id), currentOperator(c))
		successKey, failedKey = "User.Deactivated", "User.DeactivatedFailed"
	}
	if err != nil {
		if isNotFound(err) {
			NotFound(c, t("User.NotExist"))
			return
		}
		log.Printf("更新用户启用状态失败: %v", err)
		InternalError(c, t(failedKey))
		return
	}
	Message(c, t(successKey))
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Description 校验旧密码后更新为新密码
// @Tags 用户管理
// @Accept json
// @Produce json
// @Param id path int true "用户ID"
// @Param request body ChangePasswordRequest true "新旧密码"
// @Success 200 {object} Response "修改成功"
// @Failure 400 {object} Response "参数错误或旧密码不正确"
// @Failure 404 {object} Response "用户不存在"
// @Security BearerAuth
// @Router /users/{id}/change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	t := middleware.GetT(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if id == 0 {
		BadRequest(c, t("User.ID.Require"))
		return
	}

	var req ChangePasswordRequest
	_ = c.ShouldBindJSON(&req)

	if strings.TrimSpace(req.OldPassword) == "" {
		BadRequest(c, t("OldPassword.Require"))
		return
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		BadRequest(c, t("NewPassword.Require"))
		return
	}
	if strings.TrimSpace(req.ConfirmPassword) == "" {
		BadRequest(c, t("ConfirmPassword.Require"))
		return
	}
	if len(strings.TrimSpace(req.OldPassword)) < 6 {
		BadRequest(c, t("OldPassword.MaxLength"))
		return
	}
	if len(strings.TrimSpace(req.NewPassword)) < 6 {
		BadRequest(c, t("NewPassword.MaxLength"))
		return
	}
	if req.OldPassword == req.NewPassword {
		BadRequest(c, t("NewPassword.Repeated"))
		return
	}

	user, err := h.userService.GetUserByID(uint(id))
	if err != nil {
		log.Printf("查询用户失败: %v", err)
		InternalError(c, t("User.ChangedPasswordFailed"))
		return
	}
	if user == nil {
		NotFound(c, t("User.NotExist"))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		BadRequest(c, t("OldPassword.Incorrect"))
		return
	}
	if req.ConfirmPassword != req.NewPassword {
		BadRequest(c, t("ConfirmPassword.NotMatch"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, t("User.ChangedPasswordFailed"))
		return
	}
	if err := h.userService.UpdateUserPassword(uint(id), string(hashed), currentOperator(c)); err != nil {
		if isNotFound(err) {
			NotFound(c, t("User.NotExist"))
			return
		}
		log.Printf("修改密码失败: %v", err)
		InternalError(c, t("User.ChangedPasswordFailed"))
		return
	}
	Message(c, t("User.ChangedPassword"))
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// ResetPassword 重置密码（管理操作，不校验旧密码）
// @Summary 重置密码
// @Tags 用户管理
// @Accept json
// @Produce json
// @Param id path int true "用户ID"
// @Param request body ResetPasswordRequest true "新密码"
// @Success 200 {object} Response "重置成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "用户不存在"
// @Security BearerAuth
// @Router /users/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	t := middleware.GetT(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if id == 0 {
		BadRequest(c, t("User.ID.Require"))
		return
	}

	var req ResetPasswordRequest
	_ = c.ShouldBindJSON(&req)
	if strings.TrimSpace(req.Password) == "" {
		BadRequest(c, t("Password.Require"))
		return
	}

	user, err := h.userService.GetUserByID(uint(id))
	if err != nil {
		log.Printf("查询用户失败: %v", err)
		InternalError(c, t("User.ResetPasswordFailed"))
		return
	}
	if user == nil {
		NotFound(c, t("User.NotExist"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, t("User.ResetPasswordFailed"))
		return
	}
	if err := h.userService.UpdateUserPassword(uint(id), string(hashed), currentOperator(c)); err != nil {
		if isNotFound(err) {
			NotFound(c, t("User.NotExist"))
			return
		}
		log.Printf("重置密码失败: %v", err)
		InternalError(c, t("User.ResetPasswordFailed"))
		return
	}
	Message(c, t("User.ResetPassword"))
}
