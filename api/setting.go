package api

import (
	"log"
	"strconv"
	"strings"

	"usercenter/middleware"
	"usercenter/service"

	"github.com/gin-gonic/gin"
)

// SettingHandler 配置项处理器
type SettingHandler struct {
	settingService *service.SettingService
}

// NewSettingHandler 创建配置项处理器
func NewSettingHandler() *SettingHandler {
	return &SettingHandler{settingService: service.NewSettingService()}
}

// GetSettings 配置项列表
// @Summary 配置项列表
// @Tags 配置管理
// @Produce json
// @Param page query int true "页码，从 1 开始"
// @Param pageSize query int true "每页数量"
// @Success 200 {object} map[string]interface{} "配置项列表与总数"
// @Failure 400 {object} Response "分页参数错误"
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingHandler) GetSettings(c *gin.Context) {
	t := middleware.GetT(c)

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

	settings, total, err := h.settingService.GetSettings(page, pageSize)
	if err != nil {
		log.Printf("查询配置项列表失败: %v", err)
		InternalError(c, SafeErrorMessage(err, t("Setting.GetFailed")))
		return
	}

	c.JSON(200, gin.H{
		"data":     settings,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// GetSettingByKey 按 key 查询配置项
// @Summary 配置项详情
// @Tags 配置管理
// @Produce json
// @Param key path string true "配置项 key"
// @Success 200 {object} Response "配置项"
// @Failure 404 {object} Response "配置项不存在"
// @Security BearerAuth
// @Router /settings/{key} [get]
func (h *SettingHandler) GetSettingByKey(c *gin.Context) {
	t := middleware.GetT(c)
	key := c.Param("key")

	setting, err := h.settingService.GetSettingByKey(key)
	if err != nil {
		log.Printf("查询配置项失败: %v", err)
		InternalError(c, t("Setting.GetFailed"))
		return
	}
	if setting == nil {
		NotFound(c, t("Setting.NotExist"))
		return
	}
	Success(c, setting)
}

// GetSettingsByKeys 批量按 key 查询配置项
// @Summary 批量查询配置项
// @Description keys 为逗号分隔的 key 列表
// @Tags 配置管理
// @Produce json
// @Param keys query string true "key 列表，逗号分隔"
// @Success 200 {object} Response "配置项列表"
// @Failure 400 {object} Response "keys 为空"
// @Security BearerAuth
// @Router /settings/batch [get]
func (h *SettingHandler) GetSettingsByKeys(c *gin.Context) {
	t := middleware.GetT(c)

	var keys []string
	for _, part := range strings.Split(c.Query("keys"), ",") {
		if key := strings.TrimSpace(part); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		BadRequest(c, t("Setting.List.Require"))
		return
	}

	settings, err := h.settingService.GetSettingsByKeys(keys)
	if err != nil {
		log.Printf("批量查询配置项失败: %v", err)
		InternalError(c, t("Setting.GetFailed"))
		return
	}
	Success(c, settings)
}

// SettingRequest 配置项写入请求
type SettingRequest struct {
	Key         string  `json:"key"`
	Value       *string `json:"value"`
	Description string  `json:"description"`
}

// CreateSetting 创建配置项
// @Summary 创建配置项
// @Tags 配置管理
// @Accept json
// @Produce json
// @Param request body SettingRequest true "配置项"
// @Success 201 {object} Response "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 409 {object} Response "key 已存在"
// @Security BearerAuth
// @Router /settings [post]
func (h *SettingHandler) CreateSetting(c *gin.Context) {
	t := middleware.GetT(c)

	var req SettingRequest
	_ = c.ShouldBindJSON(&req)
	if strings.TrimSpace(req.Key) == "" {
		BadRequest(c, t("Setting.Key.Require"))
		return
	}

	setting, err := h.settingService.CreateSetting(&service.SettingInput{
		Key:         strings.TrimSpace(req.Key),
		Value:       req.Value,
		Description: req.Description,
	}, currentOperator(c))
	if err != nil {
		if _, ok := duplicateKeyColumn(err); ok {
			Conflict(c, t("Setting.Key.Unique"))
			return
		}
		log.Printf("创建配置项失败: %v", err)
		InternalError(c, t("Setting.CreateFailed"))
		return
	}
	CreatedWithMessage(c, t("Setting.Created"), setting)
}

// CreateSettings 批量创建配置项
// @Summary 批量创建配置项
// @Tags 配置管理
// @Accept json
// @Produce json
// @Param request body []SettingRequest true "配置项列表"
// @Success 201 {object} Response "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 409 {object} Response "存在重复 key"
// @Security BearerAuth
// @Router /settings/batch [post]
func (h *SettingHandler) CreateSettings(c *gin.Context) {
	t := middleware.GetT(c)

	var reqs []SettingRequest
	if err := c.ShouldBindJSON(&reqs); err != nil || len(reqs) == 0 {
		BadRequest(c, t("Setting.List.Require"))
		return
	}

	inputs := make([]service.SettingInput, 0, len(reqs))
	for _, req := range reqs {
		if strings.TrimSpace(req.Key) == "" {
			BadRequest(c, t("Setting.Key.Require"))
			return
		}
		inputs = append(inputs, service.SettingInput{
			Key:         strings.TrimSpace(req.Key),
			Value:       req.Value,
			Description: req.Description,
		})
	}

	settings, err := h.settingService.CreateSettings(inputs, currentOperator(c))
	if err != nil {
		if _, ok := duplicateKeyColumn(err); ok {
			Conflict(c, t("Setting.Key.Unique"))
			return
		}
		log.Printf("批量创建配置项失败: %v", err)
		InternalError(c, t("Setting.CreateFailed"))
		return
	}
	CreatedWithMessage(c, t("Setting.Created"), settings)
}

// UpdateSettingByKey 更新配置项
// @Summary 更新配置项
// @Description 更新值与描述，value 传 null 时清空
// @Tags 配置管理
// @Accept json
// @Produce json
// @Param key path string true "配置项 key"
// @Param request body SettingRequest true "配置项内容"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "配置项不存在"
// @Security BearerAuth
// @Router /settings/{key} [patch]
func (h *SettingHandler) UpdateSettingByKey(c *gin.Context) {
	t := middleware.GetT(c)
	key := c.Param("key")

	var req SettingRequest
	_ = c.ShouldBindJSON(&req)

	setting, err := h.settingService.UpdateSettingByKey(&service.SettingInput{
		Key:         key,
		Value:       req.Value,
		Description: req.Description,
	}, currentOperator(c))
	if err != nil {
		if isNotFound(err) {
			NotFound(c, t("Setting.NotExist"))
			return
		}
		log.Printf("更新配置项失败: %v", err)
		InternalError(c, t("Setting.UpdateFailed"))
		return
	}
	SuccessWithMessage(c, t("Setting.Updated"), setting)
}

// DeleteSettingByKey 删除配置项（软删除）
// @Summary 删除配置项
// @Tags 配置管理
// @Produce json
// @Param key path string true "配置项 key"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "配置项不存在"
// @Security BearerAuth
// @Router /settings/{key} [delete]
func (h *SettingHandler) DeleteSettingByKey(c *gin.Context) {
	t := middleware.GetT(c)
	key := c.Param("key")

	if err := h.settingService.DeleteSettingByKey(key, currentOperator(c)); err != nil {
		if isNotFound(err) {
			NotFound(c, t("Setting.NotExist"))
			return
		}
		log.Printf("删除配置项失败: %v", err)
		InternalError(c, t("Setting.DeleteFailed"))
		return
	}
	Message(c, t("Setting.Deleted"))
}

// EnableSetting 启用配置项
// @Summary 启用配置项
// @Tags 配置管理
// @Produce json
// @Param key path string true "配置项 key"
// @Success 200 {object} Response "启用成功"
// @Failure 404 {object} Response "配置项不存在"
// @Security BearerAuth
// @Router /settings/{key}/enable [post]
func (h *SettingHandler) EnableSetting(c *gin.Context) {
	h.setEnabled(c, true)
}

// DisableSetting 禁用配置项
// @Summary 禁用配置项
// @Tags 配置管理
// @Produce json
// @Param key path string true "配置项 key"
// @Success 200 {object} Response "禁用成功"
// @Failure 404 {object} Response "配置项不存在"
// @Security BearerAuth
// @Router /settings/{key}/disable [post]
func (h *SettingHandler) DisableSetting(c *gin.Context) {
	h.setEnabled(c, false)
}

func (h *SettingHandler) setEnabled(c *gin.Context, enabled bool) {
	t := middleware.GetT(c)
	key := c.Param("key")

	var (
		err        error
		successKey string
		failedKey  string
	)
	if enabled {
		err = h.settingService.EnableSettingByKey(key, currentOperator(c))
		successKey, failedKey = "Setting.Enabled", "Setting.EnableFailed"
	} else {
		err = h.settingService.BanSettingByKey(key, currentOperator(c))
		successKey, failedKey = "Setting.Disabled", "Setting.DisableFailed"
	}
	if err != nil {
		if isNotFound(err) {
			NotFound(c, t("Setting.NotExist"))
			return
		}
		log.Printf("更新配置项启用状态失败: %v", err)
		InternalError(c, t(failedKey))
		return
	}
	Message(c, t(successKey))
}
