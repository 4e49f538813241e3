package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"usercenter/database"
	"usercenter/i18n"
	"usercenter/models"

	"gorm.io/gorm"
)

// UserService 用户服务
type UserService struct{}

// NewUserService 创建用户服务
func NewUserService() *UserService {
	return &UserService{}
}

// UserPageRequest 用户分页查询请求
type UserPageRequest struct {
	Page       int
	PageSize   int
	SearchText string
	StartDate  *time.Time
	EndDate    *time.Time
	Sort       string // 逗号分隔的排序字段列表
	Order      string // 逗号分隔的排序方向列表，与 Sort 按下标配对
	AuthTypes  string // 逗号分隔的认证方式编码列表
}

// PageUser 列表页用户视图：基础字段外附加角色名、性别文案与认证方式
type PageUser struct {
	models.User
	Roles       []string `json:"roles"`
	GenderLabel string   `json:"genderLabel"`
	AuthTypes   []string `json:"authTypes"`
}

// UserPageResult 用户分页查询结果
type UserPageResult struct {
	Users    []PageUser `json:"users"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// UserUpdateInput 用户更新入参，调用方已把"新值或旧值"合并完毕
type UserUpdateInput struct {
	Email       *string
	PhoneNumber *string
	Name        *string
	FirstName   *string
	LastName    *string
	NickName    *string
	AvatarURL   *string
	Gender      *int
	Country     *string
	Province    *string
	City        *string
	Address     *string
	Biography   *string
	BirthDate   *string // 原始日期串，这里统一解析；缺失或不可解析则清空
	Verified    bool
	Enabled     bool
}

var digitsPattern = regexp.MustCompile(`^\d+$`)

// 可排序字段到列名的映射，列名不能参数化，未知字段直接忽略
var sortableColumns = map[string]string{
	"id":          "id",
	"username":    "username",
	"email":       "email",
	"phoneNumber": "phone_number",
	"name":        "name",
	"nickName":    "nick_name",
	"gender":      "gender",
	"birthDate":   "birth_date",
	"verified":    "verified",
	"enabled":     "enabled",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// escapeLikeValue 转义 LIKE 模式中的特殊字符，避免用户输入改变匹配语义
func escapeLikeValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// buildOrderClauses 按下标配对 sort 和 order 列表。
// order 不足时缺省按 desc；未知排序字段忽略；两者都为空时按创建时间倒序。
func buildOrderClauses(sort, order string) []string {
	if sort == "" {
		sort = "createdAt"
	}
	if order == "" {
		order = "desc"
	}
	sortFields := strings.Split(sort, ",")
	orderFields := strings.Split(order, ",")

	var clauses []string
	for i, field := range sortFields {
		column, ok := sortableColumns[strings.TrimSpace(field)]
		if !ok {
			continue
		}
		direction := "desc"
		if i < len(orderFields) && strings.EqualFold(strings.TrimSpace(orderFields[i]), "asc") {
			direction = "asc"
		}
		clauses = append(clauses, column+" "+direction)
	}
	if len(clauses) == 0 {
		clauses = append(clauses, "created_at desc")
	}
	return clauses
}

// GetUsers 分页查询用户列表
// 搜索词对用户名/手机号/邮箱/姓名/昵称做模糊匹配；纯数字且不越界时额外按 id 精确匹配。
// 列表查询与总数查询是两次独立往返，并发写入下总数可能与当前页不完全一致。
func (s *UserService) GetUsers(req *UserPageRequest, lang string, t i18n.TranslateFunc) (*UserPageResult, error) {
	query := database.DB.Model(&models.User{})

	if req.SearchText != "" {
		like := "%" + escapeLikeValue(req.SearchText) + "%"
		search := database.DB.
			Where("username LIKE ?", like).
			Or("phone_number LIKE ?", like).
			Or("email LIKE ?", like).
			Or("name LIKE ?", like).
			Or("nick_name LIKE ?", like)
		if digitsPattern.MatchString(req.SearchText) {
			if id, err := strconv.ParseInt(req.SearchText, 10, 64); err == nil {
				search = search.Or("id = ?", id)
			}
		}
		query = query.Where(search)
	}

	if req.StartDate != nil {
		query = query.Where("created_at >= ?", *req.StartDate)
	}
	if req.EndDate != nil {
		query = query.Where("created_at <= ?", *req.EndDate)
	}

	if req.AuthTypes != "" {
		var codes []int
		for _, part := range strings.Split(req.AuthTypes, ",") {
			if code, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				codes = append(codes, code)
			}
		}
		if len(codes) > 0 {
			query = query.Where(
				"EXISTS (SELECT 1 FROM auths WHERE auths.user_id = users.id AND auths.auth_type IN ? AND auths.deleted_at IS NULL)",
				codes,
			)
		}
	}

	for _, clause := range buildOrderClauses(req.Sort, req.Order) {
		query = query.Order(clause)
	}

	var users []models.User
	if err := query.
		Preload("UserRoles.Role").
		Preload("Auths").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&users).Error; err != nil {
		return nil, err
	}

	var total int64
	if err := database.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	result := &UserPageResult{
		Users:    make([]PageUser, 0, len(users)),
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	for i := range users {
		result.Users = append(result.Users, s.shapePageUser(&users[i], lang, t))
	}
	return result, nil
}

// shapePageUser 把用户行整形为列表视图：剔除密码、按语言取角色名、翻译性别、展开认证方式
func (s *UserService) shapePageUser(user *models.User, lang string, t i18n.TranslateFunc) PageUser {
	safe := *FilterSafeUserInfo(user)

	roles := make([]string, 0, len(user.UserRoles))
	for _, ur := range user.UserRoles {
		name := ur.Role.NameZh
		if lang == i18n.LangEnUS {
			name = ur.Role.NameEn
		}
		if name != "" {
			roles = append(roles, name)
		}
	}

	genderLabel := ""
	if user.Gender != nil && t != nil {
		if key, ok := models.GenderLabelKeyMap[*user.Gender]; ok {
			genderLabel = t(key)
		}
	}

	authTypes := make([]string, 0, len(user.Auths))
	for _, auth := range user.Auths {
		if name, ok := models.AuthTypeNameMap[auth.AuthType]; ok {
			authTypes = append(authTypes, name)
		}
	}

	safe.UserRoles = nil
	safe.Auths = nil
	return PageUser{
		User:        safe,
		Roles:       roles,
		GenderLabel: genderLabel,
		AuthTypes:   authTypes,
	}
}

// GetUserByID 按 ID 查询未删除的用户，不存在时返回 (nil, nil)
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// AlreadyExists 按用户名探测未删除用户是否存在，命中时一并返回该行供调用方复用
func (s *UserService) AlreadyExists(username string) (bool, *models.User, error) {
	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil, nil
		}
		return false, nil, err
	}
	return true, &user, nil
}

// CreateUser 创建用户，verified 和 enabled 无条件置为 true，并记录创建人。
// 用户名唯一性由存储层唯一索引兜底，冲突以重复键错误返回。
func (s *UserService) CreateUser(user *models.User, operatorID *uint) error {
	user.Verified = true
	user.Enabled = true
	user.CreatedBy = operatorID
	return database.DB.Create(user).Error
}

// UpdateUser 整行更新用户资料并记录更新人。
// birthDate 可解析时落库为日期，否则清空为 NULL；目标行不存在返回 ErrRecordNotFound。
func (s *UserService) UpdateUser(id uint, input *UserUpdateInput, operatorID *uint) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return nil, err
	}

	var birthDate interface{}
	if input.BirthDate != nil {
		if parsed, ok := parseDate(*input.BirthDate); ok {
			birthDate = parsed
		}
	}

	updates := map[string]interface{}{
		"email":        input.Email,
		"phone_number": input.PhoneNumber,
		"name":         input.Name,
		"first_name":   input.FirstName,
		"last_name":    input.LastName,
		"nick_name":    input.NickName,
		"avatar_url":   input.AvatarURL,
		"gender":       input.Gender,
		"country":      input.Country,
		"province":     input.Province,
		"city":         input.City,
		"address":      input.Address,
		"biography":    input.Biography,
		"birth_date":   birthDate,
		"verified":     input.Verified,
		"enabled":      input.Enabled,
		"updated_by":   operatorID,
	}
	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserPassword 仅更新密码哈希并记录更新人
func (s *UserService) UpdateUserPassword(id uint, hashedPassword string, operatorID *uint) error {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return err
	}
	return database.DB.Model(&user).Updates(map[string]interface{}{
		"password":   hashedPassword,
		"updated_by": operatorID,
	}).Error
}

// DeleteUser 软删除用户：写入删除时间与删除人，行保留在表中
func (s *UserService) DeleteUser(id uint, operatorID *uint) error {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return err
	}
	return database.DB.Model(&user).Updates(map[string]interface{}{
		"deleted_at": time.Now(),
		"deleted_by": operatorID,
		"updated_by": operatorID,
	}).Error
}

// ActivateUser 启用用户
func (s *UserService) ActivateUser(id uint, operatorID *uint) error {
	return s.updateFlag(id, "enabled", true, operatorID)
}

// DeactivateUser 禁用用户
func (s *UserService) DeactivateUser(id uint, operatorID *uint) error {
	return s.updateFlag(id, "enabled", false, operatorID)
}

// VerifyUser 标记用户为已验证
func (s *UserService) VerifyUser(id uint, operatorID *uint) error {
	return s.updateFlag(id, "verified", true, operatorID)
}

func (s *UserService) updateFlag(id uint, column string, value bool, operatorID *uint) error {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return err
	}
	return database.DB.Model(&user).Updates(map[string]interface{}{
		column:       value,
		"updated_by": operatorID,
	}).Error
}

// FilterSafeUserInfo 返回剔除密码的用户副本，入参不被修改
func FilterSafeUserInfo(user *models.User) *models.User {
	safe := *user
	safe.Password = ""
	return &safe
}

// parseDate 解析日期串，兼容 RFC3339 与 2006-01-02 两种格式
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}
