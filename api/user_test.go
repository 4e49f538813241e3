package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"usercenter/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newUserRouter 挂好本地化中间件并注入登录用户 ID
func newUserRouter(currentUserID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Localize("zh_CN"))
	if currentUserID != 0 {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", currentUserID)
			c.Next()
		})
	}
	h := NewUserHandler()
	router.GET("/users", h.GetUsers)
	router.POST("/users", h.CreateUser)
	router.GET("/users/:id", h.GetUserByID)
	router.PATCH("/users/:id", h.UpdateUser)
	router.DELETE("/users/:id", h.DeleteUser)
	router.POST("/users/:id/activate", h.ActivateUser)
	router.POST("/users/:id/deactivate", h.DeactivateUser)
	router.POST("/users/:id/change-password", h.ChangePassword)
	router.POST("/users/:id/reset-password", h.ResetPassword)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUserHandler_GetUsers_PageValidation(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := newUserRouter(1)

	// 缺分页参数
	w := doJSON(router, "GET", "/users", "")
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "页码和每页数量不能为空")

	// 非法分页参数
	w = doJSON(router, "GET", "/users?page=0&pageSize=10", "")
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "必须是正整数")

	w = doJSON(router, "GET", "/users?page=abc&pageSize=10", "")
	assert.Equal(t, 400, w.Code)
}

func TestUserHandler_GetUsers_Empty(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))
	mock.ExpectQuery("SELECT count.* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	router := newUserRouter(1)
	w := doJSON(router, "GET", "/users?page=1&pageSize=10", "")

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Total    int `json:"total"`
		Page     int `json:"page"`
		PageSize int `json:"pageSize"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_GetUsers_NumericSearchMatchesID(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 纯数字搜索词要追加 id 精确匹配分支
	mock.ExpectQuery("SELECT .* FROM `users` WHERE .*id = .*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))
	mock.ExpectQuery("SELECT count.* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	router := newUserRouter(1)
	w := doJSON(router, "GET", "/users?page=1&pageSize=10&searchText=42", "")

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_GetUserByID_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := newUserRouter(1)
	w := doJSON(router, "GET", "/users/99", "")

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "用户不存在")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_GetUserByID(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "enabled"}).
			AddRow(2, "alice", "secret-hash", true))

	router := newUserRouter(1)
	w := doJSON(router, "GET", "/users/2", "")

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	// 密码哈希绝不能出现在响应里
	assert.NotContains(t, w.Body.String(), "secret-hash")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_CreateUser_Validation(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := newUserRouter(1)

	w := doJSON(router, "POST", "/users", `{"password":"123456"}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "用户名不能为空")

	w = doJSON(router, "POST", "/users", `{"username":"bob"}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "密码不能为空")

	// 用户名至少 4 位
	w = doJSON(router, "POST", "/users", `{"username":"bob","password":"123456"}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "用户名长度")

	// 密码至少 6 位
	w = doJSON(router, "POST", "/users", `{"username":"bobby","password":"12345"}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "密码长度")
}

func TestUserHandler_CreateUser_Duplicate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "alice"))

	router := newUserRouter(1)
	w := doJSON(router, "POST", "/users", `{"username":"alice","password":"123456"}`)

	assert.Equal(t, 409, w.Code)
	assert.Contains(t, w.Body.String(), "用户名已存在")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_CreateUser(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("carol").
		WillReturnRows(sqlmock.NewRows([]string{}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	router := newUserRouter(1)
	w := doJSON(router, "POST", "/users", `{"username":"carol","password":"123456"}`)

	assert.Equal(t, 201, w.Code)
	assert.Contains(t, w.Body.String(), "创建用户成功")
	assert.Contains(t, w.Body.String(), "carol")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_DeleteUser(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "alice"))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := newUserRouter(1)
	w := doJSON(router, "DELETE", "/users/2", "")

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "删除用户成功")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_DeleteUser_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := newUserRouter(1)
	w := doJSON(router, "DELETE", "/users/99", "")

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "用户不存在")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_Activate_Self(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := newUserRouter(7)
	w := doJSON(router, "POST", "/users/7/activate", "")

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "不能操作当前登录用户")

	w = doJSON(router, "POST", "/users/7/deactivate", "")
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "不能操作当前登录用户")
}

func TestUserHandler_Deactivate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "enabled"}).AddRow(2, "alice", true))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := newUserRouter(1)
	w := doJSON(router, "POST", "/users/2/deactivate", "")

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "禁用用户成功")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_ChangePassword_Validation(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := newUserRouter(1)

	w := doJSON(router, "POST", "/users/2/change-password", `{}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "旧密码不能为空")

	w = doJSON(router, "POST", "/users/2/change-password", `{"oldPassword":"123456"}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "新密码不能为空")

	w = doJSON(router, "POST", "/users/2/change-password",
		`{"oldPassword":"123456","newPassword":"654321"}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "确认密码不能为空")

	// 新旧密码相同
	w = doJSON(router, "POST", "/users/2/change-password",
		`{"oldPassword":"123456","newPassword":"123456","confirmPassword":"123456"}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "新密码不能与旧密码相同")
}

func TestUserHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}).
			AddRow(2, "alice", string(hashed)))

	router := newUserRouter(1)
	w := doJSON(router, "POST", "/users/2/change-password",
		`{"oldPassword":"wrong1","newPassword":"654321","confirmPassword":"654321"}`)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "旧密码不正确")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_ChangePassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "username", "password"}).
			AddRow(2, "alice", string(hashed))
	}

	// 校验旧密码时查一次，更新密码前再查一次
	mock.ExpectQuery("SELECT .* FROM `users`").WillReturnRows(userRows())
	mock.ExpectQuery("SELECT .* FROM `users`").WillReturnRows(userRows())
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := newUserRouter(1)
	w := doJSON(router, "POST", "/users/2/change-password",
		`{"oldPassword":"123456","newPassword":"654321","confirmPassword":"654321"}`)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "修改密码成功")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_ChangePassword_ConfirmMismatch(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}).
			AddRow(2, "alice", string(hashed)))

	router := newUserRouter(1)
	w := doJSON(router, "POST", "/users/2/change-password",
		`{"oldPassword":"123456","newPassword":"654321","confirmPassword":"999999"}`)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "两次输入的密码不一致")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_ResetPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := newUserRouter(1)

	// 密码必填
	w := doJSON(router, "POST", "/users/2/reset-password", `{}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "密码不能为空")

	// 用户不存在
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	w = doJSON(router, "POST", "/users/99/reset-password", `{"password":"654321"}`)
	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "用户不存在")

	// 正常重置
	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "alice")
	}
	mock.ExpectQuery("SELECT .* FROM `users`").WillReturnRows(userRows())
	mock.ExpectQuery("SELECT .* FROM `users`").WillReturnRows(userRows())
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w = doJSON(router, "POST", "/users/2/reset-password", `{"password":"654321"}`)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "重置密码成功")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_UpdateUser(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "username", "nick_name", "enabled", "verified", "created_at"}).
			AddRow(2, "alice", "小爱", true, true, now)
	}

	// 合并旧值查一次，更新前再查一次
	mock.ExpectQuery("SELECT .* FROM `users`").WillReturnRows(userRows())
	mock.ExpectQuery("SELECT .* FROM `users`").WillReturnRows(userRows())
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := newUserRouter(1)
	w := doJSON(router, "PATCH", "/users/2", `{"nickName":"新昵称","gender":1}`)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "修改用户成功")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_UpdateUser_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := newUserRouter(1)
	w := doJSON(router, "PATCH", "/users/99", `{"nickName":"x"}`)

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "用户不存在")
	require.NoError(t, mock.ExpectationsWereMet())
}
