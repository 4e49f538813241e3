package api

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"usercenter/middleware"
	"usercenter/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 用户导出处理器
type ExportHandler struct {
	userService *service.UserService
}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{userService: service.NewUserService()}
}

// exportPageSize 导出时单页上限，避免一次拉全表
const exportPageSize = 10000

// ExportUsers 导出用户列表为 Excel
// @Summary 导出用户
// @Description 按与列表页相同的筛选条件导出用户为 xlsx 文件
// @Tags 用户管理
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param searchText query string false "搜索词"
// @Param startDate query string false "创建时间下界"
// @Param endDate query string false "创建时间上界"
// @Param authTypes query string false "认证方式编码列表，逗号分隔"
// @Success 200 {file} file "xlsx 文件"
// @Failure 500 {object} Response "导出失败"
// @Security BearerAuth
// @Router /users/export [get]
func (h *ExportHandler) ExportUsers(c *gin.Context) {
	t := middleware.GetT(c)
	lang := middleware.GetLang(c)

	req := &service.UserPageRequest{
		Page:       1,
		PageSize:   exportPageSize,
		SearchText: c.Query("searchText"),
		StartDate:  parseDateParam(c.Query("startDate")),
		EndDate:    parseDateParam(c.Query("endDate")),
		Sort:       c.Query("sort"),
		Order:      c.Query("order"),
		AuthTypes:  c.Query("authTypes"),
	}

	result, err := h.userService.GetUsers(req, lang, t)
	if err != nil {
		log.Printf("导出查询用户失败: %v", err)
		InternalError(c, t("Export.Failed"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "用户列表"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 28)
	f.SetColWidth(sheetName, "D", "D", 18)
	f.SetColWidth(sheetName, "E", "E", 15)
	f.SetColWidth(sheetName, "F", "F", 8)
	f.SetColWidth(sheetName, "G", "G", 15)
	f.SetColWidth(sheetName, "H", "H", 20)
	f.SetColWidth(sheetName, "I", "I", 8)
	f.SetColWidth(sheetName, "J", "J", 8)
	f.SetColWidth(sheetName, "K", "K", 20)

	headers := []string{"ID", "用户名", "邮箱", "手机号", "姓名", "性别", "角色", "认证方式", "已验证", "已启用", "创建时间"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, user := range result.Users {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), user.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), user.Username)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), deref(user.Email))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), deref(user.PhoneNumber))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), deref(user.Name))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), user.GenderLabel)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), joinList(user.Roles))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), joinList(user.AuthTypes))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), boolLabel(user.Verified))
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), boolLabel(user.Enabled))
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), user.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("K%d", row), dataStyle)
	}

	filename := fmt.Sprintf("用户列表_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("写出 Excel 失败: %v", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func joinList(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}

func boolLabel(b bool) string {
	if b {
		return "是"
	}
	return "否"
}
