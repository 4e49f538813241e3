package api

import (
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry MySQL 唯一索引冲突错误码
const mysqlDuplicateEntry = 1062

// duplicateKeyColumn 识别唯一索引冲突并返回冲突列名（从索引名里解析），
// 非冲突错误返回 ("", false)
func duplicateKeyColumn(err error) (string, bool) {
	var mysqlErr *mysqldriver.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlDuplicateEntry {
		return "", false
	}
	// 形如: Duplicate entry 'xxx' for key 'users.idx_users_username'
	msg := mysqlErr.Message
	switch {
	case strings.Contains(msg, "username"):
		return "username", true
	case strings.Contains(msg, "email"):
		return "email", true
	case strings.Contains(msg, "settings"):
		return "key", true
	}
	return "", true
}

// isNotFound 判断写操作目标行是否不存在
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
