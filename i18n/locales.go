package i18n

// zhCN 简体中文文案
var zhCN = map[string]string{
	"Page.Require": "页码和每页数量不能为空",
	"Page.Invalid": "页码和每页数量必须是正整数",

	"User.NotExist":                 "用户不存在",
	"User.GetFailed":                "获取用户失败",
	"User.Created":                  "创建用户成功",
	"User.CreateFailed":             "创建用户失败",
	"User.Updated":                  "修改用户成功",
	"User.UpdateFailed":             "修改用户失败",
	"User.Deleted":                  "删除用户成功",
	"User.DeleteFailed":             "删除用户失败",
	"User.Activated":                "启用用户成功",
	"User.ActivatedFailed":          "启用用户失败",
	"User.Deactivated":              "禁用用户成功",
	"User.DeactivatedFailed":        "禁用用户失败",
	"User.ChangedPassword":          "修改密码成功",
	"User.ChangedPasswordFailed":    "修改密码失败",
	"User.ResetPassword":            "重置密码成功",
	"User.ResetPasswordFailed":      "重置密码失败",
	"User.ID.Require":               "用户 ID 不能为空",
	"User.CanNotProcessCurrentUser": "不能操作当前登录用户",
	"User.Username.Unique":          "用户名已被占用",
	"User.Email.Unique":             "邮箱已被占用",

	"Username.Require":      "用户名不能为空",
	"Username.MaxLength":    "用户名长度不能少于 4 位",
	"Username.AlreadyExist": "用户名已存在",

	"Password.Require":   "密码不能为空",
	"Password.MaxLength": "密码长度不能少于 6 位",

	"OldPassword.Require":   "旧密码不能为空",
	"OldPassword.MaxLength": "旧密码长度不能少于 6 位",
	"OldPassword.Incorrect": "旧密码不正确",

	"NewPassword.Require":   "新密码不能为空",
	"NewPassword.MaxLength": "新密码长度不能少于 6 位",
	"NewPassword.Repeated":  "新密码不能与旧密码相同",

	"ConfirmPassword.Require":  "确认密码不能为空",
	"ConfirmPassword.NotMatch": "两次输入的密码不一致",

	"Gender.Secret": "保密",
	"Gender.Male":   "男",
	"Gender.Female": "女",

	"Setting.NotExist":      "配置项不存在",
	"Setting.Created":       "创建配置项成功",
	"Setting.CreateFailed":  "创建配置项失败",
	"Setting.Updated":       "更新配置项成功",
	"Setting.UpdateFailed":  "更新配置项失败",
	"Setting.Deleted":       "删除配置项成功",
	"Setting.DeleteFailed":  "删除配置项失败",
	"Setting.Enabled":       "启用配置项成功",
	"Setting.EnableFailed":  "启用配置项失败",
	"Setting.Disabled":      "禁用配置项成功",
	"Setting.DisableFailed": "禁用配置项失败",
	"Setting.Key.Require":   "配置项 key 不能为空",
	"Setting.Key.Unique":    "配置项 key 已存在",
	"Setting.List.Require":  "配置项列表不能为空",
	"Setting.GetFailed":     "获取配置项失败",

	"Login.Failed":      "用户名或密码错误",
	"Login.Disabled":    "账号已被禁用，请联系管理员",
	"Auth.Unauthorized": "请先登录",

	"Export.Failed": "导出失败",
}

// enUS 英文文案
var enUS = map[string]string{
	"Page.Require": "Page and pageSize are required",
	"Page.Invalid": "Page and pageSize must be positive integers",

	"User.NotExist":                 "User does not exist",
	"User.GetFailed":                "Failed to get users",
	"User.Created":                  "Created user successfully",
	"User.CreateFailed":             "Failed to create user",
	"User.Updated":                  "Updated user successfully",
	"User.UpdateFailed":             "Failed to update user",
	"User.Deleted":                  "Deleted user successfully",
	"User.DeleteFailed":             "Failed to delete user",
	"User.Activated":                "Activated user successfully",
	"User.ActivatedFailed":          "Failed to activate user",
	"User.Deactivated":              "Deactivated user successfully",
	"User.DeactivatedFailed":        "Failed to deactivate user",
	"User.ChangedPassword":          "Changed password successfully",
	"User.ChangedPasswordFailed":    "Failed to change password",
	"User.ResetPassword":            "Reset password successfully",
	"User.ResetPasswordFailed":      "Failed to reset password",
	"User.ID.Require":               "User ID is required",
	"User.CanNotProcessCurrentUser": "Cannot operate on the current user",
	"User.Username.Unique":          "Username is already taken",
	"User.Email.Unique":             "Email is already taken",

	"Username.Require":      "Username is required",
	"Username.MaxLength":    "Username must be at least 4 characters",
	"Username.AlreadyExist": "Username already exists",

	"Password.Require":   "Password is required",
	"Password.MaxLength": "Password must be at least 6 characters",

	"OldPassword.Require":   "Old password is required",
	"OldPassword.MaxLength": "Old password must be at least 6 characters",
	"OldPassword.Incorrect": "Old password is incorrect",

	"NewPassword.Require":   "New password is required",
	"NewPassword.MaxLength": "New password must be at least 6 characters",
	"NewPassword.Repeated":  "New password must differ from the old password",

	"ConfirmPassword.Require":  "Confirm password is required",
	"ConfirmPassword.NotMatch": "Passwords do not match",

	"Gender.Secret": "Secret",
	"Gender.Male":   "Male",
	"Gender.Female": "Female",

	"Setting.NotExist":      "Setting does not exist",
	"Setting.Created":       "Created setting successfully",
	"Setting.CreateFailed":  "Failed to create setting",
	"Setting.Updated":       "Updated setting successfully",
	"Setting.UpdateFailed":  "Failed to update setting",
	"Setting.Deleted":       "Deleted setting successfully",
	"Setting.DeleteFailed":  "Failed to delete setting",
	"Setting.Enabled":       "Enabled setting successfully",
	"Setting.EnableFailed":  "Failed to enable setting",
	"Setting.Disabled":      "Disabled setting successfully",
	"Setting.DisableFailed": "Failed to disable setting",
	"Setting.Key.Require":   "Setting key is required",
	"Setting.Key.Unique":    "Setting key already exists",
	"Setting.List.Require":  "Setting list is required",
	"Setting.GetFailed":     "Failed to get settings",

	"Login.Failed":      "Incorrect username or password",
	"Login.Disabled":    "Account is disabled, please contact the administrator",
	"Auth.Unauthorized": "Please sign in first",

	"Export.Failed": "Export failed",
}
