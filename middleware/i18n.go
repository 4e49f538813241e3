package middleware

import (
	"usercenter/i18n"

	"github.com/gin-gonic/gin"
)

const (
	langContextKey = "lang"
	tContextKey    = "t"
)

// Localize 按请求解析语言并把翻译函数写入上下文。
// 语言来源优先级：?lang= 参数 > Accept-Language 头 > 配置默认语言。
func Localize(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.ResolveLang(c.Query("lang"), c.GetHeader("Accept-Language"), defaultLang)
		c.Set(langContextKey, lang)
		c.Set(tContextKey, i18n.T(lang))
		c.Next()
	}
}

// GetLang 获取当前请求语言，未经过 Localize 时返回 zh_CN
func GetLang(c *gin.Context) string {
	if v, ok := c.Get(langContextKey); ok {
		if lang, ok := v.(string); ok {
			return lang
		}
	}
	return i18n.LangZhCN
}

// GetT 获取当前请求的翻译函数，未经过 Localize 时回退到 key 原样返回
func GetT(c *gin.Context) i18n.TranslateFunc {
	if v, ok := c.Get(tContextKey); ok {
		if t, ok := v.(i18n.TranslateFunc); ok {
			return t
		}
	}
	return func(key string) string { return key }
}
