// Package i18n 提供按请求语言解析文案 key 的翻译函数。
// 文案缺失时回退到 key 本身，翻译函数缺失时调用方按空串处理。
package i18n

import (
	"golang.org/x/text/language"
)

// 支持的语言标识
const (
	LangZhCN = "zh_CN"
	LangEnUS = "en_US"
)

// TranslateFunc 文案翻译函数，key 未命中时返回 key 本身
type TranslateFunc func(key string) string

var supported = []language.Tag{
	language.SimplifiedChinese, // zh_CN，第一项为兜底
	language.AmericanEnglish,   // en_US
}

var matcher = language.NewMatcher(supported)

// ResolveLang 解析请求语言：query 参数优先，其次 Accept-Language，最后默认语言
func ResolveLang(queryLang, acceptLanguage, defaultLang string) string {
	if queryLang == LangZhCN || queryLang == LangEnUS {
		return queryLang
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			_, index, conf := matcher.Match(tags...)
			if conf > language.No {
				if supported[index] == language.AmericanEnglish {
					return LangEnUS
				}
				return LangZhCN
			}
		}
	}
	if defaultLang == LangEnUS {
		return LangEnUS
	}
	return LangZhCN
}

// T 返回指定语言的翻译函数
func T(lang string) TranslateFunc {
	catalog := zhCN
	if lang == LangEnUS {
		catalog = enUS
	}
	return func(key string) string {
		if msg, ok := catalog[key]; ok {
			return msg
		}
		return key
	}
}
