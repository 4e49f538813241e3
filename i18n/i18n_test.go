package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLang(t *testing.T) {
	// ?lang= 优先
	assert.Equal(t, LangEnUS, ResolveLang("en_US", "zh-CN", LangZhCN))
	assert.Equal(t, LangZhCN, ResolveLang("zh_CN", "en-US", LangEnUS))

	// 非法 lang 参数回落到 Accept-Language
	assert.Equal(t, LangEnUS, ResolveLang("fr_FR", "en-US,en;q=0.9", LangZhCN))

	// Accept-Language 协商
	assert.Equal(t, LangZhCN, ResolveLang("", "zh-CN,zh;q=0.9,en;q=0.8", LangEnUS))
	assert.Equal(t, LangEnUS, ResolveLang("", "en-GB", LangZhCN))

	// 什么都没有时用默认语言
	assert.Equal(t, LangZhCN, ResolveLang("", "", LangZhCN))
	assert.Equal(t, LangEnUS, ResolveLang("", "", LangEnUS))
}

func TestT(t *testing.T) {
	zh := T(LangZhCN)
	assert.Equal(t, "用户不存在", zh("User.NotExist"))

	en := T(LangEnUS)
	assert.Equal(t, "User does not exist", en("User.NotExist"))

	// 缺失的 key 原样返回
	assert.Equal(t, "No.Such.Key", zh("No.Such.Key"))
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	for key := range zhCN {
		_, ok := enUS[key]
		assert.True(t, ok, "enUS 缺少 key: %s", key)
	}
	for key := range enUS {
		_, ok := zhCN[key]
		assert.True(t, ok, "zhCN 缺少 key: %s", key)
	}
}
