// Package i18n 提供错误与提示文案的多语言翻译。
package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocaleES = "es-ES"
	LocaleEN = "en-US"
	LocaleZH = "zh-CN"
)

// DefaultLocale 默认语言（店铺面向西语用户）
const DefaultLocale = LocaleES

var (
	supportedTags = []language.Tag{
		language.MustParse(LocaleES),
		language.MustParse(LocaleEN),
		language.MustParse(LocaleZH),
	}
	matcher = language.NewMatcher(supportedTags)
)

// Match 将任意语言标签匹配到支持的语言
func Match(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedTags[idx].String()
}

// ResolveLocale 解析请求语言：query lang 优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return Match(lang)
	}
	return Match(c.GetHeader("Accept-Language"))
}

// T 翻译文案，缺失时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
