package i18n

import (
	"fmt"
	"strings"

	"github.com/hopbarley/internal/constants"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleEN = constants.LocaleEnUS
	LocaleRU = constants.LocaleRuRU

	defaultLocale = LocaleEN
)

var matcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
	language.Russian,
})

var catalogs = map[string]map[string]string{
	LocaleEN: messagesEN,
	LocaleRU: messagesRU,
}

// T 翻译消息键，缺失时依次回退到默认语言与键本身
func T(locale, key string) string {
	if msg, ok := catalogs[NormalizeLocale(locale)][key]; ok {
		return msg
	}
	if msg, ok := catalogs[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// NormalizeLocale 归一化语言标识，未知语言返回默认语言
func NormalizeLocale(locale string) string {
	value := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case value == "":
		return defaultLocale
	case strings.HasPrefix(value, "ru"):
		return LocaleRU
	case strings.HasPrefix(value, "en"):
		return LocaleEN
	default:
		return defaultLocale
	}
}

// MatchAcceptLanguage 按 Accept-Language 协商语言
func MatchAcceptLanguage(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return defaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return defaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return defaultLocale
	}
	if index == 1 {
		return LocaleRU
	}
	return LocaleEN
}

// ResolveLocale 解析请求语言：?lang= > X-Locale > Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return defaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	if header := strings.TrimSpace(c.GetHeader("X-Locale")); header != "" {
		return NormalizeLocale(header)
	}
	return MatchAcceptLanguage(c.GetHeader("Accept-Language"))
}
