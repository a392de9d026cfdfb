package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	contextKey       = "hb_session"
	cookieOptionsKey = "hb_session_cookie"
)

// CookieOptions 会话 Cookie 参数
type CookieOptions struct {
	Name     string
	Domain   string
	MaxAge   int
	Secure   bool
	SameSite http.SameSite
}

// ParseSameSite 解析配置中的 SameSite
func ParseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Attach 将会话与 Cookie 参数挂到请求上下文
func Attach(c *gin.Context, s *Session, opts CookieOptions) {
	c.Set(contextKey, s)
	c.Set(cookieOptionsKey, opts)
}

// FromContext 读取请求上下文中的会话
func FromContext(c *gin.Context) *Session {
	if c == nil {
		return nil
	}
	raw, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	s, _ := raw.(*Session)
	return s
}

// WriteCookie 下发会话 Cookie
func WriteCookie(c *gin.Context, opts CookieOptions, s *Session) {
	if c == nil || s == nil {
		return
	}
	c.SetSameSite(opts.SameSite)
	c.SetCookie(opts.Name, s.ID(), opts.MaxAge, "/", opts.Domain, opts.Secure, true)
}

// RefreshCookie 会话 ID 轮换后按请求上的参数重新下发 Cookie
func RefreshCookie(c *gin.Context) {
	s := FromContext(c)
	if s == nil {
		return
	}
	raw, ok := c.Get(cookieOptionsKey)
	if !ok {
		return
	}
	if opts, ok := raw.(CookieOptions); ok {
		WriteCookie(c, opts, s)
	}
}
