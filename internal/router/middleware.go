package router

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hopbarley/internal/config"
	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/http/response"
	"github.com/hopbarley/internal/i18n"
	"github.com/hopbarley/internal/logger"
	"github.com/hopbarley/internal/service"
	"github.com/hopbarley/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
			"X-Locale",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// SessionMiddleware 从 Cookie 打开会话，请求结束后提交改动
func SessionMiddleware(manager *session.Manager, cfg config.SessionConfig) gin.HandlerFunc {
	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = constants.SessionCookieDefault
	}
	opts := session.CookieOptions{
		Name:     cookieName,
		Domain:   cfg.Domain,
		MaxAge:   int(manager.TTL().Seconds()),
		Secure:   cfg.Secure,
		SameSite: session.ParseSameSite(cfg.SameSite),
	}
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookieName)
		sess, err := manager.Open(c.Request.Context(), id)
		if err != nil {
			logger.Errorw("session_open_failed", "request_id", getRequestID(c), "error", err)
			msg := i18n.T(i18n.ResolveLocale(c), "error.session_unavailable")
			response.AbortWithStatus(c, http.StatusServiceUnavailable, response.CodeInternal, msg, nil)
			return
		}
		session.Attach(c, sess, opts)
		if sess.IsNew() || sess.ID() != id {
			session.WriteCookie(c, opts, sess)
		}

		c.Next()

		if err := manager.Commit(c.Request.Context(), sess); err != nil {
			logger.Errorw("session_commit_failed",
				"request_id", getRequestID(c),
				"session_id", sess.ID(),
				"error", err,
			)
		}
	}
}

// OptionalUserAuthMiddleware 携带有效 Token 时写入用户身份，否则按匿名处理
func OptionalUserAuthMiddleware(authService *service.UserAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil || token == "" || authService == nil {
			c.Next()
			return
		}
		claims, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debugw("user_optional_auth_ignored", "request_id", getRequestID(c), "error", err)
			c.Next()
			return
		}
		setUserIdentity(c, claims)
		c.Next()
	}
}

// UserJWTAuthMiddleware 用户 JWT 鉴权中间件
func UserJWTAuthMiddleware(authService *service.UserAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(constants.ContextUserID); ok {
			c.Next()
			return
		}
		token, err := bearerToken(c)
		if err != nil {
			abortUnauthorized(c, "error.auth_header_invalid")
			return
		}
		if token == "" {
			abortUnauthorized(c, "error.auth_header_missing")
			return
		}
		if authService == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		claims, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUserDisabled):
				abortUnauthorized(c, "error.user_disabled")
			case errors.Is(err, service.ErrTokenRevoked):
				abortUnauthorized(c, "error.token_revoked")
			case errors.Is(err, service.ErrInvalidToken):
				abortUnauthorized(c, "error.token_invalid")
			default:
				logger.Errorw("user_auth_failed", "request_id", getRequestID(c), "error", err)
				abortUnauthorized(c, "error.token_invalid")
			}
			return
		}
		setUserIdentity(c, claims)
		c.Next()
	}
}

// CartTransferMiddleware 已登录请求上合并暂存的匿名购物车，失败只记录日志
func CartTransferMiddleware(transferService *service.CartTransferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(constants.ContextUserID)
		sess := session.FromContext(c)
		if transferService != nil && userID != 0 && sess != nil {
			result, err := transferService.Transfer(c.Request.Context(), sess, userID)
			if err != nil {
				logger.Warnw("cart_transfer_failed", "request_id", getRequestID(c), "user_id", userID, "error", err)
			} else if result.Transferred() {
				c.Set(constants.ContextCartTransfer, result)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

func setUserIdentity(c *gin.Context, claims *service.UserJWTClaims) {
	c.Set(constants.ContextUserID, claims.UserID)
	c.Set(constants.ContextUsername, claims.Username)
}

func abortUnauthorized(c *gin.Context, key string) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	response.AbortWithStatus(c, http.StatusUnauthorized, response.CodeUnauthorized, msg, nil)
}
