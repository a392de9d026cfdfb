package router

import (
	"net/http"

	"github.com/hopbarley/internal/cache"
	"github.com/hopbarley/internal/config"
	publichandlers "github.com/hopbarley/internal/http/handlers/public"
	"github.com/hopbarley/internal/logger"
	"github.com/hopbarley/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        cache.Key("rate:login"),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}
	registerRule := loginRule
	registerRule.Prefix = cache.Key("rate:register")

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 健康检查不打开会话
	r.GET("/health", func(c *gin.Context) {
		if err := cache.Ping(c.Request.Context()); err != nil {
			logger.Warnw("health_redis_unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	apiV1.Use(SessionMiddleware(c.SessionManager, cfg.Session))
	apiV1.Use(OptionalUserAuthMiddleware(c.UserAuthService))
	apiV1.Use(CartTransferMiddleware(c.CartTransferService))
	{
		// 公开目录接口
		public := apiV1.Group("/public")
		{
			public.GET("/home", publicHandler.GetHome)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/categories", publicHandler.GetCategories)
		}

		// 会话购物车，匿名与登录用户共用
		cartGroup := apiV1.Group("/cart")
		{
			cartGroup.GET("", publicHandler.GetCart)
			cartGroup.POST("/add", publicHandler.AddToCart)
			cartGroup.POST("/update", publicHandler.UpdateCart)
			cartGroup.POST("/remove", publicHandler.RemoveFromCart)
			cartGroup.POST("/clear", publicHandler.ClearCart)
			cartGroup.POST("/save-before-login", publicHandler.SaveCartBeforeLogin)
		}
		apiV1.GET("/checkout", publicHandler.GetCheckout)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.UserLogin)
			auth.POST("/refresh", UserJWTAuthMiddleware(c.UserAuthService), publicHandler.UserRefresh)
			auth.POST("/logout", UserJWTAuthMiddleware(c.UserAuthService), publicHandler.UserLogout)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(c.UserAuthService))
		{
			user.GET("/me", publicHandler.GetMe)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.POST("/checkout", publicHandler.PlaceOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}
	}

	return r
}
