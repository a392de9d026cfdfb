package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// 支付方式常量
const (
	PaymentMethodDebit  = "debit"
	PaymentMethodCredit = "credit"
	PaymentMethodCash   = "cash"
	PaymentMethodPaypal = "paypal"
	PaymentMethodWallet = "wallet"
)

// PaymentMethods 结账页展示顺序
var PaymentMethods = []string{
	PaymentMethodDebit,
	PaymentMethodCredit,
	PaymentMethodCash,
	PaymentMethodPaypal,
	PaymentMethodWallet,
}

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 购物车会话键常量
const (
	SessionKeyCart            = "cart"
	SessionKeyCartBeforeLogin = "cart_before_login"
	SessionKeySavedCart       = "saved_cart"
	SessionKeyCartBackup      = "cart_backup"
)

// SavedCartKeys 登录后合并时依次尝试的暂存键
var SavedCartKeys = []string{
	SessionKeyCartBeforeLogin,
	SessionKeySavedCart,
	SessionKeyCartBackup,
}

// 会话存储类型常量
const (
	SessionStoreRedis    = "redis"
	SessionStoreMemory   = "memory"
	SessionCookieDefault = "hb_session"
)

// 请求上下文键
const (
	ContextUserID       = "user_id"
	ContextUsername     = "username"
	ContextCartTransfer = "cart_transfer"
)

// 购物车操作结果状态
const (
	CartResultSuccess = "success"
	CartResultError   = "error"
	CartResultEmpty   = "empty"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskOrderPlacedEmail = "order:placed_email"
	TaskLowStockScan     = "catalog:low_stock_scan"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "hb"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleRuRU = "ru-RU"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleRuRU}

// 商品分页默认值
const (
	CatalogPageSizeDefault     = 12
	CatalogFeaturedLimit       = 5
	CatalogRelatedLimit        = 4
	AccountRecentOrdersLimit   = 5
	LowStockThresholdDefault   = 10
	LowStockScanMinutesDefault = 60
)
