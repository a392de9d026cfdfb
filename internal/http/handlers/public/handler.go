package public

import "github.com/hopbarley/internal/provider"

// Handler 前台接口处理器入口
// 说明：目录、购物车、结账、订单与用户侧 API 共用同一个处理器。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
