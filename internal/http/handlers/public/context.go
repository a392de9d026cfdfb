package public

import (
	"net/http"

	"github.com/hopbarley/internal/cart"
	"github.com/hopbarley/internal/constants"
	handlershared "github.com/hopbarley/internal/http/handlers/shared"
	"github.com/hopbarley/internal/http/response"
	"github.com/hopbarley/internal/i18n"
	"github.com/hopbarley/internal/session"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getUserID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, constants.ContextUserID, "error.unauthorized", "error.internal")
}

// optionalUserID 匿名请求返回 0
func optionalUserID(c *gin.Context) uint {
	return c.GetUint(constants.ContextUserID)
}

func currentSession(c *gin.Context) (*session.Session, bool) {
	sess := session.FromContext(c)
	if sess == nil {
		msg := i18n.T(i18n.ResolveLocale(c), "error.session_unavailable")
		response.AbortWithStatus(c, http.StatusServiceUnavailable, response.CodeInternal, msg, nil)
		return nil, false
	}
	return sess, true
}

// openCart 打开当前身份对应的购物车
func (h *Handler) openCart(c *gin.Context) (*session.Session, *cart.Cart, bool) {
	sess, ok := currentSession(c)
	if !ok {
		return nil, nil, false
	}
	userCart, err := h.CartService.Open(sess, optionalUserID(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_load_failed", err)
		return nil, nil, false
	}
	return sess, userCart, true
}

// cartTransfer 本次请求中间件合并暂存购物车的结果
func cartTransfer(c *gin.Context) interface{} {
	value, ok := c.Get(constants.ContextCartTransfer)
	if !ok {
		return nil
	}
	return value
}
