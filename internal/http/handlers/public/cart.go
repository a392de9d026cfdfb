package public

import (
	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/http/response"
	"github.com/hopbarley/internal/i18n"
	"github.com/hopbarley/internal/models"
	"github.com/hopbarley/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求，Quantity 缺省为 1
type CartItemRequest struct {
	ProductID uint `json:"product_id" form:"product_id" binding:"required"`
	Quantity  *int `json:"quantity" form:"quantity"`
}

func (r CartItemRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// CartRemoveRequest 移除购物车项请求
type CartRemoveRequest struct {
	ProductID uint `json:"product_id" form:"product_id" binding:"required"`
}

// CartActionResponse 购物车操作响应
type CartActionResponse struct {
	Status     string        `json:"status"`
	Message    string        `json:"message"`
	ItemsCount int           `json:"items_count"`
	Total      models.Money  `json:"total"`
	ItemTotal  *models.Money `json:"item_total,omitempty"`
}

// GetCart 获取当前身份的购物车
func (h *Handler) GetCart(c *gin.Context) {
	_, userCart, ok := h.openCart(c)
	if !ok {
		return
	}
	view, err := h.CartService.View(userCart)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{
		"cart":     view,
		"transfer": cartTransfer(c),
	})
}

// AddToCart 累加加入购物车
func (h *Handler) AddToCart(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_product_id", nil)
		return
	}
	_, userCart, ok := h.openCart(c)
	if !ok {
		return
	}
	result, err := h.CartService.Add(userCart, req.ProductID, req.quantity())
	if err != nil {
		respondCartError(c, err)
		return
	}
	respondCartResult(c, result)
}

// UpdateCart 覆盖购物车项数量，数量为 0 时移除
func (h *Handler) UpdateCart(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBind(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "error.invalid_quantity", nil)
		return
	}
	_, userCart, ok := h.openCart(c)
	if !ok {
		return
	}
	result, err := h.CartService.Update(userCart, req.ProductID, *req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	respondCartResult(c, result)
}

// RemoveFromCart 移除购物车项
func (h *Handler) RemoveFromCart(c *gin.Context) {
	var req CartRemoveRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_product_id", nil)
		return
	}
	_, userCart, ok := h.openCart(c)
	if !ok {
		return
	}
	result, err := h.CartService.Remove(userCart, req.ProductID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	respondCartResult(c, result)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	_, userCart, ok := h.openCart(c)
	if !ok {
		return
	}
	result, err := h.CartService.Clear(userCart)
	if err != nil {
		respondCartError(c, err)
		return
	}
	respondCartResult(c, result)
}

// SaveCartBeforeLogin 登录前暂存匿名购物车
func (h *Handler) SaveCartBeforeLogin(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	anonymous, err := h.CartService.Open(sess, 0)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_load_failed", err)
		return
	}
	result, err := h.CartService.SaveBeforeLogin(sess, anonymous)
	if err != nil {
		respondCartError(c, err)
		return
	}
	respondCartResult(c, result)
}

// respondCartResult 预期内的失败（库存不足）走错误响应并带上购物车摘要
func respondCartResult(c *gin.Context, result *service.CartActionResult) {
	locale := i18n.ResolveLocale(c)
	resp := CartActionResponse{
		Status:     result.Status,
		Message:    i18n.Sprintf(locale, result.MessageKey, result.MessageArgs...),
		ItemsCount: result.ItemsCount,
		Total:      models.NewMoneyFromDecimal(result.Total),
	}
	if result.ItemTotal != nil {
		itemTotal := models.NewMoneyFromDecimal(*result.ItemTotal)
		resp.ItemTotal = &itemTotal
	}
	if result.Status == constants.CartResultError {
		response.ErrorWithData(c, response.CodeBadRequest, resp.Message, gin.H{
			"status":      resp.Status,
			"message":     resp.Message,
			"items_count": resp.ItemsCount,
			"total":       resp.Total,
		})
		return
	}
	response.SuccessWithMsg(c, resp.Message, resp)
}
