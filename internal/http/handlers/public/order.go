package public

import (
	"strconv"
	"strings"

	handlershared "github.com/hopbarley/internal/http/handlers/shared"
	"github.com/hopbarley/internal/http/response"
	"github.com/hopbarley/internal/repository"

	"github.com/gin-gonic/gin"
)

const orderPageSizeDefault = 10

// ListOrders 当前用户的订单列表，最新在前
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPage(c, orderPageSizeDefault)
	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}

// GetOrder 当前用户的订单详情，他人订单按不存在处理
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_order_id", nil)
		return
	}
	order, err := h.OrderService.GetOrderByUser(uint(orderID), userID)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.Success(c, order)
}
