package public

import (
	"net/http"

	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/http/response"
	"github.com/hopbarley/internal/i18n"
	"github.com/hopbarley/internal/service"

	"github.com/gin-gonic/gin"
)

const checkoutPath = "/checkout"

// PaymentMethodOption 结账页支付方式选项
type PaymentMethodOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// GetCheckout 结账页：空车引导回购物车，匿名用户暂存购物车后要求登录
func (h *Handler) GetCheckout(c *gin.Context) {
	sess, userCart, ok := h.openCart(c)
	if !ok {
		return
	}
	locale := i18n.ResolveLocale(c)
	if userCart.IsEmpty() {
		response.SuccessWithMsg(c, i18n.T(locale, "cart.empty"), gin.H{
			"status":   constants.CartResultEmpty,
			"redirect": "cart",
		})
		return
	}

	userID := optionalUserID(c)
	if userID == 0 {
		if _, err := h.CartService.SaveBeforeLogin(sess, userCart); err != nil {
			respondError(c, response.CodeInternal, "error.cart_load_failed", err)
			return
		}
		response.AbortWithStatus(c, http.StatusUnauthorized, response.CodeUnauthorized, i18n.T(locale, "checkout.login_required"), gin.H{
			"redirect": "login",
			"next":     checkoutPath,
		})
		return
	}

	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		respondUserTokenError(c, err)
		return
	}
	view, err := h.CartService.View(userCart)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{
		"cart":            view,
		"form":            service.CheckoutFormFromUser(user),
		"payment_methods": paymentMethodOptions(locale),
	})
}

// PlaceOrder 提交结账表单并下单
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var form service.CheckoutForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	_, userCart, ok := h.openCart(c)
	if !ok {
		return
	}

	locale := i18n.ResolveLocale(c)
	order, err := h.OrderService.PlaceOrder(service.PlaceOrderInput{
		UserID: userID,
		Cart:   userCart,
		Form:   form,
		Locale: locale,
	})
	if err != nil {
		respondOrderPlaceError(c, err, form.Normalize())
		return
	}
	response.SuccessWithMsg(c, i18n.Sprintf(locale, "order.created", order.OrderNo), gin.H{
		"order":    order,
		"redirect": "order",
	})
}

func paymentMethodOptions(locale string) []PaymentMethodOption {
	options := make([]PaymentMethodOption, 0, len(constants.PaymentMethods))
	for _, method := range constants.PaymentMethods {
		options = append(options, PaymentMethodOption{
			Value: method,
			Label: i18n.T(locale, "payment."+method),
		})
	}
	return options
}
