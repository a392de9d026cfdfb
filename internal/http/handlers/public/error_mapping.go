package public

import (
	"errors"

	"github.com/hopbarley/internal/cart"
	"github.com/hopbarley/internal/http/response"
	"github.com/hopbarley/internal/i18n"
	"github.com/hopbarley/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductInactive, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.invalid_quantity"},
	{target: cart.ErrInvalidProduct, code: response.CodeBadRequest, key: "error.invalid_product_id"},
}

var orderPlaceErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrOrderUserRequired, code: response.CodeUnauthorized, key: "error.order_user_required"},
}

var orderQueryErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderUserRequired, code: response.CodeUnauthorized, key: "error.unauthorized"},
}

var userAccountErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidUsername, code: response.CodeBadRequest, key: "error.username_invalid"},
	{target: service.ErrUsernameExists, code: response.CodeConflict, key: "error.username_exists"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
	{target: service.ErrPasswordMismatch, code: response.CodeBadRequest, key: "error.password_mismatch"},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, key: "error.password_old_invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var userLoginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
}

var userTokenErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidToken, code: response.CodeUnauthorized, key: "error.token_invalid"},
	{target: service.ErrTokenRevoked, code: response.CodeUnauthorized, key: "error.token_revoked"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
	{target: service.ErrNotFound, code: response.CodeUnauthorized, key: "error.token_invalid"},
}

func respondCatalogError(c *gin.Context, err error) {
	respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.internal")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_load_failed")
}

func respondOrderQueryError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "error.internal")
}

func respondUserLoginError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userLoginErrorRules, response.CodeInternal, "error.internal")
}

func respondUserTokenError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userTokenErrorRules, response.CodeInternal, "error.internal")
}

// respondUserAccountError 密码策略错误带参数，单独渲染
func respondUserAccountError(c *gin.Context, err error) {
	var policyErr service.PasswordPolicyError
	if errors.As(err, &policyErr) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), policyErr.Key(), policyErr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	respondWithMappedError(c, err, concatMappedHandlerErrors(userAccountErrorRules, userLoginErrorRules), response.CodeInternal, "error.internal")
}

// respondOrderPlaceError 库存与下架错误在消息中带上商品名
func respondOrderPlaceError(c *gin.Context, err error, form service.CheckoutForm) {
	locale := i18n.ResolveLocale(c)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		respondErrorWithData(c, response.CodeBadRequest, "error.checkout_invalid", gin.H{
			"fields": localizeFields(locale, validationErr),
			"form":   form,
		})
		return
	}
	var stockErr *cart.StockError
	if errors.As(err, &stockErr) {
		msg := i18n.Sprintf(locale, "error.insufficient_stock", stockErr.ProductName, stockErr.Available)
		response.ErrorWithData(c, response.CodeConflict, msg, gin.H{"product_id": stockErr.ProductID, "available": stockErr.Available})
		return
	}
	var unavailableErr *service.ProductUnavailableError
	if errors.As(err, &unavailableErr) {
		msg := i18n.Sprintf(locale, "error.product_unavailable", unavailableErr.ProductName)
		response.ErrorWithData(c, response.CodeConflict, msg, gin.H{"product_id": unavailableErr.ProductID})
		return
	}
	respondWithMappedError(c, err, orderPlaceErrorRules, response.CodeInternal, "error.order_create_failed")
}

// localizeFields 字段错误渲染为当前语言
func localizeFields(locale string, err *service.ValidationError) map[string]string {
	fields := make(map[string]string, len(err.Fields))
	for name, field := range err.Fields {
		if field.Param != "" {
			fields[name] = i18n.Sprintf(locale, field.Key, field.Param)
			continue
		}
		fields[name] = i18n.T(locale, field.Key)
	}
	return fields
}
