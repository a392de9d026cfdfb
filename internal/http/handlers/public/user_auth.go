package public

import (
	"strings"

	"github.com/hopbarley/internal/http/response"
	"github.com/hopbarley/internal/i18n"
	"github.com/hopbarley/internal/models"
	"github.com/hopbarley/internal/repository"
	"github.com/hopbarley/internal/service"
	"github.com/hopbarley/internal/session"

	"github.com/gin-gonic/gin"
)

const recentOrdersLimit = 5

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Phone           string `json:"phone"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// UserLoginRequest 登录请求，Username 可填用户名或邮箱
type UserLoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// UpdateProfileRequest 资料更新请求，未传字段保持不变
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" binding:"required"`
}

// UserRegister 用户注册，成功后直接登录
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	result, err := h.UserAuthService.Register(service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		respondUserAccountError(c, err)
		return
	}
	transfer := h.establishLogin(c, sess, result.User.ID)
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "auth.registered"), authPayload(result, transfer))
}

// UserLogin 用户名或邮箱登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	result, err := h.UserAuthService.Login(req.Username, req.Password, req.RememberMe)
	if err != nil {
		respondUserLoginError(c, err)
		return
	}
	transfer := h.establishLogin(c, sess, result.User.ID)
	msg := i18n.Sprintf(i18n.ResolveLocale(c), "auth.logged_in", result.User.FullName())
	response.SuccessWithMsg(c, msg, authPayload(result, transfer))
}

// UserRefresh 为有效 Token 签发新 Token
func (h *Handler) UserRefresh(c *gin.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	result, err := h.UserAuthService.Refresh(c.Request.Context(), token)
	if err != nil {
		respondUserTokenError(c, err)
		return
	}
	response.Success(c, authPayload(result, nil))
}

// UserLogout 吊销 Token 并清空会话
func (h *Handler) UserLogout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.Logout(userID); err != nil {
		respondUserTokenError(c, err)
		return
	}
	if sess := session.FromContext(c); sess != nil {
		h.SessionManager.Flush(sess)
		session.RefreshCookie(c)
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "auth.logged_out"), gin.H{"logged_out": true})
}

// GetMe 个人资料与最近订单
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		respondUserTokenError(c, err)
		return
	}
	orders, _, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:     1,
		PageSize: recentOrdersLimit,
		UserID:   userID,
	})
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.Success(c, gin.H{
		"user":          userProfile(user),
		"recent_orders": orders,
	})
}

// UpdateProfile 更新个人资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(userID, service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		respondUserAccountError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "auth.profile_updated"), gin.H{"user": userProfile(user)})
}

// ChangePassword 修改密码，旧 Token 失效后签发新 Token
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword, req.NewPasswordConfirm); err != nil {
		respondUserAccountError(c, err)
		return
	}
	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		respondUserTokenError(c, err)
		return
	}
	token, expiresAt, err := h.UserAuthService.GenerateUserJWT(user, 0)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "auth.password_changed"), authPayload(&service.AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil))
}

// establishLogin 登录后：暂存匿名购物车、合并进用户购物车、轮换会话 ID
func (h *Handler) establishLogin(c *gin.Context, sess *session.Session, userID uint) *service.CartTransferResult {
	if err := h.stashAnonymousCart(sess); err != nil {
		requestLog(c).Warnw("login_cart_stash_failed", "user_id", userID, "error", err)
	}
	transfer, err := h.CartTransferService.Transfer(c.Request.Context(), sess, userID)
	if err != nil {
		requestLog(c).Warnw("login_cart_transfer_failed", "user_id", userID, "error", err)
		transfer = nil
	}
	h.SessionManager.Cycle(sess)
	session.RefreshCookie(c)
	return transfer
}

// stashAnonymousCart 匿名购物车非空时以当前内容覆盖暂存快照
func (h *Handler) stashAnonymousCart(sess *session.Session) error {
	anonymous, err := h.CartService.Open(sess, 0)
	if err != nil {
		return err
	}
	if anonymous.IsEmpty() {
		return nil
	}
	_, err = h.CartService.SaveBeforeLogin(sess, anonymous)
	return err
}

func authPayload(result *service.AuthResult, transfer *service.CartTransferResult) gin.H {
	data := gin.H{
		"user":       userProfile(result.User),
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
	}
	if transfer.Transferred() {
		data["cart_transfer"] = transfer
	}
	return data
}

func userProfile(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"phone":         user.Phone,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"full_name":     user.FullName(),
		"last_login_at": user.LastLoginAt,
		"created_at":    user.CreatedAt,
	}
}
