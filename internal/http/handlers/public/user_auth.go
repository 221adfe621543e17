package public

import (
	"time"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/models"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserAuthResponse 登录/注册响应
type UserAuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// UserRegister 用户注册（普通用户，非员工）
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, UserAuthResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, UserAuthResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// UserLogout 注销：已签发的 Token 全部失效
func (h *Handler) UserLogout(c *gin.Context) {
	caller := getCaller(c)
	if !caller.Authenticated() {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	if err := h.UserAuthService.Logout(c.Request.Context(), caller.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// GetCurrentUser 当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	caller := getCaller(c)
	if !caller.Authenticated() {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	user, err := h.UserAuthService.GetUser(caller.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}
