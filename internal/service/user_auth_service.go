package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/tienda-next/internal/cache"
	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{3,150}$`)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	IsStaff      bool   `json:"is_staff"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	hours := s.cfg.JWT.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Username:     user.Username,
		IsStaff:      user.IsStaff,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ResolveCaller 校验 Token 并返回调用方身份。
// 以用户当前状态为准（缓存快照优先），Token 版本不一致或账号禁用均视为无效。
func (s *UserAuthService) ResolveCaller(ctx context.Context, tokenString string) (Caller, error) {
	claims, err := s.ParseUserJWT(tokenString)
	if err != nil {
		return Anonymous(), err
	}

	state, hit, err := cache.GetUserAuthState(ctx, claims.UserID)
	if err != nil {
		logger.Warnw("user_auth_state_cache_get_failed", "user_id", claims.UserID, "error", err)
	}
	if !hit || state == nil {
		user, err := s.userRepo.GetByID(claims.UserID)
		if err != nil {
			return Anonymous(), err
		}
		if user == nil {
			return Anonymous(), ErrInvalidToken
		}
		state = cache.BuildUserAuthState(user)
		if err := cache.SetUserAuthState(ctx, state); err != nil {
			logger.Warnw("user_auth_state_cache_set_failed", "user_id", claims.UserID, "error", err)
		}
	}

	if !strings.EqualFold(state.Status, constants.UserStatusActive) || state.TokenVersion != claims.TokenVersion {
		return Anonymous(), ErrInvalidToken
	}
	return Caller{UserID: state.UserID, IsStaff: state.IsStaff}, nil
}

// Register 注册普通用户（非员工）并签发 Token
func (s *UserAuthService) Register(username, email, password string) (*models.User, string, time.Time, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, "", time.Time{}, ErrInvalidUsername
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, password); err != nil {
		return nil, "", time.Time{}, err
	}
	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if existing != nil {
		return nil, "", time.Time{}, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	user := &models.User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Login 用户登录
func (s *UserAuthService) Login(username, password string) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Warnw("user_password_compare_failed", "user_id", user.ID, "error", err)
		}
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !strings.EqualFold(user.Status, constants.UserStatusActive) {
		return nil, "", time.Time{}, ErrUserDisabled
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.TouchLogin(user.ID, now); err != nil {
		logger.Warnw("user_touch_login_failed", "user_id", user.ID, "error", err)
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, token, expiresAt, nil
}

// Logout 注销当前用户的全部 Token
func (s *UserAuthService) Logout(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrAuthenticationRequired
	}
	if err := s.userRepo.BumpTokenVersion(userID); err != nil {
		return err
	}
	if err := cache.DelUserAuthState(ctx, userID); err != nil {
		logger.Warnw("user_auth_state_cache_del_failed", "user_id", userID, "error", err)
	}
	return nil
}

// GetUser 获取用户
func (s *UserAuthService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
