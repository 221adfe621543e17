package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/tienda-next/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByUsername(username string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
	TouchLogin(id uint, at time.Time) error
	BumpTokenVersion(id uint) error
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByUsername 根据登录名获取用户（大小写不敏感）
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	normalized := strings.ToLower(strings.TrimSpace(username))
	if err := r.db.Where("LOWER(username) = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// TouchLogin 记录最后登录时间
func (r *GormUserRepository) TouchLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// BumpTokenVersion 递增 Token 版本，使已签发的 Token 全部失效
func (r *GormUserRepository) BumpTokenVersion(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("token_version", gorm.Expr("token_version + 1")).Error
}
