package models

import (
	"github.com/tienda-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultStaffUsername = "admin"
	defaultStaffPassword = "admin123"
)

// InitDefaultStaff 初始化默认员工账号（仅在没有任何员工时创建）
func InitDefaultStaff(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&User{}).Where("is_staff = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if username == "" {
		username = defaultStaffUsername
	}
	if password == "" {
		password = defaultStaffPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	staff := User{
		Username:     username,
		PasswordHash: string(hash),
		IsStaff:      true,
		Status:       "active",
	}
	if err := db.Create(&staff).Error; err != nil {
		return err
	}

	if password == defaultStaffPassword {
		logger.Warnw("default_staff_created_with_default_password", "username", username)
		logger.Warnw("default_staff_password_change_required", "username", username)
	} else {
		logger.Warnw("default_staff_created", "username", username, "password_hidden", true)
	}
	return nil
}
