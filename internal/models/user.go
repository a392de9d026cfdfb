package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Username           string         `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email              string         `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Phone              string         `gorm:"size:20;default:''" json:"phone"`
	FirstName          string         `gorm:"size:150;default:''" json:"first_name"`
	LastName           string         `gorm:"size:150;default:''" json:"last_name"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Status             string         `gorm:"size:20;default:'active'" json:"status"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"` // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`              // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// FullName 姓名，未填写时回退到用户名
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Username
	}
	return name
}
