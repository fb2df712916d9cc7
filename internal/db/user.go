package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User 定义了可登录的账号
type User struct {
	Base
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName string `gorm:"size:200" json:"full_name"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"size:20;not null;default:user" json:"role"`
}

// IsAdmin 判断账号是否拥有后台权限
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EnsureAdmin 存在性检查：若提供的邮箱与密码均非空，则保证存在一个 admin 账号。
// 账号已存在时仅提升角色，不覆盖密码。
func EnsureAdmin(gdb *gorm.DB, email, password string) error {
	trimmedEmail := strings.ToLower(strings.TrimSpace(email))
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if gdb == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := gdb.Where("email = ?", trimmedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return gdb.Create(&User{Email: trimmedEmail, FullName: "Administrator", Password: string(hashed), Role: RoleAdmin}).Error
	}

	if existing.Role != RoleAdmin {
		return gdb.Model(&User{}).Where("id = ?", existing.ID).Update("role", RoleAdmin).Error
	}
	return nil
}
