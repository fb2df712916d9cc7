package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 表示邮箱或密码错误
var ErrInvalidCredentials = errors.New("invalid email or password")

const minPasswordLength = 6

// AuthService 负责账号注册、登录校验与角色管理
type AuthService struct {
	Resource[db.User]
	db *gorm.DB
}

// NewAuthService 构造 AuthService
func NewAuthService(gdb *gorm.DB) *AuthService {
	return &AuthService{
		Resource: NewResource[db.User](gdb, store.Desc("created_at")),
		db:       gdb,
	}
}

// RegisterInput 是注册表单
type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

// Register 创建普通用户账号
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*db.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := cleanText(input.FullName)
	if err := required("email", email, "password", input.Password); err != nil {
		return nil, err
	}
	if !validEmail(email) {
		return nil, invalidf("email is not valid")
	}
	if len(input.Password) < minPasswordLength {
		return nil, invalidf("password must be at least %d characters", minPasswordLength)
	}

	taken, err := s.Count(ctx, store.Eq("email", email))
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken > 0 {
		return nil, fmt.Errorf("%w: email %q", ErrDuplicate, email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := db.User{Email: email, FullName: fullName, Password: string(hashed), Role: db.RoleUser}
	if err := s.insert(ctx, &user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return &user, nil
}

// Authenticate 校验邮箱与密码，失败时统一返回 ErrInvalidCredentials
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	users, err := s.find(ctx, store.Eq("email", email))
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrInvalidCredentials
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// EnsureAdmin 根据配置保证存在管理员账号
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	return db.EnsureAdmin(s.db.WithContext(ctx), email, password)
}

// SetRole 修改账号角色
func (s *AuthService) SetRole(ctx context.Context, id, role string) (*db.User, error) {
	if !slices.Contains([]string{db.RoleAdmin, db.RoleUser}, role) {
		return nil, invalidf("unknown role %q", role)
	}
	return s.update(ctx, id, map[string]interface{}{"role": role})
}
