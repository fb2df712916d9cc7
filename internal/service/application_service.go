package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/store"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ApplicationService 处理 /apply 提交的加入申请
type ApplicationService struct {
	Resource[db.WorkApplication]
}

// NewApplicationService 构造 ApplicationService
func NewApplicationService(gdb *gorm.DB) *ApplicationService {
	return &ApplicationService{
		Resource: NewResource[db.WorkApplication](gdb, store.Desc("created_at")),
	}
}

// ApplicationInput 是访客填写的申请表
type ApplicationInput struct {
	FullName     string
	Email        string
	Phone        string
	Skills       string
	Experience   string
	PortfolioURL string
}

var applicationStatuses = []string{
	db.ApplicationStatusPending,
	db.ApplicationStatusApproved,
	db.ApplicationStatusRejected,
}

// Submit 保存访客申请，状态为 pending
func (s *ApplicationService) Submit(ctx context.Context, input ApplicationInput) (*db.WorkApplication, error) {
	application := db.WorkApplication{
		FullName:     cleanText(input.FullName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        cleanText(input.Phone),
		Skills:       datatypes.JSONSlice[string](SplitTags(cleanText(input.Skills))),
		Experience:   cleanText(input.Experience),
		PortfolioURL: strings.TrimSpace(input.PortfolioURL),
		Status:       db.ApplicationStatusPending,
	}
	if err := required("full_name", application.FullName, "email", application.Email); err != nil {
		return nil, err
	}
	if !validEmail(application.Email) {
		return nil, invalidf("email is not valid")
	}
	if !validURL(application.PortfolioURL) {
		return nil, invalidf("portfolio_url must be an http(s) url")
	}
	if err := s.insert(ctx, &application); err != nil {
		return nil, fmt.Errorf("submit application: %w", err)
	}
	return &application, nil
}

// List 返回申请，status 为空时返回全部
func (s *ApplicationService) List(ctx context.Context, status string) ([]db.WorkApplication, error) {
	if status == "" {
		return s.All(ctx)
	}
	if !slices.Contains(applicationStatuses, status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.find(ctx, store.Eq("status", status))
}

// UpdateStatus 设置审核状态
func (s *ApplicationService) UpdateStatus(ctx context.Context, id, status string) (*db.WorkApplication, error) {
	status = strings.TrimSpace(status)
	if !slices.Contains(applicationStatuses, status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.update(ctx, id, map[string]interface{}{"status": status})
}

// SaveNotes 保存后台备注
func (s *ApplicationService) SaveNotes(ctx context.Context, id, notes string) (*db.WorkApplication, error) {
	return s.update(ctx, id, map[string]interface{}{"admin_notes": strings.TrimSpace(notes)})
}
