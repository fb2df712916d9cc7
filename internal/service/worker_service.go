package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/store"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WorkerService 管理可被分配任务的协作者
type WorkerService struct {
	Resource[db.Worker]
}

// NewWorkerService 构造 WorkerService，新建的排在前面
func NewWorkerService(gdb *gorm.DB) *WorkerService {
	return &WorkerService{
		Resource: NewResource[db.Worker](gdb, store.Desc("created_at")),
	}
}

// WorkerInput 对应后台表单，Skills 为逗号或换行分隔的文本
type WorkerInput struct {
	FullName string
	Email    string
	Phone    string
	Skills   string
	UserID   string
}

// WorkerOption 是分配下拉框的一项
type WorkerOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// Create 新建协作者，状态固定为 active
func (s *WorkerService) Create(ctx context.Context, input WorkerInput) (*db.Worker, error) {
	worker, err := buildWorker(input)
	if err != nil {
		return nil, err
	}
	worker.Status = db.WorkerStatusActive
	if err := s.insert(ctx, &worker); err != nil {
		return nil, fmt.Errorf("create worker: %w", err)
	}
	return &worker, nil
}

// Update 更新协作者资料，不修改状态
func (s *WorkerService) Update(ctx context.Context, id string, input WorkerInput) (*db.Worker, error) {
	worker, err := buildWorker(input)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, map[string]interface{}{
		"full_name": worker.FullName,
		"email":     worker.Email,
		"phone":     worker.Phone,
		"skills":    worker.Skills,
		"user_id":   worker.UserID,
	})
}

// ToggleStatus 在 active 与 inactive 之间切换，返回新状态
func (s *WorkerService) ToggleStatus(ctx context.Context, id string) (string, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	next := db.WorkerStatusActive
	if current.Status == db.WorkerStatusActive {
		next = db.WorkerStatusInactive
	}
	if err := s.setField(ctx, id, "status", next); err != nil {
		return "", err
	}
	return next, nil
}

// ListActive 返回可分配的协作者，只取 id 与姓名
func (s *WorkerService) ListActive(ctx context.Context) ([]WorkerOption, error) {
	rows, err := s.table.Select(ctx, store.Query{
		Filters: []store.Filter{store.Eq("status", db.WorkerStatusActive)},
		Order:   []store.Order{store.Asc("full_name")},
		Columns: []string{"id", "full_name"},
	})
	if err != nil {
		return nil, fmt.Errorf("list active workers: %w", err)
	}
	options := make([]WorkerOption, 0, len(rows))
	for _, row := range rows {
		options = append(options, WorkerOption{ID: row.ID, FullName: row.FullName})
	}
	return options, nil
}

// Form 将协作者还原为编辑表单文本
func (s *WorkerService) Form(ctx context.Context, id string) (WorkerInput, error) {
	worker, err := s.Get(ctx, id)
	if err != nil {
		return WorkerInput{}, err
	}
	form := WorkerInput{
		FullName: worker.FullName,
		Email:    worker.Email,
		Phone:    worker.Phone,
		Skills:   JoinTags(worker.Skills),
	}
	if worker.UserID != nil {
		form.UserID = *worker.UserID
	}
	return form, nil
}

func buildWorker(input WorkerInput) (db.Worker, error) {
	worker := db.Worker{
		FullName: strings.TrimSpace(input.FullName),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:    strings.TrimSpace(input.Phone),
		Skills:   datatypes.JSONSlice[string](SplitTags(input.Skills)),
	}
	if err := required("full_name", worker.FullName, "email", worker.Email); err != nil {
		return db.Worker{}, err
	}
	if !validEmail(worker.Email) {
		return db.Worker{}, invalidf("email is not valid")
	}
	if userID := strings.TrimSpace(input.UserID); userID != "" {
		worker.UserID = &userID
	}
	return worker, nil
}
