package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/store"
	"gorm.io/gorm"
)

// RequestBoard 是学生作业与 Chat Fellow 请求共用的后台操作：
// 按状态筛选、分配协作者、更新状态与备注
type RequestBoard[T any] struct {
	Resource[T]
	workers Resource[db.Worker]
}

func newRequestBoard[T any](gdb *gorm.DB) RequestBoard[T] {
	return RequestBoard[T]{
		Resource: NewResource[T](gdb, store.Desc("created_at")),
		workers:  NewResource[db.Worker](gdb),
	}
}

// List 返回请求，status 为空时返回全部
func (b RequestBoard[T]) List(ctx context.Context, status string) ([]T, error) {
	if status == "" {
		return b.All(ctx)
	}
	if !slices.Contains(db.RequestStatuses(), status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return b.find(ctx, store.Eq("status", status))
}

// AssignWorker 指派协作者并将状态置为 assigned
func (b RequestBoard[T]) AssignWorker(ctx context.Context, id, workerID string) (*T, error) {
	workerID = strings.TrimSpace(workerID)
	if workerID == "" {
		return nil, invalidf("worker_id is required")
	}
	if _, err := b.workers.Get(ctx, workerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalidf("unknown worker")
		}
		return nil, err
	}
	return b.update(ctx, id, map[string]interface{}{
		"assigned_worker_id": workerID,
		"status":             db.RequestStatusAssigned,
	})
}

// UpdateStatus 设置请求状态
func (b RequestBoard[T]) UpdateStatus(ctx context.Context, id, status string) (*T, error) {
	status = strings.TrimSpace(status)
	if !slices.Contains(db.RequestStatuses(), status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return b.update(ctx, id, map[string]interface{}{"status": status})
}

// SaveNotes 保存后台备注
func (b RequestBoard[T]) SaveNotes(ctx context.Context, id, notes string) (*T, error) {
	return b.update(ctx, id, map[string]interface{}{"admin_notes": strings.TrimSpace(notes)})
}

// StudentAssignmentService 管理学生作业请求
type StudentAssignmentService struct {
	RequestBoard[db.StudentAssignment]
}

// NewStudentAssignmentService 构造 StudentAssignmentService
func NewStudentAssignmentService(gdb *gorm.DB) *StudentAssignmentService {
	return &StudentAssignmentService{RequestBoard: newRequestBoard[db.StudentAssignment](gdb)}
}

// StudentAssignmentInput 是前台提交的作业请求，Deadline 为 YYYY-MM-DD 或 RFC3339
type StudentAssignmentInput struct {
	StudentName           string
	StudentEmail          string
	StudentPhone          string
	AssignmentTitle       string
	AssignmentDescription string
	LoginCredentials      string
	Deadline              string
}

// Submit 保存作业请求，状态为 pending
func (s *StudentAssignmentService) Submit(ctx context.Context, input StudentAssignmentInput) (*db.StudentAssignment, error) {
	record := db.StudentAssignment{
		StudentName:           cleanText(input.StudentName),
		StudentEmail:          strings.ToLower(strings.TrimSpace(input.StudentEmail)),
		StudentPhone:          cleanText(input.StudentPhone),
		AssignmentTitle:       cleanText(input.AssignmentTitle),
		AssignmentDescription: cleanText(input.AssignmentDescription),
		LoginCredentials:      strings.TrimSpace(input.LoginCredentials),
		Status:                db.RequestStatusPending,
	}
	if err := required(
		"student_name", record.StudentName,
		"student_email", record.StudentEmail,
		"assignment_title", record.AssignmentTitle,
		"assignment_description", record.AssignmentDescription,
	); err != nil {
		return nil, err
	}
	if !validEmail(record.StudentEmail) {
		return nil, invalidf("student_email is not valid")
	}
	deadline, err := parseDeadline(input.Deadline)
	if err != nil {
		return nil, err
	}
	record.Deadline = deadline

	if err := s.insert(ctx, &record); err != nil {
		return nil, fmt.Errorf("submit student assignment: %w", err)
	}
	return &record, nil
}

// ChatFellowService 管理 Chat Fellow 项目请求
type ChatFellowService struct {
	RequestBoard[db.ChatFellowRequest]
}

// NewChatFellowService 构造 ChatFellowService
func NewChatFellowService(gdb *gorm.DB) *ChatFellowService {
	return &ChatFellowService{RequestBoard: newRequestBoard[db.ChatFellowRequest](gdb)}
}

// ChatFellowInput 是前台提交的项目请求
type ChatFellowInput struct {
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	ProjectType    string
	Description    string
	TargetAudience string
}

// Submit 保存项目请求，状态为 pending
func (s *ChatFellowService) Submit(ctx context.Context, input ChatFellowInput) (*db.ChatFellowRequest, error) {
	record := db.ChatFellowRequest{
		ClientName:     cleanText(input.ClientName),
		ClientEmail:    strings.ToLower(strings.TrimSpace(input.ClientEmail)),
		ClientPhone:    cleanText(input.ClientPhone),
		ProjectType:    cleanText(input.ProjectType),
		Description:    cleanText(input.Description),
		TargetAudience: cleanText(input.TargetAudience),
		Status:         db.RequestStatusPending,
	}
	if err := required(
		"client_name", record.ClientName,
		"client_email", record.ClientEmail,
		"project_type", record.ProjectType,
		"description", record.Description,
	); err != nil {
		return nil, err
	}
	if !validEmail(record.ClientEmail) {
		return nil, invalidf("client_email is not valid")
	}
	if err := s.insert(ctx, &record); err != nil {
		return nil, fmt.Errorf("submit chat fellow request: %w", err)
	}
	return &record, nil
}

func parseDeadline(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed, nil
		}
	}
	return nil, invalidf("deadline must be a date")
}
