package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/store"
	"gorm.io/gorm"
)

// Notifier 在收到新的联系表单后通知管理员
type Notifier interface {
	NotifySubmission(ctx context.Context, submission db.ContactSubmission) error
}

// NopNotifier 不发送任何通知
type NopNotifier struct{}

// NotifySubmission implements Notifier.
func (NopNotifier) NotifySubmission(context.Context, db.ContactSubmission) error { return nil }

// SubmissionService 管理联系表单消息
type SubmissionService struct {
	Resource[db.ContactSubmission]
	notifier Notifier
	onNotify func(error)
}

// NewSubmissionService 构造 SubmissionService，notifier 为空时不发送通知
func NewSubmissionService(gdb *gorm.DB, notifier Notifier) *SubmissionService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &SubmissionService{
		Resource: NewResource[db.ContactSubmission](gdb, store.Desc("created_at")),
		notifier: notifier,
	}
}

// OnNotifyError 注册通知失败回调，通知失败不影响提交结果
func (s *SubmissionService) OnNotifyError(fn func(error)) {
	s.onNotify = fn
}

// SubmissionInput 是访客填写的联系表单
type SubmissionInput struct {
	Name    string
	Email   string
	Subject string
	Message string
	Service string
}

// Submit 保存访客消息并通知管理员
func (s *SubmissionService) Submit(ctx context.Context, input SubmissionInput) (*db.ContactSubmission, error) {
	submission := db.ContactSubmission{
		Name:    cleanText(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Subject: cleanText(input.Subject),
		Message: cleanText(input.Message),
		Service: cleanText(input.Service),
	}
	if submission.Subject == "" && submission.Service != "" {
		submission.Subject = "Inquiry about " + submission.Service
	}
	if err := required(
		"name", submission.Name,
		"email", submission.Email,
		"subject", submission.Subject,
		"message", submission.Message,
	); err != nil {
		return nil, err
	}
	if !validEmail(submission.Email) {
		return nil, invalidf("email is not valid")
	}
	if err := s.insert(ctx, &submission); err != nil {
		return nil, fmt.Errorf("submit contact message: %w", err)
	}

	if err := s.notifier.NotifySubmission(ctx, submission); err != nil && s.onNotify != nil {
		s.onNotify(err)
	}
	return &submission, nil
}

// ToggleRead 切换已读状态，返回新值
func (s *SubmissionService) ToggleRead(ctx context.Context, id string) (bool, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := !current.Read
	if err := s.setField(ctx, id, "read", next); err != nil {
		return false, err
	}
	return next, nil
}

// SaveNotes 保存后台备注
func (s *SubmissionService) SaveNotes(ctx context.Context, id, notes string) (*db.ContactSubmission, error) {
	return s.update(ctx, id, map[string]interface{}{"admin_notes": strings.TrimSpace(notes)})
}

// UnreadCount 返回未读消息数量
func (s *SubmissionService) UnreadCount(ctx context.Context) (int64, error) {
	return s.Count(ctx, store.Eq("read", false))
}
