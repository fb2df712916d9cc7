package service

import (
	"context"
	"fmt"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/store"
	"gorm.io/gorm"
)

// DashboardStats 汇总后台首页的统计数字
type DashboardStats struct {
	Users               int64 `json:"users"`
	Projects            int64 `json:"projects"`
	UnreadMessages      int64 `json:"unread_messages"`
	ActiveWorkers       int64 `json:"active_workers"`
	PendingApplications int64 `json:"pending_applications"`
	PendingRequests     int64 `json:"pending_requests"`
}

// StatsService 计算后台统计
type StatsService struct {
	users       Resource[db.User]
	projects    Resource[db.Project]
	submissions Resource[db.ContactSubmission]
	workers     Resource[db.Worker]
	apps        Resource[db.WorkApplication]
	assignments Resource[db.StudentAssignment]
	chatFellows Resource[db.ChatFellowRequest]
}

// NewStatsService 构造 StatsService
func NewStatsService(gdb *gorm.DB) *StatsService {
	return &StatsService{
		users:       NewResource[db.User](gdb),
		projects:    NewResource[db.Project](gdb),
		submissions: NewResource[db.ContactSubmission](gdb),
		workers:     NewResource[db.Worker](gdb),
		apps:        NewResource[db.WorkApplication](gdb),
		assignments: NewResource[db.StudentAssignment](gdb),
		chatFellows: NewResource[db.ChatFellowRequest](gdb),
	}
}

// Dashboard 逐项统计，任一查询失败即返回错误
func (s *StatsService) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	pending := store.Eq("status", db.RequestStatusPending)

	counters := []struct {
		name  string
		dst   *int64
		count func() (int64, error)
	}{
		{"users", &stats.Users, func() (int64, error) { return s.users.Count(ctx) }},
		{"projects", &stats.Projects, func() (int64, error) { return s.projects.Count(ctx) }},
		{"unread messages", &stats.UnreadMessages, func() (int64, error) { return s.submissions.Count(ctx, store.Eq("read", false)) }},
		{"active workers", &stats.ActiveWorkers, func() (int64, error) { return s.workers.Count(ctx, store.Eq("status", db.WorkerStatusActive)) }},
		{"pending applications", &stats.PendingApplications, func() (int64, error) {
			return s.apps.Count(ctx, store.Eq("status", db.ApplicationStatusPending))
		}},
		{"pending assignments", &stats.PendingRequests, func() (int64, error) { return s.assignments.Count(ctx, pending) }},
	}
	for _, counter := range counters {
		total, err := counter.count()
		if err != nil {
			return DashboardStats{}, fmt.Errorf("count %s: %w", counter.name, err)
		}
		*counter.dst = total
	}

	chatFellows, err := s.chatFellows.Count(ctx, pending)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("count pending chat fellow requests: %w", err)
	}
	stats.PendingRequests += chatFellows
	return stats, nil
}
