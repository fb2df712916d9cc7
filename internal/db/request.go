package db

import "time"

// 学生作业与 Chat Fellow 请求共用同一套状态
const (
	RequestStatusPending    = "pending"
	RequestStatusAssigned   = "assigned"
	RequestStatusInProgress = "in_progress"
	RequestStatusCompleted  = "completed"
	RequestStatusRejected   = "rejected"
)

// RequestStatuses 返回全部合法状态，顺序即后台下拉框顺序
func RequestStatuses() []string {
	return []string{
		RequestStatusPending,
		RequestStatusAssigned,
		RequestStatusInProgress,
		RequestStatusCompleted,
		RequestStatusRejected,
	}
}

// StudentAssignment 学生提交的作业代办请求
type StudentAssignment struct {
	Base
	StudentName           string     `gorm:"size:200;not null" json:"student_name"`
	StudentEmail          string     `gorm:"size:255;not null" json:"student_email"`
	StudentPhone          string     `gorm:"size:50" json:"student_phone"`
	AssignmentTitle       string     `gorm:"size:255;not null" json:"assignment_title"`
	AssignmentDescription string     `gorm:"type:text;not null" json:"assignment_description"`
	LoginCredentials      string     `gorm:"type:text" json:"login_credentials"`
	Deadline              *time.Time `json:"deadline"`
	Status                string     `gorm:"size:20;index;default:pending" json:"status"`
	AssignedWorkerID      *string    `gorm:"size:36;index" json:"assigned_worker_id"`
	AssignedWorker        *Worker    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	AdminNotes            string     `gorm:"type:text" json:"admin_notes"`
}

// ChatFellowRequest 客户提交的 Chat Fellow 项目请求
type ChatFellowRequest struct {
	Base
	ClientName       string  `gorm:"size:200;not null" json:"client_name"`
	ClientEmail      string  `gorm:"size:255;not null" json:"client_email"`
	ClientPhone      string  `gorm:"size:50" json:"client_phone"`
	ProjectType      string  `gorm:"size:100;not null" json:"project_type"`
	Description      string  `gorm:"type:text;not null" json:"description"`
	TargetAudience   string  `gorm:"size:255" json:"target_audience"`
	Status           string  `gorm:"size:20;index;default:pending" json:"status"`
	AssignedWorkerID *string `gorm:"size:36;index" json:"assigned_worker_id"`
	AssignedWorker   *Worker `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	AdminNotes       string  `gorm:"type:text" json:"admin_notes"`
}
