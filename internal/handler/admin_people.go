package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
)

type workerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Skills   string `json:"skills"`
	UserID   string `json:"user_id"`
}

func (r workerRequest) toInput() service.WorkerInput {
	return service.WorkerInput{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		Skills:   r.Skills,
		UserID:   r.UserID,
	}
}

// requestBoard 是学生作业与 Chat Fellow 请求在后台共用的操作
type requestBoard[T any] interface {
	List(ctx context.Context, status string) ([]T, error)
	AssignWorker(ctx context.Context, id, workerID string) (*T, error)
	UpdateStatus(ctx context.Context, id, status string) (*T, error)
	SaveNotes(ctx context.Context, id, notes string) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ListWorkers 返回全部协作者
func (a *API) ListWorkers(c *gin.Context) {
	listJSON("workers", "Failed to load workers", a.workers.All)(c)
}

// ListActiveWorkers 返回可分配的协作者
func (a *API) ListActiveWorkers(c *gin.Context) {
	listJSON("workers", "Failed to load workers", a.workers.ListActive)(c)
}

// GetWorkerForm 返回协作者的编辑表单
func (a *API) GetWorkerForm(c *gin.Context) {
	form, err := a.workers.Form(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to load workers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": workerRequest{
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.Phone,
		Skills:   form.Skills,
		UserID:   form.UserID,
	}})
}

// CreateWorker 新建协作者
func (a *API) CreateWorker(c *gin.Context) {
	var payload workerRequest
	if !bindJSON(c, &payload, "Failed to create worker") {
		return
	}
	worker, err := a.workers.Create(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to create worker")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Worker account created", "worker": worker})
}

// UpdateWorker 更新协作者资料
func (a *API) UpdateWorker(c *gin.Context) {
	var payload workerRequest
	if !bindJSON(c, &payload, "Failed to update worker") {
		return
	}
	worker, err := a.workers.Update(c.Request.Context(), c.Param("id"), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to update worker")
		return
	}
	respondMessage(c, "Worker updated", gin.H{"worker": worker})
}

// ToggleWorker 切换协作者 active / inactive
func (a *API) ToggleWorker(c *gin.Context) {
	status, err := a.workers.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to update status")
		return
	}
	message := "Worker deactivated"
	if status == db.WorkerStatusActive {
		message = "Worker activated"
	}
	respondMessage(c, message, gin.H{"status": status})
}

// DeleteWorker 删除协作者
func (a *API) DeleteWorker(c *gin.Context) {
	deleteJSON("Worker deleted", "Failed to delete worker", a.workers.Delete)(c)
}

// ListApplications 返回加入申请，可按 ?status= 过滤
func (a *API) ListApplications(c *gin.Context) {
	applications, err := a.applications.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "Failed to load applications")
		return
	}
	if applications == nil {
		applications = []db.WorkApplication{}
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// UpdateApplicationStatus 审核申请
func (a *API) UpdateApplicationStatus(c *gin.Context) {
	var payload statusRequest
	if !bindJSON(c, &payload, "Failed to update status") {
		return
	}
	application, err := a.applications.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update status")
		return
	}
	respondMessage(c, "Application "+application.Status, gin.H{"application": application})
}

// SaveApplicationNotes 保存申请备注
func (a *API) SaveApplicationNotes(c *gin.Context) {
	notesJSON("application", a.applications.SaveNotes)(c)
}

// DeleteApplication 删除申请
func (a *API) DeleteApplication(c *gin.Context) {
	deleteJSON("Application deleted", "Failed to delete application", a.applications.Delete)(c)
}

// RequestRoutes 生成一组请求看板接口
type RequestRoutes struct {
	List   gin.HandlerFunc
	Assign gin.HandlerFunc
	Status gin.HandlerFunc
	Notes  gin.HandlerFunc
	Delete gin.HandlerFunc
}

// StudentAssignmentRoutes 返回学生作业请求的后台接口
func (a *API) StudentAssignmentRoutes() RequestRoutes {
	return boardRoutes[db.StudentAssignment]("assignments", "assignment", a.assignments)
}

// ChatFellowRoutes 返回 Chat Fellow 请求的后台接口
func (a *API) ChatFellowRoutes() RequestRoutes {
	return boardRoutes[db.ChatFellowRequest]("requests", "request", a.chatFellows)
}

func boardRoutes[T any](listKey, itemKey string, board requestBoard[T]) RequestRoutes {
	loadFailure := "Failed to load requests"
	if listKey == "assignments" {
		loadFailure = "Failed to load assignments"
	}

	return RequestRoutes{
		List: func(c *gin.Context) {
			items, err := board.List(c.Request.Context(), strings.TrimSpace(c.Query("status")))
			if err != nil {
				respondServiceError(c, err, loadFailure)
				return
			}
			if items == nil {
				items = []T{}
			}
			c.JSON(http.StatusOK, gin.H{listKey: items})
		},
		Assign: func(c *gin.Context) {
			var payload assignRequest
			if !bindJSON(c, &payload, "Failed to assign worker") {
				return
			}
			record, err := board.AssignWorker(c.Request.Context(), c.Param("id"), payload.WorkerID)
			if err != nil {
				respondServiceError(c, err, "Failed to assign worker")
				return
			}
			respondMessage(c, "Worker assigned successfully", gin.H{itemKey: record})
		},
		Status: func(c *gin.Context) {
			var payload statusRequest
			if !bindJSON(c, &payload, "Failed to update status") {
				return
			}
			record, err := board.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status)
			if err != nil {
				respondServiceError(c, err, "Failed to update status")
				return
			}
			respondMessage(c, "Status updated", gin.H{itemKey: record})
		},
		Notes:  notesJSON(itemKey, board.SaveNotes),
		Delete: deleteJSON("Request deleted", "Failed to delete request", board.Delete),
	}
}
