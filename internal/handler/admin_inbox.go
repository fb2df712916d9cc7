package handler

import (
	"net/http"

	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
)

type contactInfoRequest struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

func (r contactInfoRequest) toInput() service.ContactInfoInput {
	return service.ContactInfoInput{
		Key:      r.Key,
		Value:    r.Value,
		Label:    r.Label,
		Category: r.Category,
	}
}

type contactValueRequest struct {
	Value string `json:"value"`
}

// ListSubmissions 返回联系表单消息，新消息在前
func (a *API) ListSubmissions(c *gin.Context) {
	listJSON("submissions", "Failed to load contact submissions", a.submissions.All)(c)
}

// ToggleSubmissionRead 切换已读状态
func (a *API) ToggleSubmissionRead(c *gin.Context) {
	read, err := a.submissions.ToggleRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to update status")
		return
	}
	message := "Marked as unread"
	if read {
		message = "Marked as read"
	}
	respondMessage(c, message, gin.H{"read": read})
}

// SaveSubmissionNotes 保存消息备注
func (a *API) SaveSubmissionNotes(c *gin.Context) {
	notesJSON("submission", a.submissions.SaveNotes)(c)
}

// DeleteSubmission 删除消息
func (a *API) DeleteSubmission(c *gin.Context) {
	deleteJSON("Submission deleted", "Failed to delete submission", a.submissions.Delete)(c)
}

// ListContactInfo 返回按分类分组的联系方式
func (a *API) ListContactInfo(c *gin.Context) {
	dir, err := a.contacts.Directory(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load contact information")
		return
	}
	groups := dir.Grouped()
	if groups == nil {
		groups = []service.ContactGroup{}
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// CreateContactInfo 新建联系方式
func (a *API) CreateContactInfo(c *gin.Context) {
	var payload contactInfoRequest
	if !bindJSON(c, &payload, "Failed to update contact information") {
		return
	}
	item, err := a.contacts.Create(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to update contact information")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Contact information updated", "item": item})
}

// UpdateContactInfo 更新整条联系方式
func (a *API) UpdateContactInfo(c *gin.Context) {
	var payload contactInfoRequest
	if !bindJSON(c, &payload, "Failed to update contact information") {
		return
	}
	item, err := a.contacts.Update(c.Request.Context(), c.Param("id"), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to update contact information")
		return
	}
	respondMessage(c, "Contact information updated", gin.H{"item": item})
}

// UpdateContactValue 只修改 value，对应后台行内编辑
func (a *API) UpdateContactValue(c *gin.Context) {
	var payload contactValueRequest
	if !bindJSON(c, &payload, "Failed to update contact information") {
		return
	}
	item, err := a.contacts.UpdateValue(c.Request.Context(), c.Param("id"), payload.Value)
	if err != nil {
		respondServiceError(c, err, "Failed to update contact information")
		return
	}
	respondMessage(c, "Contact information updated", gin.H{"item": item})
}

// DeleteContactInfo 删除联系方式
func (a *API) DeleteContactInfo(c *gin.Context) {
	deleteJSON("Contact information deleted", "Failed to delete contact information", a.contacts.Delete)(c)
}
