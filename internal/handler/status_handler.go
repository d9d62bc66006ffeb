package handler

import (
	"strconv"

	"buddylist/backend/internal/models"
	"buddylist/backend/internal/service"
	"buddylist/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// UpdateStatusInput is the status a user publishes. A missing status_type
// is rejected by the presence service as an invalid type.
type UpdateStatusInput struct {
	StatusType models.StatusType `json:"status_type" example:"online"`
	StatusText string            `json:"status_text" example:"back in 5"`
}

// endregion

// region --- Status Handlers ---

// UpdateStatus godoc
// @Summary      Update status
// @Description  Publishes a new status for the caller. Text is limited to 128 characters.
// @Tags         status
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateStatusInput true "New status"
// @Success      200  {object}  response.Response{data=service.StatusEvent}
// @Failure      400  {object}  ErrorResponse "Invalid status type or text too long"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /status/update [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid status body")
		return
	}

	event, err := h.presence.UpdateStatus(c.Request.Context(), userID, input.StatusType, input.StatusText)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, event)
}

// GetStatus godoc
// @Summary      Get own status
// @Description  Returns the caller's current status, or offline if none was ever published.
// @Tags         status
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.Snapshot}
// @Failure      401  {object}  ErrorResponse
// @Router       /status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	snap, err := h.presence.CurrentStatus(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, snap)
}

// GetStatusHistory godoc
// @Summary      Get own status history
// @Description  Returns the caller's most recent status updates, newest first.
// @Tags         status
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Number of entries (max 100)" default(20)
// @Success      200    {object}  response.Response{data=[]service.StatusEvent}
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Router       /status/history [get]
func (h *Handler) GetStatusHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultHistoryLimit)))
	if err != nil {
		response.BadRequest(c, "Invalid limit")
		return
	}

	events, err := h.presence.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"history": events})
}

// endregion
