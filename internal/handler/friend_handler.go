package handler

import (
	"strconv"
	"time"

	"buddylist/backend/internal/models"
	"buddylist/backend/internal/service"
	"buddylist/backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// region --- DTOs ---

// FriendRequestInput names the user to send a friend request to.
type FriendRequestInput struct {
	FriendID uint `json:"friendId" binding:"required" example:"2"`
}

// AcceptInput names the pending request to accept.
type AcceptInput struct {
	RequestID string `json:"requestId" binding:"required" example:"7d3f0c6e-2b8a-4a53-9a4e-8f1d2c3b4a5e"`
}

// RemoveInput selects the relationship to remove. RequestID takes
// precedence when both are set.
type RemoveInput struct {
	FriendID  uint   `json:"friendId,omitempty" example:"2"`
	RequestID string `json:"requestId,omitempty"`
}

// RelationshipResponse describes the caller's relationship with another
// user. Status is "none" when no edge exists.
type RelationshipResponse struct {
	Status     string     `json:"status" example:"pending"`
	Direction  string     `json:"direction,omitempty" example:"sent"`
	RequestID  string     `json:"requestId,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

// endregion

// region --- Friend Handlers ---

// ListFriends godoc
// @Summary      Get friends with presence
// @Description  Lists accepted friends with their current status, ordered by username.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.FriendPresence}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends [get]
func (h *Handler) ListFriends(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	friends, err := h.friendships.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"friends": friends})
}

// SearchUsers godoc
// @Summary      Search for users
// @Description  Finds up to 20 users whose username or email contains the query.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Search query (at least 2 characters)"
// @Success      200  {object}  response.Response{data=[]service.PublicUser}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friends/search [get]
func (h *Handler) SearchUsers(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	users, err := h.users.Search(c.Request.Context(), c.Query("q"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"users": users})
}

// SendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to another user.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendRequestInput true "Target user"
// @Success      201  {object}  response.Response "{"requestId": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Blocked"
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Relationship already exists"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/request [post]
func (h *Handler) SendRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input FriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Friend ID is required")
		return
	}

	edge, err := h.friendships.RequestFriendship(c.Request.Context(), userID, input.FriendID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, gin.H{"requestId": edge.ID})
}

// AcceptRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending friend request addressed to the caller.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AcceptInput true "Request to accept"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the target of the request"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      409  {object}  ErrorResponse "Already accepted"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/accept [post]
func (h *Handler) AcceptRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input AcceptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Request ID is required")
		return
	}

	if _, err := h.friendships.AcceptFriendship(c.Request.Context(), input.RequestID, userID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListRequests godoc
// @Summary      Get pending friend requests
// @Description  Lists pending requests the caller has received and sent, newest first.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.PendingRequests}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/requests [get]
func (h *Handler) ListRequests(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	pending, err := h.friendships.ListPendingRequests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, pending)
}

// GetRelationship godoc
// @Summary      Get relationship with a user
// @Description  Reports whether the caller and the given user are friends, have a pending request, or have no relationship.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true  "Other user ID"
// @Success      200     {object}  response.Response{data=RelationshipResponse}
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Router       /friends/relationship/{userId} [get]
func (h *Handler) GetRelationship(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || otherID == 0 {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	edge, err := h.friendships.GetFriendship(c.Request.Context(), service.Criteria{CounterpartID: uint(otherID)}, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Success(c, RelationshipResponse{Status: "none"})
			return
		}
		respondError(c, err)
		return
	}
	response.Success(c, relationshipResponse(edge, userID))
}

// RemoveFriend godoc
// @Summary      Remove friend or request
// @Description  Cancels a sent request, rejects a received one, or unfriends. Identify the relationship by requestId or friendId; requestId wins when both are given.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RemoveInput true "Relationship to remove"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Relationship not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/remove [delete]
func (h *Handler) RemoveFriend(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input RemoveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Friend ID or Request ID is required")
		return
	}

	criteria := service.Criteria{EdgeID: input.RequestID, CounterpartID: input.FriendID}
	if err := h.friendships.RemoveFriendship(c.Request.Context(), criteria, userID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// endregion

// region --- Helpers ---

func relationshipResponse(edge *models.Friendship, viewerID uint) RelationshipResponse {
	created := edge.CreatedAt
	resp := RelationshipResponse{
		Status:     string(edge.Status),
		Direction:  "received",
		RequestID:  edge.ID,
		CreatedAt:  &created,
		AcceptedAt: edge.AcceptedAt,
	}
	if edge.UserID == viewerID {
		resp.Direction = "sent"
	}
	return resp
}

// endregion
