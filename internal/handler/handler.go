package handler

import (
	"net/http"

	"buddylist/backend/internal/auth"
	"buddylist/backend/internal/service"
	"buddylist/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler serves the HTTP API.
type Handler struct {
	users         service.UserService
	friendships   service.FriendshipService
	presence      service.PresenceService
	authenticator *auth.Authenticator
	cookieSecure  bool
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	users service.UserService,
	friendships service.FriendshipService,
	presence service.PresenceService,
	authenticator *auth.Authenticator,
	cookieSecure bool,
) *Handler {
	return &Handler{
		users:         users,
		friendships:   friendships,
		presence:      presence,
		authenticator: authenticator,
		cookieSecure:  cookieSecure,
	}
}

// RegisterRoutes registers all API routes onto the Gin engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	requireAuth := auth.RequireAuth(h.authenticator)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", h.Register)
			authRoutes.POST("/login", h.Login)
			authRoutes.POST("/logout", h.Logout)
			authRoutes.GET("/me", requireAuth, h.Me)
		}

		friends := api.Group("/friends")
		friends.Use(requireAuth)
		{
			friends.GET("", h.ListFriends)
			friends.GET("/search", h.SearchUsers) // Must be before /:userId routes
			friends.POST("/request", h.SendRequest)
			friends.POST("/accept", h.AcceptRequest)
			friends.GET("/requests", h.ListRequests)
			friends.GET("/relationship/:userId", h.GetRelationship)
			friends.DELETE("/remove", h.RemoveFriend)
		}

		status := api.Group("/status")
		status.Use(requireAuth)
		{
			status.GET("", h.GetStatus)
			status.PUT("/update", h.UpdateStatus)
			status.GET("/history", h.GetStatusHistory)
		}
	}
}

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Success bool               `json:"success" example:"false"`
	Error   response.ErrorInfo `json:"error"`
}

// statusForKind maps a service error kind to an HTTP status code.
func statusForKind(k service.Kind) int {
	switch k {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	case service.KindAuthorization:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err in the response envelope. Service errors keep
// their code and message; anything else is hidden behind a 500. Services
// have already logged store failures, so the error is only attached to the
// request log line here.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	if svcErr, ok := service.AsError(err); ok {
		response.Error(c, statusForKind(svcErr.Kind), svcErr.Code, svcErr.Message)
		return
	}
	response.InternalError(c, "Internal server error")
}

// currentUser returns the authenticated caller. RequireAuth guarantees it
// is set on protected routes.
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := auth.CurrentUserID(c)
	if !ok {
		response.Unauthenticated(c, "not authenticated")
	}
	return id, ok
}
