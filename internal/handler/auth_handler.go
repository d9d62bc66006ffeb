package handler

import (
	"net/http"
	"time"

	"buddylist/backend/internal/auth"
	"buddylist/backend/internal/models"
	"buddylist/backend/internal/service"
	pkglog "buddylist/backend/pkg/log"
	"buddylist/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// AuthResponse is returned after a successful registration or login. The
// token is also set as the session cookie.
type AuthResponse struct {
	User      service.PublicUser `json:"user"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// endregion

// region --- Auth Handlers ---

// Register godoc
// @Summary      Register a new user
// @Description  Creates a new user, publishes an initial offline status and starts a session.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  response.Response{data=AuthResponse}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Email or username taken"
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Email, username, and password are required")
		return
	}

	user, err := h.users.Register(c.Request.Context(), input.Email, input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, user, http.StatusCreated)
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates a user with email and password and starts a new session.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  response.Response{data=AuthResponse}
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	user, err := h.users.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, user, http.StatusOK)
}

// Logout godoc
// @Summary      Log out
// @Description  Ends the current session and clears the session cookie.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	credential := auth.CredentialFromRequest(c.Request)
	if credential != "" {
		if err := h.authenticator.Revoke(ctx, credential); err != nil {
			pkglog.Ctx(ctx).Debug().Err(err).Msg("logout with unusable credential")
		}
	}

	h.clearCookie(c)
	response.Success(c, nil)
}

// Me godoc
// @Summary      Get current user's info
// @Description  Retrieves the profile and current status of the authenticated user.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.Profile}
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"user": profile})
}

// endregion

// region --- Helpers ---

func (h *Handler) startSession(c *gin.Context, user *models.User, status int) {
	token, expiresAt, err := h.authenticator.IssueSession(c.Request.Context(), user.ID)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Uint(pkglog.FieldUserID, user.ID).Msg("failed to start session")
		response.InternalError(c, "Internal server error")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(time.Until(expiresAt).Seconds()), "/", "", h.cookieSecure, true)

	c.JSON(status, response.Response{
		Success: true,
		Data: AuthResponse{
			User:      service.PublicUser{ID: user.ID, Username: user.Username, AvatarURL: user.AvatarURL},
			Token:     token,
			ExpiresAt: expiresAt,
		},
	})
}

func (h *Handler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.cookieSecure, true)
}

// endregion
