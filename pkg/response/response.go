package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Codes for failures raised by the HTTP layer itself. Service failures carry
// their own codes (DUPLICATE_EDGE, TEXT_TOO_LONG, ...).
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL"
)

// Response wraps every body the API sends.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo is the machine-readable code plus a message for people.
type ErrorInfo struct {
	Code    string `json:"code" example:"DUPLICATE_EDGE"`
	Message string `json:"message" example:"friend request already pending"`
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

// Success answers 200. A nil data leaves the field out.
func Success(c *gin.Context, data interface{}) {
	ok(c, http.StatusOK, data)
}

// Created answers 201, used when a friend request or account was stored.
func Created(c *gin.Context, data interface{}) {
	ok(c, http.StatusCreated, data)
}

// Error answers with the given status and code and stops the chain, so
// middleware can use it to reject a request.
func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{
		Error: &ErrorInfo{Code: code, Message: message},
	})
}

// BadRequest rejects a body or query that could not be parsed.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message)
}

// Unauthenticated rejects a request without a live session.
func Unauthenticated(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthenticated, message)
}

// TooManyRequests rejects a client over its rate limit.
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, CodeRateLimited, message)
}

// InternalError hides a store or session failure behind a generic 500.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternal, message)
}
