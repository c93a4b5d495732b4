package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Severity levels mirror the notification styles the frontend renders.
const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Response is the unified API response format. Severity tells the frontend
// which transient notification style to use for the message.
type Response struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Severity string      `json:"severity"`
	Data     interface{} `json:"data,omitempty"`
}

// AppError represents a structured application error with HTTP status and error code.
type AppError struct {
	HTTPStatus int    // HTTP status code (e.g. 400, 404, 503)
	Code       int    // Application-level error code
	Message    string // Human-readable error message
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequest(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Code: 400, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Code: 404, Message: msg}
}

func NewConflict(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusConflict, Code: 409, Message: msg}
}

func NewTooManyRequests(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusTooManyRequests, Code: 429, Message: msg}
}

func NewUnprocessable(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnprocessableEntity, Code: 422, Message: msg}
}

func NewUnavailable(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusServiceUnavailable, Code: 503, Message: msg}
}

func NewServerError(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Code: 500, Message: msg}
}

// --- Gin response helpers ---

// Success sends a 200 OK response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:     0,
		Message:  "ok",
		Severity: SeveritySuccess,
		Data:     data,
	})
}

// SuccessMsg sends a 200 OK response with a user-facing message and data.
func SuccessMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:     0,
		Message:  msg,
		Severity: SeveritySuccess,
		Data:     data,
	})
}

// Created sends a 201 Created response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:     0,
		Message:  "created",
		Severity: SeveritySuccess,
		Data:     data,
	})
}

// Info sends a 200 OK response carrying an informational message, used for
// outcomes that are neither an error nor a change (e.g. a no-op rename).
func Info(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:     0,
		Message:  msg,
		Severity: SeverityInfo,
		Data:     data,
	})
}

// Error sends an error response. If err is an *AppError, its code and status
// are used; otherwise a generic 500 internal server error is returned.
// Errors render as warning notifications, matching the non-blocking style.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Response{
			Code:     appErr.Code,
			Message:  appErr.Message,
			Severity: SeverityWarning,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{
		Code:     500,
		Message:  err.Error(),
		Severity: SeverityWarning,
	})
}

// Convenience error response functions

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: 400, Message: msg, Severity: SeverityWarning})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Code: 404, Message: msg, Severity: SeverityWarning})
}

func ServerError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Response{Code: 500, Message: msg, Severity: SeverityWarning})
}
