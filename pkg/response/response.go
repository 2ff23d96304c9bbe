package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/pkg/errs"
)

// Envelope wraps all API responses in a consistent structure
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorInfo contains error details for failed responses
type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// OK sends a successful response with data
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
	})
}

// OKWithMeta sends a successful response with data and metadata
func OKWithMeta(c *gin.Context, data, meta interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Created sends a 201 response for successfully created resources
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    data,
	})
}

// Message sends a success response with just a message
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    gin.H{"message": message},
	})
}

func errorResponse(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, Envelope{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, nil)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "unauthorized"
	}
	errorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "resource not found"
	}
	errorResponse(c, http.StatusNotFound, "NOT_FOUND", message, nil)
}

// InternalError sends a 500 response
// Note: Never expose internal error details to clients
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// Error maps a typed application error to its HTTP shape. Window errors keep
// their detail payload so the client can render the admission window.
func Error(c *gin.Context, err error, details interface{}) {
	if appErr, ok := errs.As(err); ok {
		if appErr.Kind == errs.KindPersistence {
			errorResponse(c, appErr.Code, appErr.Kind, "internal server error", nil)
			return
		}
		errorResponse(c, appErr.Code, appErr.Kind, appErr.Error(), details)
		return
	}
	errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
}
