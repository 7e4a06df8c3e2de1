// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// API envelope. Success: {ok:true, data} plus optional meta/msg.
// Failure: {ok:false, errors:{code, message, details}}.
type APIResponse struct {
	OK     bool        `json:"ok"`
	Data   interface{} `json:"data,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
	Msg    string      `json:"msg,omitempty"`
	Errors *APIError   `json:"errors,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// AppError is the structured error services hand back to handlers. It
// declares its own HTTP status so handlers never inspect error text.
type AppError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

func NotFoundError(resource string) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: resource + " not found",
	}
}

func BadRequestError(message string, details interface{}) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
		Details: details,
	}
}

func ValidationFailure(errs []ValidationError) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: "invalid input",
		Details: errs,
	}
}

// StoreError logs the raw driver error and returns a sanitized AppError so
// store internals never reach the response body.
func StoreError(op string, err error) *AppError {
	logrus.WithError(err).WithField("op", op).Error("catalog store failure")
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    "STORE_FAILURE",
		Message: "catalog store unavailable",
	}
}

// TranslateDBError maps gorm read errors onto the error kinds the API exposes.
func TranslateDBError(op, resource string, err error) *AppError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundError(resource)
	}
	return StoreError(op, err)
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{OK: true, Data: data})
}

func OKWithMeta(c *gin.Context, data, meta interface{}) {
	c.JSON(http.StatusOK, APIResponse{OK: true, Data: data, Meta: meta})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{OK: true, Data: data})
}

func CreatedWithMsg(c *gin.Context, data interface{}, msg string) {
	c.JSON(http.StatusCreated, APIResponse{OK: true, Data: data, Msg: msg})
}

func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, APIResponse{OK: true, Msg: msg})
}

// RenderError writes the envelope for any error, using the AppError status
// when declared and 500 otherwise.
func RenderError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{
			Status:  http.StatusInternalServerError,
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		}
	}
	c.JSON(appErr.Status, APIResponse{
		OK: false,
		Errors: &APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

// RequestOrigin rebuilds the scheme://host prefix derived URLs are built
// from. Proxy-set forwarded headers win over the raw connection.
func RequestOrigin(c *gin.Context) string {
	scheme := "http"
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}

func GetRolesFromContext(c *gin.Context) []string {
	if roles, exists := c.Get("roles"); exists {
		if list, ok := roles.([]string); ok {
			return list
		}
	}
	return nil
}
