package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope for every JSON reply the portal sends.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorData  `json:"error,omitempty"`
}

// ErrorData carries a machine-readable code, a human-readable message and,
// for validation failures, the offending fields.
type ErrorData struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError is a single field:message pair from a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RedirectData tells the client where to navigate and why.
type RedirectData struct {
	Redirect string `json:"redirect"`
	Message  string `json:"message,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorData{Code: code, Message: message},
	})
}

// ValidationError reports a structured field:message list, mirroring the
// upstream backend's validation payloads.
func ValidationError(c *gin.Context, message string, fields []FieldError) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   &ErrorData{Code: "VALIDATION_ERROR", Message: message, Fields: fields},
	})
}

// Redirect replies with a navigation instruction, typically after a gate
// decision (login required, wrong area, forced logout).
func Redirect(c *gin.Context, status int, code, to, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorData{Code: code, Message: message},
		Data:    RedirectData{Redirect: to, Message: message},
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func InternalError(c *gin.Context, err error) {
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}

// UpstreamError reports a failure talking to the complaint backend.
func UpstreamError(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", message)
}
