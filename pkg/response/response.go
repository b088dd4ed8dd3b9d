package response

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Response is the envelope every endpoint writes. Code is set on failures
// only and is stable across message wording changes.
type Response struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Error codes, one per status the API returns.
const (
	CodeBadRequest   = "bad_request"
	CodeValidation   = "validation_failed"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeRateLimited  = "rate_limited"
	CodeInternal     = "internal_error"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:          CodeBadRequest,
	http.StatusUnauthorized:        CodeUnauthorized,
	http.StatusForbidden:           CodeForbidden,
	http.StatusNotFound:            CodeNotFound,
	http.StatusConflict:            CodeConflict,
	http.StatusTooManyRequests:     CodeRateLimited,
	http.StatusInternalServerError: CodeInternal,
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.Warnf("Failed to encode response body: %+v", err)
	}
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error writes a failure envelope whose code follows the status.
func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	code, ok := statusCodes[statusCode]
	if !ok {
		code = CodeInternal
	}
	JSON(w, statusCode, Response{
		Success: false,
		Code:    code,
		Message: message,
		Error:   err,
	})
}

// ValidationError carries the field to message map from the validator.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, Response{
		Success: false,
		Code:    CodeValidation,
		Message: "Validation failed",
		Error:   fields,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, orDefault(message, "Unauthorized"), nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, orDefault(message, "Forbidden"), nil)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, orDefault(message, "Resource not found"), nil)
}

func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, orDefault(message, "Resource already exists"), nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, orDefault(message, "Internal server error"), nil)
}

func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Too many requests", nil)
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
