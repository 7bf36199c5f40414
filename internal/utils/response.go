package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger provides structured logging functionality
type Logger struct {
	prefix string
}

// NewLogger creates a new logger with a prefix
func NewLogger(prefix string) *Logger {
	return &Logger{prefix: prefix}
}

// Info logs an info message
func (l *Logger) Info(message string, args ...interface{}) {
	log.Printf("[INFO] [%s] %s", l.prefix, fmt.Sprintf(message, args...))
}

// Error logs an error message
func (l *Logger) Error(message string, args ...interface{}) {
	log.Printf("[ERROR] [%s] %s", l.prefix, fmt.Sprintf(message, args...))
}

// Debug logs a debug message
func (l *Logger) Debug(message string, args ...interface{}) {
	log.Printf("[DEBUG] [%s] %s", l.prefix, fmt.Sprintf(message, args...))
}

// Warn logs a warning message
func (l *Logger) Warn(message string, args ...interface{}) {
	log.Printf("[WARN] [%s] %s", l.prefix, fmt.Sprintf(message, args...))
}

// APIError represents a structured API error
type APIError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e APIError) Error() string {
	return fmt.Sprintf("API Error %d: %s", e.Code, e.Message)
}

// NewAPIError creates a new API error
func NewAPIError(code int, message, details string) APIError {
	return APIError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorResponse sends a structured error response
func ErrorResponse(c *gin.Context, err APIError) {
	if requestID := c.GetString("request_id"); requestID != "" {
		err.RequestID = requestID
	}

	c.Header("Content-Type", "application/json")
	c.JSON(err.Code, err)
}
