package tools

import (
	"fmt"
	"time"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the uniform envelope every tool returns. Callers never branch on
// which tool ran; status and message carry the outcome and Data carries any
// tool-specific payload.
type Result struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// Success builds a success Result with the current timestamp.
func Success(message string, data any) *Result {
	return &Result{
		Status:    StatusSuccess,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		Data:      data,
	}
}

// Errorf builds an error Result with a formatted message.
func Errorf(format string, args ...any) *Result {
	return &Result{
		Status:    StatusError,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
