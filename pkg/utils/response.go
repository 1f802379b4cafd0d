package utils

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Response represents a standard API response
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
	Meta      interface{} `json:"meta,omitempty"`
}

// ErrorResponse represents an error response with request context
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	Code      int         `json:"code"`
	Timestamp string      `json:"timestamp"`
	Request   RequestInfo `json:"request"`
	Details   interface{} `json:"details,omitempty"`
}

// RequestInfo provides context about the failed request
type RequestInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Query  string `json:"query,omitempty"`
}

// SendSuccess sends a successful response
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// SendSuccessWithMeta sends a successful response with metadata
func SendSuccessWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Meta:      meta,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// SendError sends an error response with request context
func SendError(c *gin.Context, statusCode int, message string) {
	errorResponse := ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      statusCode,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Request: RequestInfo{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Query:  c.Request.URL.RawQuery,
		},
	}

	if statusCode == http.StatusNotFound {
		suggestions := generateNotFoundSuggestions(c.Request.URL.Path)
		if len(suggestions) > 0 {
			errorResponse.Details = map[string]interface{}{
				"suggestions": suggestions,
				"message":     "The requested endpoint does not exist. Check the suggestions below for similar endpoints.",
			}
		}
	}

	c.JSON(statusCode, errorResponse)
}

// generateNotFoundSuggestions provides endpoint suggestions for 404 errors
func generateNotFoundSuggestions(path string) []string {
	commonEndpoints := []string{
		"/health",
		"/api/data",
		"/api/v1/orders",
		"/api/v1/summary",
		"/api/v1/filters/options",
		"/api/v1/charts/categories",
		"/api/v1/charts/sales-trend",
		"/api/v1/export/csv",
		"/ws",
	}

	pathLower := strings.ToLower(path)

	var suggestions []string
	for _, endpoint := range commonEndpoints {
		switch {
		case strings.Contains(pathLower, "order") && strings.Contains(endpoint, "orders"),
			strings.Contains(pathLower, "chart") && strings.Contains(endpoint, "charts"),
			strings.Contains(pathLower, "filter") && strings.Contains(endpoint, "filters"),
			strings.Contains(pathLower, "export") && strings.Contains(endpoint, "export"),
			strings.Contains(pathLower, "summary") && strings.Contains(endpoint, "summary"),
			strings.Contains(pathLower, "data") && strings.Contains(endpoint, "data"),
			strings.Contains(pathLower, "health") && strings.Contains(endpoint, "health"):
			suggestions = append(suggestions, endpoint)
		}
	}

	seen := make(map[string]bool)
	var unique []string
	for _, suggestion := range suggestions {
		if !seen[suggestion] && len(unique) < 5 {
			seen[suggestion] = true
			unique = append(unique, suggestion)
		}
	}

	return unique
}
