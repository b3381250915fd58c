package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mushaf/internal/remote"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`      // machine-readable error code
	Retryable bool   `json:"retryable,omitempty"` // the same request may succeed later
	Details   any    `json:"details,omitempty"`   // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code and code.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// respondUpstreamError reports a failed call to a remote API. Fetch errors
// become a retryable 502; anything else is an internal error.
func respondUpstreamError(c *gin.Context, err error, context string) {
	var fe *remote.FetchError
	if errors.As(err, &fe) {
		log.Printf("Upstream error (%s): %v", context, err)
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:     fe.Error(),
			Code:      "fetch_failed",
			Retryable: true,
		})
		return
	}
	respondInternalError(c, err, context)
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIntParam extracts a positive integer from URL parameters.
// Responds with a 400 error and returns 0, false when it is missing or invalid.
func parseIntParam(c *gin.Context, paramName string) (int, bool) {
	n, err := strconv.Atoi(c.Param(paramName))
	if err != nil || n < 1 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return n, true
}

// parseOptionalIntQuery extracts an optional positive integer query parameter.
// present is false when the parameter is absent; ok is false after a 400 has
// been sent.
func parseOptionalIntQuery(c *gin.Context, paramName string) (n int, present, ok bool) {
	raw := c.Query(paramName)
	if raw == "" {
		return 0, false, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, true, false
	}
	return n, true, true
}
