package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorBody is the error envelope for all public endpoints.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Pagination carries list metadata alongside paged data.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPage   int   `json:"total_page"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"has_next_page"`
}

// Paginated sends a 200 response with data and pagination metadata.
func Paginated(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, gin.H{"data": data, "pagination": p})
}

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: "Bad request", Message: message})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "Unauthorized", Message: "A valid bearer token is required."})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, err, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, errorBody{Error: err, Message: message})
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context, message string) {
	c.Header("Retry-After", "3600")
	c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody{Error: "Rate limited", Message: message})
}

// InternalError sends a 500 error response with a generic message.
// Internal detail belongs in the log, not the body.
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Error: "Server error", Message: "An internal error occurred."})
}
