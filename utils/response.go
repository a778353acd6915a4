package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends the {status, message, data} envelope
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends the {status, message, error} envelope.
// The raw error text is passed through to the client.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}
