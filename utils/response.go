package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONErrorDetails adds structured details to an error envelope.
func JSONErrorDetails(c *gin.Context, code int, message string, details gin.H) {
	c.JSON(code, gin.H{"success": false, "error": message, "details": details})
}
