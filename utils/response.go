package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope: status is true only when
// the operation fully applied.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": message,
		"data":    data,
	})
}

func Error(c *gin.Context, status int, message string, err error) {
	resp := gin.H{
		"status":  false,
		"message": message,
		"data":    nil,
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(status, resp)
}
