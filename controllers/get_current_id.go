package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) (uint, error) {
	raw, ok := c.Get("user_id")
	if !ok {
		return 0, errors.New("user_id not found in context")
	}
	switch v := raw.(type) {
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	case int64:
		return uint(v), nil
	case float64: // JWT claims decode numbers as float64
		return uint(v), nil
	}
	return 0, errors.New("user_id has an unexpected type")
}
