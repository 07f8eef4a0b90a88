package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/authz"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/logger"
	"go.uber.org/zap"
)

// SuccessResponse is the envelope written for every successful request
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Message: message, Data: data})
}

func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Count: &count, Data: data})
}

// respondForbidden writes a 403 if err is a policy denial.
func respondForbidden(c *gin.Context, err error) bool {
	message := authz.Message(err)
	if message == "" {
		return false
	}
	apierrors.Forbidden(c, message)
	return true
}

// respondUnexpected logs the cause and hides it from the client.
func respondUnexpected(c *gin.Context, err error) {
	logger.Log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	apierrors.InternalError(c, "Server error")
}
