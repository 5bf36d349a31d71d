package message

import (
	"errors"
	"net/http"

	"truthlink/message-api/internal"
	"truthlink/message-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type acceptBody struct {
	AcceptingMessages *bool `json:"acceptingMessages"`
}

// AcceptFetch returns the caller's admission flag.
func AcceptFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	accepting, err := d.Messages.Admission(userID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read admission flag", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"acceptingMessages": accepting,
	})
}

// AcceptUpdate overwrites the caller's admission flag.
func AcceptUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data acceptBody
	if err := c.ShouldBind(&data); err != nil || data.AcceptingMessages == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "acceptingMessages field is required",
			"requestID": requestID,
		})
		return
	}

	accepting, err := d.Messages.SetAdmission(userID, *data.AcceptingMessages)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update admission flag", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"acceptingMessages": accepting,
	})
}
