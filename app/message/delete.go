package message

import (
	"errors"
	"net/http"

	"truthlink/message-api/internal"
	"truthlink/message-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageDelete removes one message from the caller's own inbox. The service
// scopes the delete by owner, so foreign IDs come back as not found.
func MessageDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	messageID := c.Param("id")

	err := d.Messages.Delete(userID, messageID)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Message not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete message", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Message deleted successfully",
		"requestID": requestID,
	})
}
