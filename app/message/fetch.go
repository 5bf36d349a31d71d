package message

import (
	"net/http"

	"truthlink/message-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageFetch returns the authenticated account's inbox, newest first.
func MessageFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	messages, err := d.Messages.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch messages", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
	})
}
