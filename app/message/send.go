package message

import (
	"errors"
	"net/http"

	"truthlink/message-api/internal"
	"truthlink/message-api/internal/service"
	"truthlink/message-api/validators"

	"github.com/gin-gonic/gin"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

type sendBody struct {
	Content string `json:"content"`
}

// MessageSend appends an anonymous message to the named recipient's inbox.
// No authentication, and nothing about the sender is stored.
func MessageSend(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	username := c.Param("username")

	var data sendBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.ContentValidator(data.Content, v.GetInt("message.max_length")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	msg, err := d.Messages.Append(username, data.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipientNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrNotAccepting):
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "This user is not accepting messages right now",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Message content can't be empty",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to append message", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"messageID": msg.ID,
		"message":   "Message sent successfully",
	})
}
