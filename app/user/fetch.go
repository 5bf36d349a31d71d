package user

import (
	"errors"
	"net/http"

	"truthlink/message-api/internal"
	"truthlink/message-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserFetch returns the authenticated account's own profile.
func UserFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	user, err := d.Accounts.FindByID(userID)
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

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userID":            user.ID,
		"username":          user.Username,
		"email":             user.Email,
		"verified":          user.Verified,
		"acceptingMessages": user.AcceptingMessages,
	})
}
