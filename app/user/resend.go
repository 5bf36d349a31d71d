package user

import (
	"errors"
	"net/http"

	"truthlink/message-api/internal"
	"truthlink/message-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resendBody struct {
	Identifier string `json:"identifier"`
}

func UserResendCode(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resendBody
	if err := c.ShouldBind(&data); err != nil || data.Identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Identifier field can't be empty",
			"requestID": requestID,
		})
		return
	}

	err := d.Verification.Resend(data.Identifier)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Account is already verified",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrMailDelivery):
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     "A new code was created but the email could not be delivered. Please try again",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to resend verification code", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "A new verification code was sent to your email",
		"requestID": requestID,
	})
}
