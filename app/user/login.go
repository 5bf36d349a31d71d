package user

import (
	"errors"
	"net/http"

	"truthlink/message-api/internal"
	"truthlink/message-api/internal/service"

	"github.com/gin-gonic/gin"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data service.LoginRequest
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.Identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Identifier field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	token, user, err := d.Auth.Authenticate(data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrNotVerified):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Please verify your account before login",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid credentials",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to authenticate user", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	sslEnabled := v.GetBool("host.ssl.enabled")
	maxAge := int(v.GetDuration("jwt.session_ttl").Seconds())

	c.SetCookie("auth_token", token, maxAge, "/", "", sslEnabled, true)
	c.SetCookie("logged_in", "1", maxAge, "/", "", sslEnabled, false)

	c.JSON(http.StatusOK, gin.H{
		"userID":            user.ID,
		"username":          user.Username,
		"verified":          user.Verified,
		"acceptingMessages": user.AcceptingMessages,
	})
}
