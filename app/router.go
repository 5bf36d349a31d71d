// Package app wires the HTTP surface: middleware, routes and the dependency
// bundle handed to every handler.
package app

import (
	"fmt"
	"strings"
	"time"

	"truthlink/message-api/app/message"
	"truthlink/message-api/app/root"
	"truthlink/message-api/app/user"
	"truthlink/message-api/db"
	"truthlink/message-api/internal"
	"truthlink/message-api/internal/service"
	"truthlink/message-api/pkg/middleware"
	"truthlink/message-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	makeLogger()

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	argon := security.New()
	mail := service.SMTPMailer{}

	d := &internal.Deps{
		DB:    conn,
		Argon: argon,
		Mail:  mail,
		Accounts: &service.Accounts{
			DB:    conn,
			Argon: argon,
		},
		Verification: &service.Verification{
			DB:      conn,
			Mail:    mail,
			CodeTTL: v.GetDuration("verification.code_ttl"),
		},
		Reset: &service.Reset{
			DB:       conn,
			Argon:    argon,
			Mail:     mail,
			TokenTTL: v.GetDuration("reset.token_ttl"),
			ResetURL: v.GetString("reset.url"),
		},
		Auth: &service.Auth{
			DB:         conn,
			Argon:      argon,
			SignKey:    []byte(v.GetString("jwt.secret")),
			SessionTTL: v.GetDuration("jwt.session_ttl"),
		},
		Messages: &service.Messages{
			DB: conn,
		},
	}

	router := gin.New()

	origins := strings.Split(v.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jwt := middleware.NewJWTMiddleware(conn)
	bodyLimit := middleware.BodySizeLimiter(1 << 20)

	m := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a JWT token
		m.GET("/validate", jwt, root.Validate)
	}

	u := m.Group("/users", bodyLimit)
	{
		// GET /api/users		-> Returns the authenticated user's profile
		u.GET("", jwt, func(c *gin.Context) { user.UserFetch(c, d) })

		// POST /api/users 		-> Registers a new user and mails a verification code
		u.POST("", func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/users/login 	-> Logs in a user and sets the session cookie
		u.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// POST /api/users/verify	-> Redeems a verification code
		u.POST("/verify", func(c *gin.Context) { user.UserVerify(c, d) })

		// POST /api/users/verify/resend -> Mails a fresh verification code
		u.POST("/verify/resend", func(c *gin.Context) { user.UserResendCode(c, d) })

		// POST /api/users/forgot-password -> Mails a password reset link
		u.POST("/forgot-password", func(c *gin.Context) { user.UserForgotPassword(c, d) })

		// POST /api/users/reset-password -> Redeems a reset token
		u.POST("/reset-password", func(c *gin.Context) { user.UserResetPassword(c, d) })

		// GET /api/users/:username	-> Public recipient lookup for the send page
		u.GET("/:username", cacheFor(15), func(c *gin.Context) { user.UserLookup(c, d) })
	}

	msg := m.Group("/messages", bodyLimit)
	{
		// GET /api/messages		-> Returns the user's inbox, newest first
		msg.GET("", jwt, func(c *gin.Context) { message.MessageFetch(c, d) })

		// POST /api/messages/:username	-> Anonymously sends a message to a user
		msg.POST("/:username", func(c *gin.Context) { message.MessageSend(c, d) })

		// DELETE /api/messages/:id	-> Deletes one of the user's own messages
		msg.DELETE("/:id", jwt, func(c *gin.Context) { message.MessageDelete(c, d) })

		// GET /api/messages/accept	-> Returns the admission flag
		msg.GET("/accept", jwt, func(c *gin.Context) { message.AcceptFetch(c, d) })

		// POST /api/messages/accept	-> Overwrites the admission flag
		msg.POST("/accept", jwt, func(c *gin.Context) { message.AcceptUpdate(c, d) })
	}

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(v.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
