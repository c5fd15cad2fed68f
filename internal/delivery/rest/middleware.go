package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/service"
)

const (
	ctxUser  = "user"
	ctxToken = "token"
)

func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// authRequired rejects requests without a valid session.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		user, err := h.Auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthorized) {
				h.logger.Error("failed to authenticate request", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ctxUser, user)
		c.Set(ctxToken, token)
		c.Next()
	}
}

// authOptional attaches the user when a valid session is presented.
func (h *Handler) authOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := h.Auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(ctxUser, user)
				c.Set(ctxToken, token)
			}
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *entities.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	user, _ := v.(*entities.User)
	return user
}

func currentUserID(c *gin.Context) uuid.UUID {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return uuid.Nil
}

// challengeOwner keys challenges by user, or by client address for guests.
func challengeOwner(c *gin.Context) string {
	if user := currentUser(c); user != nil {
		return user.ID.String()
	}
	return "ip:" + c.ClientIP()
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if id := currentUserID(c); id != uuid.Nil {
			fields = append(fields, zap.Stringer("user_id", id))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("http request", fields...)
			return
		}
		logger.Debug("http request", fields...)
	}
}

func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic in http handler",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	})
}
