package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/terraincognita07/fitcoach/internal/logger"
	"github.com/terraincognita07/fitcoach/internal/models"
)

const (
	contextUserKey      = "user"
	contextRequestIDKey = "requestid"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

// RequestID tags every request with a UUID, echoed in X-Request-ID.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: contextRequestIDKey,
	})
}

// RequestLogger writes one structured line per request once the chain has run.
// Path and IP are copied because fiber reuses their backing buffers.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			status = fiber.StatusInternalServerError
			if fiberErr, ok := chainErr.(*fiber.Error); ok {
				status = fiberErr.Code
			}
		}

		requestID, _ := c.Locals(contextRequestIDKey).(string)
		fields := []interface{}{
			"request_id", requestID,
			"method", c.Method(),
			"path", utils.CopyString(c.Path()),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", utils.CopyString(c.IP()),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return chainErr
	}
}
