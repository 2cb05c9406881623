package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitcoach/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if written, err := handler.validateInput(c, &input); written {
		return err
	}

	user, err := handler.authService.Register(c.UserContext(), input.Name, input.Username, input.Password)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.logger.Info("user registered", "user_id", user.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()
	limiterKey := requestLimiterKey(c)
	now := handler.now()

	limited, err := handler.loginLimiter.TooManyRecent(ctx, limiterKey, now)
	if err != nil {
		handler.logger.Warn("login limiter unavailable", "error", err)
	}
	if limited {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts, try again later")
	}

	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	result, err := handler.authService.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			if limitErr := handler.loginLimiter.AddFailure(ctx, limiterKey, now); limitErr != nil {
				handler.logger.Warn("login limiter unavailable", "error", limitErr)
			}
		}
		return handler.respondServiceError(c, err)
	}

	if err := handler.loginLimiter.Reset(ctx, limiterKey); err != nil {
		handler.logger.Warn("login limiter unavailable", "error", err)
	}
	if err := handler.setAuthCookie(c, &result.User); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return redirectOrJSON(c, result.Next)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return redirectOrJSON(c, "/login")
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	next, err := handler.authService.NextPage(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
		"has_plan": next == services.NextPlan,
		"next":     next,
	})
}
