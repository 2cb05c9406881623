package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const inputDateLayout = "2006-01-02"

func (handler *Handler) GetProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	view, err := handler.progressService.View(c.UserContext(), user.ID, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(view)
}

func (handler *Handler) UpdateWeight(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input weightInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if written, err := handler.validateInput(c, &input); written {
		return err
	}

	date, err := handler.parseInputDate(input.Date)
	if err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "invalid date")
	}

	update, err := handler.progressService.UpdateWeight(c.UserContext(), user.ID, input.NewWeight, date)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(update)
}

// parseInputDate defaults to today in the configured location.
func (handler *Handler) parseInputDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return handler.now().In(handler.location), nil
	}
	return time.ParseInLocation(inputDateLayout, raw, handler.location)
}
