package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitcoach/internal/fitness"
	"github.com/terraincognita07/fitcoach/internal/plans"
	"github.com/terraincognita07/fitcoach/internal/predict"
	"github.com/terraincognita07/fitcoach/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get(fiber.HeaderAccept)), "application/json")
}

// wantsJSON is true for API clients: they either ask for JSON or send it.
func wantsJSON(c *fiber.Ctx) bool {
	return acceptsJSON(c) || strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON)
}

func redirectOrJSON(c *fiber.Ctx, path string) error {
	if wantsJSON(c) {
		return c.JSON(fiber.Map{"ok": true, "next": path})
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

func questionnaireRedirect(c *fiber.Ctx) error {
	if wantsJSON(c) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":    services.ErrProfileRequired.Error(),
			"redirect": services.NextQuestionnaire,
		})
	}
	return c.Redirect(services.NextQuestionnaire, fiber.StatusSeeOther)
}

// respondServiceError is the single place where domain errors become
// status codes.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	var encodingErr *fitness.EncodingError
	var decodeErr *plans.DecodeError
	var predictorErr *predict.HTTPError

	switch {
	case errors.As(err, &encodingErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid value for %s", encodingErr.Field),
			"field": encodingErr.Field,
			"value": encodingErr.Value,
		})
	case errors.As(err, &decodeErr):
		handler.logger.Error("plan decode failed", "table", decodeErr.Table, "label", decodeErr.Label, "reason", decodeErr.Reason)
		return apiError(c, fiber.StatusInternalServerError, "plan could not be decoded")
	case errors.Is(err, services.ErrProfileRequired), errors.Is(err, services.ErrPlanRequired):
		return questionnaireRedirect(c)
	case errors.Is(err, services.ErrUsernameTaken):
		return apiError(c, fiber.StatusConflict, services.ErrUsernameTaken.Error())
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrRegistrationIncomplete):
		return apiError(c, fiber.StatusBadRequest, services.ErrRegistrationIncomplete.Error())
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "password must be at least 8 characters and contain a letter and a digit")
	case errors.Is(err, services.ErrInvalidWeight):
		return apiError(c, fiber.StatusUnprocessableEntity, services.ErrInvalidWeight.Error())
	case errors.As(err, &predictorErr), errors.Is(err, predict.ErrFeatureCount):
		handler.logger.Error("prediction failed", "error", err)
		return apiError(c, fiber.StatusBadGateway, "plan prediction unavailable")
	default:
		handler.logger.Error("request failed", "path", c.Path(), "error", err)
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
