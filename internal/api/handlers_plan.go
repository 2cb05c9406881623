package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitcoach/internal/fitness"
	"github.com/terraincognita07/fitcoach/internal/plans"
)

func (handler *Handler) QuestionnaireOptions(c *fiber.Ctx) error {
	return c.JSON(fitness.Options())
}

func (handler *Handler) SubmitQuestionnaire(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input questionnaireInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if written, err := handler.validateInput(c, &input); written {
		return err
	}

	profile := input.profile()
	plan, err := handler.planService.Generate(c.UserContext(), user.ID, profile)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.logger.Info("plan generated", "user_id", user.ID, "gym_label", plan.GymLabel, "diet_label", plan.DietLabel)
	return c.Status(fiber.StatusCreated).JSON(planPayload(plan, profile.BMI(), profile.WeightCategory()))
}

func (handler *Handler) GetPlan(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	ctx := c.UserContext()
	plan, err := handler.planService.Active(ctx, user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	profile, err := handler.planService.Profile(ctx, user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(planPayload(plan, profile.BMI, fitness.WeightCategory(profile.WeightCategory)))
}

func planPayload(plan plans.Plan, bmi float64, category fitness.WeightCategory) fiber.Map {
	return fiber.Map{
		"gym_label":       plan.GymLabel,
		"diet_label":      plan.DietLabel,
		"bmi":             bmi,
		"weight_category": category,
		"plan":            plan,
		"markdown":        plan.Markdown(),
	}
}
