package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitcoach/internal/fitness"
)

type credentialsInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type registerInput struct {
	Name     string `json:"name" form:"name" validate:"max=120"`
	Username string `json:"username" form:"username" validate:"max=64"`
	Password string `json:"password" form:"password" validate:"max=128"`
}

// questionnaireInput bounds mirror the questionnaire form. Categorical answers
// are checked by the encoder so the error can name the rejected value.
type questionnaireInput struct {
	Age                 int     `json:"age" form:"age" validate:"gte=20"`
	Gender              string  `json:"gender" form:"gender" validate:"required"`
	HeightCM            float64 `json:"height_cm" form:"height_cm" validate:"gte=100"`
	WeightKG            float64 `json:"weight_kg" form:"weight_kg" validate:"gte=40"`
	Disease             string  `json:"disease" form:"disease" validate:"required"`
	Severity            string  `json:"severity" form:"severity" validate:"required"`
	ActivityLevel       string  `json:"physical_activity_level" form:"physical_activity_level" validate:"required"`
	DietaryRestriction  string  `json:"dietary_restrictions" form:"dietary_restrictions" validate:"required"`
	Allergy             string  `json:"allergies" form:"allergies" validate:"required"`
	Cuisine             string  `json:"preferred_cuisine" form:"preferred_cuisine" validate:"required"`
	FitnessGoal         string  `json:"fitness_goal" form:"fitness_goal" validate:"required"`
	FitnessType         string  `json:"fitness_type" form:"fitness_type" validate:"required"`
	CaloricIntake       float64 `json:"daily_caloric_intake" form:"daily_caloric_intake" validate:"gte=1200"`
	Cholesterol         float64 `json:"cholesterol" form:"cholesterol" validate:"gte=100"`
	BloodPressure       float64 `json:"blood_pressure" form:"blood_pressure" validate:"gte=60"`
	Glucose             float64 `json:"glucose" form:"glucose" validate:"gte=70"`
	WeeklyExerciseHours float64 `json:"weekly_exercise_hours" form:"weekly_exercise_hours" validate:"gte=0"`
	DietAdherence       float64 `json:"adherence_to_diet_plan" form:"adherence_to_diet_plan" validate:"gte=0,lte=100"`
	NutrientImbalance   float64 `json:"dietary_nutrient_imbalance_score" form:"dietary_nutrient_imbalance_score" validate:"gte=0,lte=5"`
}

func (input questionnaireInput) profile() fitness.Profile {
	return fitness.Profile{
		Age:                 input.Age,
		Gender:              fitness.Gender(strings.TrimSpace(input.Gender)),
		HeightCM:            input.HeightCM,
		WeightKG:            input.WeightKG,
		Disease:             fitness.Disease(strings.TrimSpace(input.Disease)),
		Severity:            fitness.Severity(strings.TrimSpace(input.Severity)),
		ActivityLevel:       fitness.ActivityLevel(strings.TrimSpace(input.ActivityLevel)),
		DietaryRestriction:  fitness.DietaryRestriction(strings.TrimSpace(input.DietaryRestriction)),
		Allergy:             fitness.Allergy(strings.TrimSpace(input.Allergy)),
		Cuisine:             fitness.Cuisine(strings.TrimSpace(input.Cuisine)),
		FitnessGoal:         fitness.FitnessGoal(strings.TrimSpace(input.FitnessGoal)),
		FitnessType:         fitness.FitnessType(strings.TrimSpace(input.FitnessType)),
		CaloricIntake:       input.CaloricIntake,
		Cholesterol:         input.Cholesterol,
		BloodPressure:       input.BloodPressure,
		Glucose:             input.Glucose,
		WeeklyExerciseHours: input.WeeklyExerciseHours,
		DietAdherence:       input.DietAdherence,
		NutrientImbalance:   input.NutrientImbalance,
	}
}

type weightInput struct {
	NewWeight float64 `json:"new_weight" form:"new_weight" validate:"gte=40"`
	Date      string  `json:"date" form:"date" validate:"omitempty,datetime=2006-01-02"`
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// validateInput answers 422 with per-field messages and reports whether the
// response has been written.
func (handler *Handler) validateInput(c *fiber.Ctx, payload interface{}) (bool, error) {
	err := handler.validate.Struct(payload)
	if err == nil {
		return false, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return true, apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields[fieldErr.Field()] = describeRule(fieldErr)
	}
	return true, c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  "invalid input",
		"fields": fields,
	})
}

func describeRule(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fieldErr.Param()
	case "lte":
		return "must be at most " + fieldErr.Param()
	case "max":
		return "is too long"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
