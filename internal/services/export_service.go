package services

import (
	"context"
	"strconv"

	"github.com/terraincognita07/fitcoach/internal/models"
)

var ExportCSVHeaders = []string{"Date", "Previous weight (kg)", "New weight (kg)"}

type ExportUserReader interface {
	FindByID(ctx context.Context, userID uint) (models.User, error)
}

type ExportPlanReader interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Plan, error)
}

type ExportProgressReader interface {
	ListByUser(ctx context.Context, userID uint) ([]models.ProgressEntry, error)
}

type ExportService struct {
	users    ExportUserReader
	profiles ProfileReader
	plans    ExportPlanReader
	progress ExportProgressReader
}

type ExportUser struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

type ExportProfile struct {
	Age                 int     `json:"age"`
	Gender              string  `json:"gender"`
	HeightCM            float64 `json:"height_cm"`
	WeightKG            float64 `json:"weight_kg"`
	BMI                 float64 `json:"bmi"`
	WeightCategory      string  `json:"weight_category"`
	Disease             string  `json:"disease"`
	Severity            string  `json:"severity"`
	ActivityLevel       string  `json:"physical_activity_level"`
	DietaryRestriction  string  `json:"dietary_restrictions"`
	Allergy             string  `json:"allergies"`
	Cuisine             string  `json:"preferred_cuisine"`
	FitnessGoal         string  `json:"fitness_goal"`
	FitnessType         string  `json:"fitness_type"`
	CaloricIntake       float64 `json:"daily_caloric_intake"`
	Cholesterol         float64 `json:"cholesterol"`
	BloodPressure       float64 `json:"blood_pressure"`
	Glucose             float64 `json:"glucose"`
	WeeklyExerciseHours float64 `json:"weekly_exercise_hours"`
	DietAdherence       float64 `json:"adherence_to_diet_plan"`
	NutrientImbalance   float64 `json:"dietary_nutrient_imbalance_score"`
}

type ExportPlan struct {
	GymLabel  int    `json:"gym_label"`
	DietLabel int    `json:"diet_label"`
	CreatedAt string `json:"created_at"`
}

type ExportDocument struct {
	User     ExportUser     `json:"user"`
	Profile  *ExportProfile `json:"profile"`
	Plans    []ExportPlan   `json:"plans"`
	Progress []WeightUpdate `json:"progress"`
}

func NewExportService(users ExportUserReader, profiles ProfileReader, plans ExportPlanReader, progress ExportProgressReader) *ExportService {
	return &ExportService{users: users, profiles: profiles, plans: plans, progress: progress}
}

// BuildDocument collects every record owned by the user.
func (service *ExportService) BuildDocument(ctx context.Context, userID uint) (ExportDocument, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return ExportDocument{}, err
	}

	document := ExportDocument{
		User: ExportUser{
			Name:      user.Name,
			Username:  user.Username,
			CreatedAt: user.CreatedAt.UTC().Format(DisplayDateLayout),
		},
	}

	profile, found, err := service.profiles.FindByUser(ctx, userID)
	if err != nil {
		return ExportDocument{}, err
	}
	if found {
		exported := exportProfile(profile)
		document.Profile = &exported
	}

	planRows, err := service.plans.ListByUser(ctx, userID)
	if err != nil {
		return ExportDocument{}, err
	}
	document.Plans = make([]ExportPlan, 0, len(planRows))
	for _, plan := range planRows {
		document.Plans = append(document.Plans, ExportPlan{
			GymLabel:  plan.GymLabel,
			DietLabel: plan.DietLabel,
			CreatedAt: plan.CreatedAt.UTC().Format(DisplayDateLayout),
		})
	}

	document.Progress, err = service.weightHistory(ctx, userID)
	if err != nil {
		return ExportDocument{}, err
	}
	return document, nil
}

// BuildCSVRows renders the weight history under ExportCSVHeaders.
func (service *ExportService) BuildCSVRows(ctx context.Context, userID uint) ([][]string, error) {
	history, err := service.weightHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(history))
	for _, update := range history {
		rows = append(rows, []string{
			update.Date,
			formatWeight(update.PreviousWeight),
			formatWeight(update.NewWeight),
		})
	}
	return rows, nil
}

func (service *ExportService) weightHistory(ctx context.Context, userID uint) ([]WeightUpdate, error) {
	entries, err := service.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	history := make([]WeightUpdate, 0, len(entries))
	for _, entry := range entries {
		history = append(history, toWeightUpdate(entry))
	}
	return history, nil
}

func exportProfile(profile models.UserProfile) ExportProfile {
	return ExportProfile{
		Age:                 profile.Age,
		Gender:              profile.Gender,
		HeightCM:            profile.HeightCM,
		WeightKG:            profile.WeightKG,
		BMI:                 profile.BMI,
		WeightCategory:      profile.WeightCategory,
		Disease:             profile.Disease,
		Severity:            profile.Severity,
		ActivityLevel:       profile.ActivityLevel,
		DietaryRestriction:  profile.DietaryRestriction,
		Allergy:             profile.Allergy,
		Cuisine:             profile.Cuisine,
		FitnessGoal:         profile.FitnessGoal,
		FitnessType:         profile.FitnessType,
		CaloricIntake:       profile.CaloricIntake,
		Cholesterol:         profile.Cholesterol,
		BloodPressure:       profile.BloodPressure,
		Glucose:             profile.Glucose,
		WeeklyExerciseHours: profile.WeeklyExerciseHours,
		DietAdherence:       profile.DietAdherence,
		NutrientImbalance:   profile.NutrientImbalance,
	}
}

func formatWeight(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
