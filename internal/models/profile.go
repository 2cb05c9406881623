package models

import (
	"time"

	"github.com/terraincognita07/fitcoach/internal/fitness"
)

// UserProfile is the stored questionnaire, one row per user. BMI and
// WeightCategory are denormalized from height and weight on every write.
type UserProfile struct {
	ID                  uint    `gorm:"primaryKey"`
	UserID              uint    `gorm:"uniqueIndex;not null"`
	Age                 int     `gorm:"not null"`
	Gender              string  `gorm:"not null"`
	HeightCM            float64 `gorm:"column:height_cm;not null"`
	WeightKG            float64 `gorm:"column:weight_kg;not null"`
	BMI                 float64 `gorm:"column:bmi;not null"`
	WeightCategory      string  `gorm:"not null"`
	Disease             string  `gorm:"not null"`
	Severity            string  `gorm:"not null"`
	ActivityLevel       string  `gorm:"not null"`
	DietaryRestriction  string  `gorm:"not null"`
	Allergy             string  `gorm:"not null"`
	Cuisine             string  `gorm:"not null"`
	FitnessGoal         string  `gorm:"not null"`
	FitnessType         string  `gorm:"not null"`
	CaloricIntake       float64 `gorm:"not null"`
	Cholesterol         float64 `gorm:"not null"`
	BloodPressure       float64 `gorm:"not null"`
	Glucose             float64 `gorm:"not null"`
	WeeklyExerciseHours float64 `gorm:"not null"`
	DietAdherence       float64 `gorm:"not null"`
	NutrientImbalance   float64 `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func NewUserProfile(userID uint, profile fitness.Profile) UserProfile {
	record := UserProfile{UserID: userID}
	record.Apply(profile)
	return record
}

// Apply copies questionnaire answers onto the record and refreshes derived fields.
func (record *UserProfile) Apply(profile fitness.Profile) {
	record.Age = profile.Age
	record.Gender = string(profile.Gender)
	record.HeightCM = profile.HeightCM
	record.Disease = string(profile.Disease)
	record.Severity = string(profile.Severity)
	record.ActivityLevel = string(profile.ActivityLevel)
	record.DietaryRestriction = string(profile.DietaryRestriction)
	record.Allergy = string(profile.Allergy)
	record.Cuisine = string(profile.Cuisine)
	record.FitnessGoal = string(profile.FitnessGoal)
	record.FitnessType = string(profile.FitnessType)
	record.CaloricIntake = profile.CaloricIntake
	record.Cholesterol = profile.Cholesterol
	record.BloodPressure = profile.BloodPressure
	record.Glucose = profile.Glucose
	record.WeeklyExerciseHours = profile.WeeklyExerciseHours
	record.DietAdherence = profile.DietAdherence
	record.NutrientImbalance = profile.NutrientImbalance
	record.SetWeight(profile.WeightKG)
}

func (record *UserProfile) SetWeight(weightKG float64) {
	record.WeightKG = weightKG
	derived := fitness.Profile{HeightCM: record.HeightCM, WeightKG: weightKG}
	record.BMI = derived.BMI()
	record.WeightCategory = string(derived.WeightCategory())
}

func (record UserProfile) Profile() fitness.Profile {
	return fitness.Profile{
		Age:                 record.Age,
		Gender:              fitness.Gender(record.Gender),
		HeightCM:            record.HeightCM,
		WeightKG:            record.WeightKG,
		Disease:             fitness.Disease(record.Disease),
		Severity:            fitness.Severity(record.Severity),
		ActivityLevel:       fitness.ActivityLevel(record.ActivityLevel),
		DietaryRestriction:  fitness.DietaryRestriction(record.DietaryRestriction),
		Allergy:             fitness.Allergy(record.Allergy),
		Cuisine:             fitness.Cuisine(record.Cuisine),
		FitnessGoal:         fitness.FitnessGoal(record.FitnessGoal),
		FitnessType:         fitness.FitnessType(record.FitnessType),
		CaloricIntake:       record.CaloricIntake,
		Cholesterol:         record.Cholesterol,
		BloodPressure:       record.BloodPressure,
		Glucose:             record.Glucose,
		WeeklyExerciseHours: record.WeeklyExerciseHours,
		DietAdherence:       record.DietAdherence,
		NutrientImbalance:   record.NutrientImbalance,
	}
}
