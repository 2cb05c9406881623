package fitness

import "math"

// Profile is the questionnaire as submitted by the user, with categorical
// answers already typed but not yet validated against their domains.
type Profile struct {
	Age                 int
	Gender              Gender
	HeightCM            float64
	WeightKG            float64
	Disease             Disease
	Severity            Severity
	ActivityLevel       ActivityLevel
	DietaryRestriction  DietaryRestriction
	Allergy             Allergy
	Cuisine             Cuisine
	FitnessGoal         FitnessGoal
	FitnessType         FitnessType
	CaloricIntake       float64
	Cholesterol         float64
	BloodPressure       float64
	Glucose             float64
	WeeklyExerciseHours float64
	DietAdherence       float64
	NutrientImbalance   float64
}

// HeightM returns the height in metres.
func (p Profile) HeightM() float64 {
	return p.HeightCM / 100
}

// BMI returns the body mass index rounded to two decimals, the precision the
// models were trained on.
func (p Profile) BMI() float64 {
	return roundTo(BMI(p.HeightCM, p.WeightKG), 2)
}

func (p Profile) WeightCategory() WeightCategory {
	return CategoryForBMI(p.BMI())
}

// BMI computes weight / height_m² without rounding.
func BMI(heightCM float64, weightKG float64) float64 {
	heightM := heightCM / 100
	if heightM <= 0 {
		return 0
	}
	return weightKG / (heightM * heightM)
}

// CategoryForBMI buckets a BMI value. Values in [24.9, 25) fall through to
// Obese; the models were trained with that gap and it is kept as is.
func CategoryForBMI(bmi float64) WeightCategory {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi >= 18.5 && bmi < 24.9:
		return CategoryNormal
	case bmi >= 25 && bmi < 29.9:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
