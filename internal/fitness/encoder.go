package fitness

// Field order of the gym model input.
const (
	GymSex = iota
	GymAge
	GymHeight
	GymWeight
	GymHypertension
	GymDiabetes
	GymBMI
	GymLevel
	GymFitnessGoal
	GymFitnessType
	GymFeatureCount
)

// Field order of the diet model input.
const (
	DietAge = iota
	DietGender
	DietWeight
	DietHeight
	DietBMI
	DietDiseaseType
	DietSeverity
	DietPhysicalActivity
	DietCaloricIntake
	DietCholesterol
	DietBloodPressure
	DietGlucose
	DietRestrictions
	DietAllergies
	DietCuisine
	DietExerciseHours
	DietAdherence
	DietNutrientImbalance
	DietFeatureCount
)

type GymFeatures [GymFeatureCount]float64

type DietFeatures [DietFeatureCount]float64

func (f GymFeatures) Slice() []float64 {
	out := make([]float64, len(f))
	copy(out, f[:])
	return out
}

func (f DietFeatures) Slice() []float64 {
	out := make([]float64, len(f))
	copy(out, f[:])
	return out
}

// EncodeGym projects a profile onto the gym model's input. Height is passed in
// metres here, unlike the diet model.
func EncodeGym(p Profile) (GymFeatures, error) {
	var features GymFeatures

	gender, err := lookup(genderTable, "gender", p.Gender)
	if err != nil {
		return features, err
	}
	disease, err := lookup(diseaseTable, "disease", p.Disease)
	if err != nil {
		return features, err
	}
	level, err := lookup(categoryTable, "weight_category", p.WeightCategory())
	if err != nil {
		return features, err
	}
	goal, err := lookup(goalTable, "fitness_goal", p.FitnessGoal)
	if err != nil {
		return features, err
	}
	fitnessType, err := lookup(fitnessTypeTable, "fitness_type", p.FitnessType)
	if err != nil {
		return features, err
	}

	features[GymSex] = float64(gender.gym)
	features[GymAge] = float64(p.Age)
	features[GymHeight] = p.HeightM()
	features[GymWeight] = p.WeightKG
	features[GymHypertension] = float64(disease.hypertension)
	features[GymDiabetes] = float64(disease.diabetes)
	features[GymBMI] = p.BMI()
	features[GymLevel] = float64(level.gym)
	features[GymFitnessGoal] = float64(goal.gym)
	features[GymFitnessType] = float64(fitnessType.gym)
	return features, nil
}

func EncodeDiet(p Profile) (DietFeatures, error) {
	var features DietFeatures

	gender, err := lookup(genderTable, "gender", p.Gender)
	if err != nil {
		return features, err
	}
	disease, err := lookup(diseaseTable, "disease", p.Disease)
	if err != nil {
		return features, err
	}
	severity, err := lookup(severityTable, "severity", p.Severity)
	if err != nil {
		return features, err
	}
	activity, err := lookup(activityTable, "physical_activity", p.ActivityLevel)
	if err != nil {
		return features, err
	}
	restriction, err := lookup(restrictionTable, "dietary_restrictions", p.DietaryRestriction)
	if err != nil {
		return features, err
	}
	allergy, err := lookup(allergyTable, "allergies", p.Allergy)
	if err != nil {
		return features, err
	}
	cuisine, err := lookup(cuisineTable, "preferred_cuisine", p.Cuisine)
	if err != nil {
		return features, err
	}

	features[DietAge] = float64(p.Age)
	features[DietGender] = float64(gender.diet)
	features[DietWeight] = p.WeightKG
	features[DietHeight] = p.HeightCM
	features[DietBMI] = p.BMI()
	features[DietDiseaseType] = float64(disease.diet)
	features[DietSeverity] = float64(severity.diet)
	features[DietPhysicalActivity] = float64(activity.diet)
	features[DietCaloricIntake] = p.CaloricIntake
	features[DietCholesterol] = p.Cholesterol
	features[DietBloodPressure] = p.BloodPressure
	features[DietGlucose] = p.Glucose
	features[DietRestrictions] = float64(restriction.diet)
	features[DietAllergies] = float64(allergy.diet)
	features[DietCuisine] = float64(cuisine.diet)
	features[DietExerciseHours] = p.WeeklyExerciseHours
	features[DietAdherence] = p.DietAdherence
	features[DietNutrientImbalance] = p.NutrientImbalance
	return features, nil
}

// Validate checks every categorical answer without building vectors.
func Validate(p Profile) error {
	if _, err := EncodeGym(p); err != nil {
		return err
	}
	if _, err := EncodeDiet(p); err != nil {
		return err
	}
	return nil
}
