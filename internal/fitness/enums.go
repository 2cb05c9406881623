package fitness

import "fmt"

// EncodingError reports a categorical answer outside the closed domain of its field.
type EncodingError struct {
	Field string
	Value string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %s: unknown value %q", e.Field, e.Value)
}

type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
)

type Disease string

const (
	DiseaseNone         Disease = "None"
	DiseaseHypertension Disease = "Hypertension"
	DiseaseDiabetes     Disease = "Diabetes"
	DiseaseObesity      Disease = "Obesity"
)

type Severity string

const (
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "Sedentary"
	ActivityModerate  ActivityLevel = "Moderate"
	ActivityActive    ActivityLevel = "Active"
)

type DietaryRestriction string

const (
	RestrictionNone      DietaryRestriction = "None"
	RestrictionLowSodium DietaryRestriction = "Low Sodium"
	RestrictionLowSugar  DietaryRestriction = "Low Sugar"
)

type Allergy string

const (
	AllergyNone    Allergy = "None"
	AllergyGluten  Allergy = "Gluten"
	AllergyPeanuts Allergy = "Peanuts"
)

type Cuisine string

const (
	CuisineChinese Cuisine = "Chinese"
	CuisineIndian  Cuisine = "Indian"
	CuisineItalian Cuisine = "Italian"
	CuisineMexican Cuisine = "Mexican"
)

type FitnessGoal string

const (
	GoalWeightGain FitnessGoal = "Weight Gain"
	GoalWeightLoss FitnessGoal = "Weight Loss"
)

type FitnessType string

const (
	TypeCardio   FitnessType = "Cardio Fitness"
	TypeMuscular FitnessType = "Muscular Fitness"
)

type WeightCategory string

const (
	CategoryUnderweight WeightCategory = "Underweight"
	CategoryNormal      WeightCategory = "Normal"
	CategoryOverweight  WeightCategory = "Overweight"
	CategoryObese       WeightCategory = "Obese"
)

// modelCodes holds the projection of one canonical value onto each predictor's input space.
// A negative code means the field is not part of that model's vector.
type modelCodes struct {
	gym  int
	diet int
}

// diseaseCodes is special: the gym model sees two independent flags and
// cannot tell Obesity apart from None.
type diseaseCodes struct {
	hypertension int
	diabetes     int
	diet         int
}

var genderTable = map[Gender]modelCodes{
	GenderFemale: {gym: 0, diet: 0},
	GenderMale:   {gym: 1, diet: 1},
}

var diseaseTable = map[Disease]diseaseCodes{
	DiseaseNone:         {hypertension: 0, diabetes: 0, diet: 3},
	DiseaseHypertension: {hypertension: 1, diabetes: 0, diet: 1},
	DiseaseDiabetes:     {hypertension: 0, diabetes: 1, diet: 0},
	DiseaseObesity:      {hypertension: 0, diabetes: 0, diet: 2},
}

var severityTable = map[Severity]modelCodes{
	SeverityMild:     {gym: -1, diet: 0},
	SeverityModerate: {gym: -1, diet: 1},
	SeveritySevere:   {gym: -1, diet: 2},
}

var activityTable = map[ActivityLevel]modelCodes{
	ActivityActive:    {gym: -1, diet: 0},
	ActivityModerate:  {gym: -1, diet: 1},
	ActivitySedentary: {gym: -1, diet: 2},
}

var restrictionTable = map[DietaryRestriction]modelCodes{
	RestrictionLowSodium: {gym: -1, diet: 0},
	RestrictionLowSugar:  {gym: -1, diet: 1},
	RestrictionNone:      {gym: -1, diet: 2},
}

var allergyTable = map[Allergy]modelCodes{
	AllergyGluten:  {gym: -1, diet: 0},
	AllergyPeanuts: {gym: -1, diet: 1},
	AllergyNone:    {gym: -1, diet: 2},
}

var cuisineTable = map[Cuisine]modelCodes{
	CuisineChinese: {gym: -1, diet: 0},
	CuisineIndian:  {gym: -1, diet: 1},
	CuisineItalian: {gym: -1, diet: 2},
	CuisineMexican: {gym: -1, diet: 3},
}

var goalTable = map[FitnessGoal]modelCodes{
	GoalWeightGain: {gym: 0, diet: -1},
	GoalWeightLoss: {gym: 1, diet: -1},
}

var fitnessTypeTable = map[FitnessType]modelCodes{
	TypeCardio:   {gym: 0, diet: -1},
	TypeMuscular: {gym: 1, diet: -1},
}

var categoryTable = map[WeightCategory]modelCodes{
	CategoryNormal:      {gym: 0, diet: -1},
	CategoryObese:       {gym: 1, diet: -1},
	CategoryOverweight:  {gym: 2, diet: -1},
	CategoryUnderweight: {gym: 3, diet: -1},
}

func lookup[K ~string, V any](table map[K]V, field string, value K) (V, error) {
	codes, ok := table[value]
	if !ok {
		var zero V
		return zero, &EncodingError{Field: field, Value: string(value)}
	}
	return codes, nil
}

// Options lists the accepted answers for every categorical questionnaire field.
func Options() map[string][]string {
	return map[string][]string{
		"gender":               {string(GenderMale), string(GenderFemale)},
		"disease":              {string(DiseaseNone), string(DiseaseHypertension), string(DiseaseDiabetes), string(DiseaseObesity)},
		"severity":             {string(SeverityMild), string(SeverityModerate), string(SeveritySevere)},
		"physical_activity":    {string(ActivitySedentary), string(ActivityModerate), string(ActivityActive)},
		"dietary_restrictions": {string(RestrictionNone), string(RestrictionLowSodium), string(RestrictionLowSugar)},
		"allergies":            {string(AllergyNone), string(AllergyGluten), string(AllergyPeanuts)},
		"preferred_cuisine":    {string(CuisineChinese), string(CuisineIndian), string(CuisineItalian), string(CuisineMexican)},
		"fitness_goal":         {string(GoalWeightLoss), string(GoalWeightGain)},
		"fitness_type":         {string(TypeCardio), string(TypeMuscular)},
	}
}
