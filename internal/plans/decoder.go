package plans

import (
	"fmt"
	"strings"
)

const gymSectionCount = 4

// DecodeError reports a label the catalogs cannot turn into a plan.
type DecodeError struct {
	Table  string
	Label  int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s label %d: %s", e.Table, e.Label, e.Reason)
}

// GymPlan is the decoded form of a gym label.
type GymPlan struct {
	Exercises []string    `json:"exercises"`
	Diet      []DietEntry `json:"diet"`
	Equipment []string    `json:"equipment"`
	Advice    Advice      `json:"advice"`
}

// Plan combines both decoded labels.
type Plan struct {
	GymLabel  int    `json:"gym_label"`
	DietLabel int    `json:"diet_label"`
	DietType  string `json:"diet_type"`
	GymPlan
}

type Decoder struct {
	catalog *Catalog
}

func NewDecoder(catalog *Catalog) *Decoder {
	return &Decoder{catalog: catalog}
}

func (decoder *Decoder) DecodeGym(label int) (GymPlan, error) {
	if label < 0 || label >= len(decoder.catalog.GymPlans) {
		return GymPlan{}, &DecodeError{Table: "gym", Label: label, Reason: "label out of range"}
	}

	sections := strings.Split(decoder.catalog.GymPlans[label], "|")
	if len(sections) != gymSectionCount {
		return GymPlan{}, &DecodeError{
			Table:  "gym",
			Label:  label,
			Reason: fmt.Sprintf("expected %d sections, got %d", gymSectionCount, len(sections)),
		}
	}

	return GymPlan{
		Exercises: ParseItemList(strings.TrimSpace(sections[0])),
		Diet:      ParseDietSection(strings.TrimSpace(sections[1])),
		Equipment: ParseItemList(strings.TrimSpace(sections[2])),
		Advice:    ParseAdvice(sections[3]),
	}, nil
}

func (decoder *Decoder) DecodeDiet(label int) (string, error) {
	if label < 0 || label >= len(decoder.catalog.DietTypes) {
		return "", &DecodeError{Table: "diet", Label: label, Reason: "label out of range"}
	}
	return decoder.catalog.DietTypes[label], nil
}

func (decoder *Decoder) Decode(gymLabel int, dietLabel int) (Plan, error) {
	gymPlan, err := decoder.DecodeGym(gymLabel)
	if err != nil {
		return Plan{}, err
	}
	dietType, err := decoder.DecodeDiet(dietLabel)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		GymLabel:  gymLabel,
		DietLabel: dietLabel,
		DietType:  dietType,
		GymPlan:   gymPlan,
	}, nil
}

// GymLabelCount and DietLabelCount bound the labels a predictor may return.
func (decoder *Decoder) GymLabelCount() int {
	return len(decoder.catalog.GymPlans)
}

func (decoder *Decoder) DietLabelCount() int {
	return len(decoder.catalog.DietTypes)
}

// Markdown renders the plan in the layout of the plan page.
func (plan Plan) Markdown() string {
	var builder strings.Builder
	builder.WriteString("### 🥗 Recommended Diet: **" + plan.DietType + "**\n\n")
	builder.WriteString(DietMarkdown(plan.Diet))
	builder.WriteString("\n\n### 🏃 Recommended Workouts\n\n")
	builder.WriteString(ItemsMarkdown(plan.Exercises))
	builder.WriteString("\n\n### 🏋️ Equipment Required\n\n")
	builder.WriteString(ItemsMarkdown(plan.Equipment))
	builder.WriteString("\n\n### 💡 General Advice\n\n")
	builder.WriteString(AdviceMarkdown(plan.Advice))
	builder.WriteString("\n")
	return builder.String()
}
