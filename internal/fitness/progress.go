package fitness

import (
	"sort"
	"time"
)

const (
	MessageAboveHealthyRange  = "You're above the healthy range. Weight gain is not suitable."
	MessageAlreadyUnderweight = "You're already underweight. Weight loss is not recommended."
	MessageAlreadyHealthy     = "You're already in a healthy range. Weight loss is not recommended."
)

// Target is the outcome of a target-weight computation. Exactly one of
// Weight and Message is meaningful: Message is set when no target applies.
type Target struct {
	Weight  float64
	BMI     float64
	Message string
}

func (t Target) HasTarget() bool {
	return t.Message == ""
}

// TargetWeight derives a healthy target weight for the goal.
func TargetWeight(heightCM float64, currentWeight float64, goal FitnessGoal) (Target, error) {
	heightM := heightCM / 100
	currentBMI := BMI(heightCM, currentWeight)

	var targetBMI float64
	switch goal {
	case GoalWeightGain:
		switch {
		case currentBMI < 18.5:
			targetBMI = 21.5
		case currentBMI < 24.9:
			targetBMI = 24.9
		default:
			return Target{Message: MessageAboveHealthyRange}, nil
		}
	case GoalWeightLoss:
		if currentBMI <= 18.5 {
			return Target{Message: MessageAlreadyUnderweight}, nil
		}
		targetBMI = 20
		if currentBMI > 25 {
			targetBMI = 21.5
		}
		if targetBMI >= currentBMI {
			return Target{Message: MessageAlreadyHealthy}, nil
		}
	default:
		return Target{}, &EncodingError{Field: "fitness_goal", Value: string(goal)}
	}

	return Target{
		Weight: roundTo(targetBMI*heightM*heightM, 1),
		BMI:    targetBMI,
	}, nil
}

// ProgressRatio measures advancement toward the target in [0, 1]. The starting
// point is synthetic: 120% of the current weight for loss, 80% for gain.
func ProgressRatio(goal FitnessGoal, currentWeight float64, target Target) float64 {
	if !target.HasTarget() {
		return 1
	}

	switch goal {
	case GoalWeightLoss:
		if currentWeight <= target.Weight {
			return 1
		}
		start := currentWeight * 1.2
		return clampUnit((start - currentWeight) / (start - target.Weight))
	case GoalWeightGain:
		if currentWeight >= target.Weight {
			return 1
		}
		start := currentWeight * 0.8
		return clampUnit((currentWeight - start) / (target.Weight - start))
	default:
		return 1
	}
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// WeightRecord is one entry of the weight-update history.
type WeightRecord struct {
	PreviousWeight float64
	NewWeight      float64
	Date           time.Time
}

type TimelinePoint struct {
	Date   time.Time
	Weight float64
}

// Timeline turns the update history into chart points. The first point sits one
// day before the earliest update and carries the weight it replaced. Without
// history the timeline is a single point for today.
func Timeline(records []WeightRecord, currentWeight float64, today time.Time) []TimelinePoint {
	if len(records) == 0 {
		return []TimelinePoint{{Date: today, Weight: currentWeight}}
	}

	sorted := make([]WeightRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]TimelinePoint, 0, len(sorted)+1)
	points = append(points, TimelinePoint{
		Date:   sorted[0].Date.AddDate(0, 0, -1),
		Weight: sorted[0].PreviousWeight,
	})
	for _, record := range sorted {
		points = append(points, TimelinePoint{Date: record.Date, Weight: record.NewWeight})
	}
	return points
}

// ChartBounds pads the weight range by 2 kg on each side.
func ChartBounds(points []TimelinePoint) (float64, float64) {
	const padding = 2
	if len(points) == 0 {
		return 0, 0
	}
	minWeight, maxWeight := points[0].Weight, points[0].Weight
	for _, point := range points[1:] {
		if point.Weight < minWeight {
			minWeight = point.Weight
		}
		if point.Weight > maxWeight {
			maxWeight = point.Weight
		}
	}
	return minWeight - padding, maxWeight + padding
}
