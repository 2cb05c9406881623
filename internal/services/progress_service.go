package services

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/fitcoach/internal/fitness"
	"github.com/terraincognita07/fitcoach/internal/models"
)

// DisplayDateLayout is how dates are shown to users (DD-MM-YYYY).
const DisplayDateLayout = "02-01-2006"

const MinWeightKG = 40

var ErrInvalidWeight = errors.New("weight must be at least 40 kg")

type ProgressStore interface {
	ListByUser(ctx context.Context, userID uint) ([]models.ProgressEntry, error)
	RecordWeight(ctx context.Context, entry *models.ProgressEntry) (models.UserProfile, error)
}

type ProgressService struct {
	progress ProgressStore
	profiles ProfileReader
	location *time.Location
}

type WeightUpdate struct {
	PreviousWeight float64 `json:"previous_weight"`
	NewWeight      float64 `json:"new_weight"`
	Date           string  `json:"date"`
}

type ChartPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

type ProgressView struct {
	Goal          fitness.FitnessGoal `json:"goal"`
	CurrentWeight float64             `json:"current_weight"`
	TargetWeight  *float64            `json:"target_weight,omitempty"`
	Message       string              `json:"message,omitempty"`
	Ratio         float64             `json:"ratio"`
	History       []WeightUpdate      `json:"history"`
	Timeline      []ChartPoint        `json:"timeline"`
	ChartMin      float64             `json:"chart_min"`
	ChartMax      float64             `json:"chart_max"`
}

func NewProgressService(progress ProgressStore, profiles ProfileReader, location *time.Location) *ProgressService {
	if location == nil {
		location = time.UTC
	}
	return &ProgressService{progress: progress, profiles: profiles, location: location}
}

func (service *ProgressService) View(ctx context.Context, userID uint, now time.Time) (ProgressView, error) {
	profile, found, err := service.profiles.FindByUser(ctx, userID)
	if err != nil {
		return ProgressView{}, err
	}
	if !found {
		return ProgressView{}, ErrProfileRequired
	}

	entries, err := service.progress.ListByUser(ctx, userID)
	if err != nil {
		return ProgressView{}, err
	}
	return buildProgressView(profile, entries, now.In(service.location))
}

// UpdateWeight appends a history entry for date and moves the profile to
// the new weight.
func (service *ProgressService) UpdateWeight(ctx context.Context, userID uint, newWeight float64, date time.Time) (WeightUpdate, error) {
	if newWeight < MinWeightKG {
		return WeightUpdate{}, ErrInvalidWeight
	}
	if _, found, err := service.profiles.FindByUser(ctx, userID); err != nil {
		return WeightUpdate{}, err
	} else if !found {
		return WeightUpdate{}, ErrProfileRequired
	}

	entry := models.ProgressEntry{
		UserID:     userID,
		NewWeight:  newWeight,
		RecordedOn: calendarDay(date),
	}
	if _, err := service.progress.RecordWeight(ctx, &entry); err != nil {
		return WeightUpdate{}, err
	}
	return toWeightUpdate(entry), nil
}

func buildProgressView(profile models.UserProfile, entries []models.ProgressEntry, now time.Time) (ProgressView, error) {
	goal := fitness.FitnessGoal(profile.FitnessGoal)
	target, err := fitness.TargetWeight(profile.HeightCM, profile.WeightKG, goal)
	if err != nil {
		return ProgressView{}, err
	}

	view := ProgressView{
		Goal:          goal,
		CurrentWeight: profile.WeightKG,
		Message:       target.Message,
		Ratio:         fitness.ProgressRatio(goal, profile.WeightKG, target),
		History:       make([]WeightUpdate, 0, len(entries)),
	}
	if target.HasTarget() {
		weight := target.Weight
		view.TargetWeight = &weight
	}

	records := make([]fitness.WeightRecord, 0, len(entries))
	for _, entry := range entries {
		view.History = append(view.History, toWeightUpdate(entry))
		records = append(records, fitness.WeightRecord{
			PreviousWeight: entry.PreviousWeight,
			NewWeight:      entry.NewWeight,
			Date:           calendarDay(entry.RecordedOn),
		})
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	points := fitness.Timeline(records, profile.WeightKG, today)
	view.Timeline = make([]ChartPoint, 0, len(points))
	for _, point := range points {
		view.Timeline = append(view.Timeline, ChartPoint{Date: point.Date.Format(DisplayDateLayout), Weight: point.Weight})
	}
	view.ChartMin, view.ChartMax = fitness.ChartBounds(points)
	return view, nil
}

func toWeightUpdate(entry models.ProgressEntry) WeightUpdate {
	return WeightUpdate{
		PreviousWeight: entry.PreviousWeight,
		NewWeight:      entry.NewWeight,
		Date:           calendarDay(entry.RecordedOn).Format(DisplayDateLayout),
	}
}

// calendarDay drops the clock and zone, keeping the wall-clock date.
func calendarDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
