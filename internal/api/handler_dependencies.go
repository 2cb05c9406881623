package api

import (
	"github.com/terraincognita07/fitcoach/internal/db"
	"github.com/terraincognita07/fitcoach/internal/plans"
	"github.com/terraincognita07/fitcoach/internal/predict"
	"github.com/terraincognita07/fitcoach/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB, pair predict.Pair, decoder *plans.Decoder) error {
	repositories := db.NewRepositories(database)

	planService, err := services.NewPlanService(repositories.Plans, repositories.Profiles, pair, decoder)
	if err != nil {
		return err
	}

	handler.authService = services.NewAuthService(repositories.Users, repositories.Plans)
	handler.planService = planService
	handler.progressService = services.NewProgressService(repositories.Progress, repositories.Profiles, handler.location)
	handler.exportService = services.NewExportService(repositories.Users, repositories.Profiles, repositories.Plans, repositories.Progress)
	return nil
}
