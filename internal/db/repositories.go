package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Profiles *ProfileRepository
	Plans    *PlanRepository
	Progress *ProgressRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Profiles: NewProfileRepository(database),
		Plans:    NewPlanRepository(database),
		Progress: NewProgressRepository(database),
	}
}
