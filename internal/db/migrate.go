package db

import (
	"talentpool/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Company{},
		&models.Candidate{},
		&models.TokenBalance{},
		&models.TokenTransaction{},
		&models.PipelineStage{},
		&models.PipelineEntry{},
		&models.CandidateNote{},
		&models.ActivityRecord{},
		&models.JobPosting{},
		&models.Application{},
	)
}
