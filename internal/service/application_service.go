package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"talentpool/internal/models"
	"talentpool/internal/repository"
	"talentpool/internal/stream"
)

// ApplicationService accepts job applications. A successful submission also
// puts the candidate on the company's board (first stage) unless they are
// already tracked there.
type ApplicationService struct {
	Repo   repository.Repository
	Logger *zap.Logger
	Stream *stream.Hub
}

func (s *ApplicationService) Submit(ctx context.Context, jobPostingID, candidateID uint64, coverLetter string) (*models.Application, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	job, err := s.Repo.GetJobPostingByID(ctx, jobPostingID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if job.Status != models.JobStatusOpen {
		return nil, ErrJobClosed
	}
	candidate, err := s.Repo.GetCandidateByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, ErrCandidateNotFound
	}
	existing, err := s.Repo.GetApplication(ctx, jobPostingID, candidateID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyApplied
	}
	stages, err := s.Repo.ListStages(ctx, job.CompanyID)
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, ErrStageNotFound
	}
	entry, err := s.Repo.GetPipelineEntry(ctx, job.CompanyID, candidateID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	application := &models.Application{
		JobPostingID: jobPostingID,
		CandidateID:  candidateID,
		CompanyID:    job.CompanyID,
		CoverLetter:  strings.TrimSpace(coverLetter),
		Status:       models.ApplicationStatusReceived,
		CreatedAt:    now,
	}
	var activity *models.ActivityRecord
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.InsertApplicationTx(ctx, tx, application); err != nil {
			return err
		}
		if entry == nil {
			if err := s.Repo.InsertPipelineEntryTx(ctx, tx, &models.PipelineEntry{
				CompanyID:       job.CompanyID,
				CandidateID:     candidateID,
				CurrentStageKey: stages[0].Key,
				LastTouchedAt:   now,
				CreatedAt:       now,
			}); err != nil {
				return err
			}
		}
		rec, err := newActivity(job.CompanyID, candidateID, models.ActivityApplicationReceived, ApplicationReceivedPayload{
			JobPostingID:  jobPostingID,
			ApplicationID: application.ID,
		}, now)
		if err != nil {
			return err
		}
		if err := s.Repo.InsertActivityTx(ctx, tx, rec); err != nil {
			return err
		}
		activity = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("application received",
			zap.Uint64("job_posting_id", jobPostingID),
			zap.Uint64("candidate_id", candidateID),
		)
	}
	if s.Stream != nil && activity != nil {
		s.Stream.Publish(*activity)
	}
	return application, nil
}
