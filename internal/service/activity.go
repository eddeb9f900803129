package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"talentpool/internal/models"
	"talentpool/internal/repository"
)

// Typed activity payloads, one per models.Activity* type. The jsonb column
// only ever holds one of these shapes, so consumers never parse free-form
// maps.

type PipelineMovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type NoteAddedPayload struct {
	NoteID    uint64 `json:"note_id"`
	CreatedBy string `json:"created_by"`
}

type CandidateUnlockedPayload struct {
	TokensSpent  int64 `json:"tokens_spent"`
	BalanceAfter int64 `json:"balance_after"`
}

type ApplicationReceivedPayload struct {
	JobPostingID  uint64 `json:"job_posting_id"`
	ApplicationID uint64 `json:"application_id"`
}

type CandidateAddedPayload struct {
	StageKey string `json:"stage_key"`
	Source   string `json:"source"`
}

func newActivity(companyID, candidateID uint64, recordType string, payload any, at time.Time) (*models.ActivityRecord, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &models.ActivityRecord{
		CompanyID:   companyID,
		CandidateID: candidateID,
		Type:        recordType,
		Payload:     datatypes.JSON(raw),
		CreatedAt:   at,
	}, nil
}

// ActivityService owns retention of the audit trail. Records are display-only;
// nothing reads them for control flow, so pruning old rows is safe.
type ActivityService struct {
	Repo   repository.Repository
	Logger *zap.Logger
	MaxAge time.Duration
}

func (s *ActivityService) PruneExpired(ctx context.Context) (int64, error) {
	if s == nil || s.Repo == nil || s.MaxAge <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-s.MaxAge)
	n, err := s.Repo.DeleteActivitiesBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 && s.Logger != nil {
		s.Logger.Info("pruned activity records", zap.Int64("count", n))
	}
	return n, nil
}
