package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"talentpool/internal/models"
	"talentpool/internal/repository"
	"talentpool/internal/stream"
)

type PipelineService struct {
	Repo   repository.Repository
	Logger *zap.Logger
	Stream *stream.Hub
}

func (s *PipelineService) ListStages(ctx context.Context, companyID uint64) ([]models.PipelineStage, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	return s.Repo.ListStages(ctx, companyID)
}

// CreateStage appends a new board column after the current rightmost one.
func (s *PipelineService) CreateStage(ctx context.Context, companyID uint64, name string) (*models.PipelineStage, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	company, err := s.Repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	key := StageKey(name)
	existing, err := s.Repo.GetStageByKey(ctx, companyID, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrStageExists
	}
	maxOrdinal, err := s.Repo.MaxStageOrdinal(ctx, companyID)
	if err != nil {
		return nil, err
	}
	stage := &models.PipelineStage{
		CompanyID: companyID,
		Key:       key,
		Name:      strings.TrimSpace(name),
		Ordinal:   maxOrdinal + 1,
	}
	if err := s.Repo.InsertStage(ctx, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

// ReorderStages rewrites ordinals to match the given key order. Every stage
// of the company must appear exactly once.
func (s *PipelineService) ReorderStages(ctx context.Context, companyID uint64, keys []string) ([]models.PipelineStage, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	stages, err := s.Repo.ListStages(ctx, companyID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(stages))
	for _, st := range stages {
		known[st.Key] = struct{}{}
	}
	if len(keys) != len(stages) {
		return nil, ErrStageNotFound
	}
	for _, key := range keys {
		if _, ok := known[key]; !ok {
			return nil, ErrStageNotFound
		}
	}
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		for i, key := range keys {
			if err := s.Repo.UpdateStageOrdinalTx(ctx, tx, companyID, key, i+1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.ListStages(ctx, companyID)
}

// AddCandidate puts a candidate on the board. Empty stageKey means the first
// stage. Adding an already-tracked candidate is idempotent and returns the
// existing entry.
func (s *PipelineService) AddCandidate(ctx context.Context, companyID, candidateID uint64, stageKey, source string) (*models.PipelineEntry, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	candidate, err := s.Repo.GetCandidateByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, ErrCandidateNotFound
	}
	existing, err := s.Repo.GetPipelineEntry(ctx, companyID, candidateID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	stages, err := s.Repo.ListStages(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, ErrStageNotFound
	}
	key := strings.TrimSpace(stageKey)
	if key == "" {
		key = stages[0].Key
	} else {
		found := false
		for _, st := range stages {
			if st.Key == key {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrStageNotFound
		}
	}
	now := time.Now().UTC()
	entry := &models.PipelineEntry{
		CompanyID:       companyID,
		CandidateID:     candidateID,
		CurrentStageKey: key,
		LastTouchedAt:   now,
		CreatedAt:       now,
	}
	var activity *models.ActivityRecord
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.InsertPipelineEntryTx(ctx, tx, entry); err != nil {
			return err
		}
		rec, err := newActivity(companyID, candidateID, models.ActivityCandidateAdded, CandidateAddedPayload{
			StageKey: key,
			Source:   source,
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
	if s.Stream != nil && activity != nil {
		s.Stream.Publish(*activity)
	}
	return entry, nil
}

// MoveCandidate advances a candidate between stages. Equal from/to keys are a
// no-op: nothing is written, no activity appended, last_touched_at untouched.
// The update only applies while current_stage_key still equals fromKey; a
// lost race returns ErrStageConflict rather than discarding the other
// operator's move.
func (s *PipelineService) MoveCandidate(ctx context.Context, companyID, candidateID uint64, fromKey, toKey string) (*models.PipelineEntry, bool, error) {
	if s == nil || s.Repo == nil {
		return nil, false, nil
	}
	fromKey = strings.TrimSpace(fromKey)
	toKey = strings.TrimSpace(toKey)
	entry, err := s.Repo.GetPipelineEntry(ctx, companyID, candidateID)
	if err != nil {
		return nil, false, err
	}
	if entry == nil {
		return nil, false, ErrCandidateNotFound
	}
	if fromKey == toKey {
		return entry, false, nil
	}
	target, err := s.Repo.GetStageByKey(ctx, companyID, toKey)
	if err != nil {
		return nil, false, err
	}
	if target == nil {
		return nil, false, ErrStageNotFound
	}
	now := time.Now().UTC()
	var activity *models.ActivityRecord
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		moved, err := s.Repo.MovePipelineEntryTx(ctx, tx, companyID, candidateID, fromKey, toKey, now)
		if err != nil {
			return err
		}
		if moved == 0 {
			return ErrStageConflict
		}
		rec, err := newActivity(companyID, candidateID, models.ActivityPipelineMove, PipelineMovePayload{
			From: fromKey,
			To:   toKey,
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
		return nil, false, err
	}
	entry.CurrentStageKey = toKey
	entry.LastTouchedAt = now
	if s.Stream != nil && activity != nil {
		s.Stream.Publish(*activity)
	}
	return entry, true, nil
}

// StageKey derives the stable stage key from a display name: lowercase,
// spaces collapsed to underscores, everything else non-alphanumeric dropped.
func StageKey(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(strings.ToLower(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastUnderscore && b.Len() > 0 {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
