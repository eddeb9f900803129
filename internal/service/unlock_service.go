package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"talentpool/internal/models"
	"talentpool/internal/repository"
	"talentpool/internal/stream"
)

// UnlockService performs the token-charged reveal of a candidate's contact
// data. The whole sequence — idempotence check, debit, unlock mark, activity
// append — commits or rolls back as one database transaction, so there is no
// window where the unlock exists without the charge or vice versa.
type UnlockService struct {
	Repo   repository.Repository
	Ledger *LedgerService
	Logger *zap.Logger
	Stream *stream.Hub
}

// UnlockCandidate charges tokens_per_unlock and sets unlocked_at.
// A second call for the same pair returns ErrAlreadyUnlocked together with
// the existing entry and charges nothing. ErrInsufficientBalance leaves every
// row untouched.
func (s *UnlockService) UnlockCandidate(ctx context.Context, companyID, candidateID uint64) (*models.PipelineEntry, error) {
	if s == nil || s.Repo == nil || s.Ledger == nil {
		return nil, nil
	}
	var (
		entry    *models.PipelineEntry
		activity *models.ActivityRecord
	)
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		e, err := s.Repo.GetPipelineEntryForUpdateTx(ctx, tx, companyID, candidateID)
		if err != nil {
			return err
		}
		if e == nil {
			return ErrCandidateNotFound
		}
		if e.UnlockedAt != nil {
			entry = e
			return ErrAlreadyUnlocked
		}
		now := time.Now().UTC()
		spent, balanceAfter, err := s.Ledger.DebitUnlockTx(ctx, tx, companyID, candidateID, now)
		if err != nil {
			return err
		}
		if err := s.Repo.MarkEntryUnlockedTx(ctx, tx, e.ID, now); err != nil {
			return err
		}
		rec, err := newActivity(companyID, candidateID, models.ActivityCandidateUnlocked, CandidateUnlockedPayload{
			TokensSpent:  spent,
			BalanceAfter: balanceAfter,
		}, now)
		if err != nil {
			return err
		}
		if err := s.Repo.InsertActivityTx(ctx, tx, rec); err != nil {
			return err
		}
		e.UnlockedAt = &now
		entry = e
		activity = rec
		return nil
	})
	if err != nil {
		return entry, err
	}
	if s.Logger != nil {
		s.Logger.Info("candidate unlocked",
			zap.Uint64("company_id", companyID),
			zap.Uint64("candidate_id", candidateID),
		)
	}
	if s.Stream != nil && activity != nil {
		s.Stream.Publish(*activity)
	}
	return entry, nil
}
