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

type NoteService struct {
	Repo   repository.Repository
	Logger *zap.Logger
	Stream *stream.Hub
}

// AddNote appends a note and the matching candidate_note_added activity in
// one transaction. Notes are never edited or deleted.
func (s *NoteService) AddNote(ctx context.Context, companyID, candidateID uint64, body, createdBy string) (*models.CandidateNote, error) {
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
	now := time.Now().UTC()
	note := &models.CandidateNote{
		CompanyID:   companyID,
		CandidateID: candidateID,
		Body:        strings.TrimSpace(body),
		CreatedBy:   strings.TrimSpace(createdBy),
		CreatedAt:   now,
	}
	var activity *models.ActivityRecord
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.InsertNoteTx(ctx, tx, note); err != nil {
			return err
		}
		rec, err := newActivity(companyID, candidateID, models.ActivityCandidateNoteAdded, NoteAddedPayload{
			NoteID:    note.ID,
			CreatedBy: note.CreatedBy,
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
	return note, nil
}

func (s *NoteService) ListNotes(ctx context.Context, params repository.ListNotesParams) ([]models.CandidateNote, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, nil
	}
	items, err := s.Repo.ListNotes(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountNotes(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
