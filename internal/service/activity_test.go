package service

import (
	"context"
	"testing"
	"time"

	"talentpool/internal/models"
)

func TestPruneExpired(t *testing.T) {
	repo := newStubRepo()
	now := time.Now().UTC()
	old, _ := newActivity(1, 1, models.ActivityPipelineMove, PipelineMovePayload{From: "new", To: "screening"}, now.Add(-100*24*time.Hour))
	recent, _ := newActivity(1, 1, models.ActivityCandidateNoteAdded, NoteAddedPayload{NoteID: 1, CreatedBy: "a"}, now)
	_ = repo.InsertActivityTx(context.Background(), nil, old)
	_ = repo.InsertActivityTx(context.Background(), nil, recent)

	svc := &ActivityService{Repo: repo, MaxAge: 90 * 24 * time.Hour}
	n, err := svc.PruneExpired(context.Background())
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("pruned=%d want=1", n)
	}
	if len(repo.activities) != 1 || repo.activities[0].Type != models.ActivityCandidateNoteAdded {
		t.Fatalf("remaining=%+v", repo.activities)
	}
}

func TestPruneExpired_DisabledWithoutMaxAge(t *testing.T) {
	repo := newStubRepo()
	rec, _ := newActivity(1, 1, models.ActivityPipelineMove, PipelineMovePayload{From: "a", To: "b"}, time.Now().UTC().Add(-365*24*time.Hour))
	_ = repo.InsertActivityTx(context.Background(), nil, rec)

	svc := &ActivityService{Repo: repo}
	n, err := svc.PruneExpired(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("n=%d err=%v want 0/nil", n, err)
	}
	if len(repo.activities) != 1 {
		t.Fatalf("activities pruned with MaxAge unset")
	}
}
