package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"talentpool/internal/models"
	"talentpool/internal/repository"
)

func seedBoard(repo *stubRepo, stageKeys ...string) (companyID, candidateID uint64) {
	company := &models.Company{Name: "Acme"}
	_ = repo.InsertCompanyTx(context.Background(), nil, company)
	candidate := &models.Candidate{FullName: "Dana Fields"}
	_ = repo.InsertCandidate(context.Background(), candidate)
	for i, key := range stageKeys {
		_ = repo.InsertStage(context.Background(), &models.PipelineStage{
			CompanyID: company.ID,
			Key:       key,
			Name:      key,
			Ordinal:   i + 1,
		})
	}
	return company.ID, candidate.ID
}

func TestAddCandidate_DefaultsToFirstStage(t *testing.T) {
	repo := newStubRepo()
	companyID, candidateID := seedBoard(repo, "new", "screening")
	svc := &PipelineService{Repo: repo}

	entry, err := svc.AddCandidate(context.Background(), companyID, candidateID, "", "manual")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if entry.CurrentStageKey != "new" {
		t.Fatalf("stage=%s want=new", entry.CurrentStageKey)
	}
	if len(repo.activities) != 1 || repo.activities[0].Type != models.ActivityCandidateAdded {
		t.Fatalf("activities=%+v", repo.activities)
	}
}

func TestAddCandidate_Idempotent(t *testing.T) {
	repo := newStubRepo()
	companyID, candidateID := seedBoard(repo, "new")
	svc := &PipelineService{Repo: repo}

	first, err := svc.AddCandidate(context.Background(), companyID, candidateID, "", "manual")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	second, err := svc.AddCandidate(context.Background(), companyID, candidateID, "", "manual")
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second add created a new entry: %d vs %d", second.ID, first.ID)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("entries=%d want=1", len(repo.entries))
	}
	if len(repo.activities) != 1 {
		t.Fatalf("activities=%d want=1", len(repo.activities))
	}
}

func TestMoveCandidate_AppendsActivity(t *testing.T) {
	repo := newStubRepo()
	companyID, candidateID := seedBoard(repo, "new", "screening")
	svc := &PipelineService{Repo: repo}
	if _, err := svc.AddCandidate(context.Background(), companyID, candidateID, "", "manual"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	entry, moved, err := svc.MoveCandidate(context.Background(), companyID, candidateID, "new", "screening")
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if !moved {
		t.Fatalf("moved=false want=true")
	}
	if entry.CurrentStageKey != "screening" {
		t.Fatalf("stage=%s want=screening", entry.CurrentStageKey)
	}
	activities, _ := repo.ListActivities(context.Background(), listActivitiesFor(companyID, candidateID))
	if len(activities) != 2 {
		t.Fatalf("activities=%d want=2", len(activities))
	}
	// Newest first.
	if activities[0].Type != models.ActivityPipelineMove {
		t.Fatalf("newest activity type=%s", activities[0].Type)
	}
	var payload PipelineMovePayload
	if err := json.Unmarshal(activities[0].Payload, &payload); err != nil {
		t.Fatalf("payload unmarshal: %v", err)
	}
	if payload.From != "new" || payload.To != "screening" {
		t.Fatalf("payload=%+v", payload)
	}
}

func TestMoveCandidate_SameStageNoOp(t *testing.T) {
	repo := newStubRepo()
	companyID, candidateID := seedBoard(repo, "new", "screening")
	svc := &PipelineService{Repo: repo}
	if _, err := svc.AddCandidate(context.Background(), companyID, candidateID, "", "manual"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	before, _ := repo.GetPipelineEntry(context.Background(), companyID, candidateID)

	entry, moved, err := svc.MoveCandidate(context.Background(), companyID, candidateID, "new", "new")
	if err != nil {
		t.Fatalf("no-op move errored: %v", err)
	}
	if moved {
		t.Fatalf("moved=true for same-stage move")
	}
	if !entry.LastTouchedAt.Equal(before.LastTouchedAt) {
		t.Fatalf("last_touched_at changed on no-op")
	}
	if n := len(repo.activities); n != 1 {
		t.Fatalf("activities=%d want=1 (add only)", n)
	}
}

func TestMoveCandidate_StaleFromConflict(t *testing.T) {
	repo := newStubRepo()
	companyID, candidateID := seedBoard(repo, "new", "screening", "interview")
	svc := &PipelineService{Repo: repo}
	if _, err := svc.AddCandidate(context.Background(), companyID, candidateID, "", "manual"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, _, err := svc.MoveCandidate(context.Background(), companyID, candidateID, "new", "screening"); err != nil {
		t.Fatalf("first move failed: %v", err)
	}

	// Second operator still believes the candidate sits in "new".
	_, _, err := svc.MoveCandidate(context.Background(), companyID, candidateID, "new", "interview")
	if !errors.Is(err, ErrStageConflict) {
		t.Fatalf("err=%v want ErrStageConflict", err)
	}
	entry, _ := repo.GetPipelineEntry(context.Background(), companyID, candidateID)
	if entry.CurrentStageKey != "screening" {
		t.Fatalf("winning move overwritten: stage=%s", entry.CurrentStageKey)
	}
}

func TestMoveCandidate_UnknownTargetStage(t *testing.T) {
	repo := newStubRepo()
	companyID, candidateID := seedBoard(repo, "new")
	svc := &PipelineService{Repo: repo}
	if _, err := svc.AddCandidate(context.Background(), companyID, candidateID, "", "manual"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	_, _, err := svc.MoveCandidate(context.Background(), companyID, candidateID, "new", "missing")
	if !errors.Is(err, ErrStageNotFound) {
		t.Fatalf("err=%v want ErrStageNotFound", err)
	}
}

func TestCreateStage_AppendsAfterRightmost(t *testing.T) {
	repo := newStubRepo()
	companyID, _ := seedBoard(repo, "new", "screening")
	svc := &PipelineService{Repo: repo}

	stage, err := svc.CreateStage(context.Background(), companyID, "Final Round")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if stage.Key != "final_round" {
		t.Fatalf("key=%s want=final_round", stage.Key)
	}
	if stage.Ordinal != 3 {
		t.Fatalf("ordinal=%d want=3", stage.Ordinal)
	}
}

func TestCreateStage_DuplicateKey(t *testing.T) {
	repo := newStubRepo()
	companyID, _ := seedBoard(repo, "new")
	svc := &PipelineService{Repo: repo}

	_, err := svc.CreateStage(context.Background(), companyID, "New")
	if !errors.Is(err, ErrStageExists) {
		t.Fatalf("err=%v want ErrStageExists", err)
	}
}

func TestReorderStages(t *testing.T) {
	repo := newStubRepo()
	companyID, _ := seedBoard(repo, "new", "screening", "interview")
	svc := &PipelineService{Repo: repo}

	stages, err := svc.ReorderStages(context.Background(), companyID, []string{"interview", "new", "screening"})
	if err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	got := make([]string, 0, len(stages))
	for _, st := range stages {
		got = append(got, st.Key)
	}
	want := []string{"interview", "new", "screening"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order=%v want=%v", got, want)
		}
	}
}

func TestReorderStages_MissingKey(t *testing.T) {
	repo := newStubRepo()
	companyID, _ := seedBoard(repo, "new", "screening")
	svc := &PipelineService{Repo: repo}

	_, err := svc.ReorderStages(context.Background(), companyID, []string{"new", "bogus"})
	if !errors.Is(err, ErrStageNotFound) {
		t.Fatalf("err=%v want ErrStageNotFound", err)
	}
}

func TestStageKey(t *testing.T) {
	cases := map[string]string{
		"New":           "new",
		"Final Round":   "final_round",
		"  Tech  Int. ": "tech_int",
		"On-Site":       "on_site",
		"HIRED!":        "hired",
	}
	for in, want := range cases {
		if got := StageKey(in); got != want {
			t.Fatalf("StageKey(%q)=%q want=%q", in, got, want)
		}
	}
}

func listActivitiesFor(companyID, candidateID uint64) repository.ListActivitiesParams {
	return repository.ListActivitiesParams{
		CompanyID:   companyID,
		CandidateID: &candidateID,
	}
}
