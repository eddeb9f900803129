package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"talentpool/internal/models"
)

func seedUnlockFixture(repo *stubRepo, balance, perUnlock int64) (companyID, candidateID uint64) {
	company := &models.Company{Name: "Acme"}
	_ = repo.InsertCompanyTx(context.Background(), nil, company)
	candidate := &models.Candidate{FullName: "Dana Fields", Email: "dana@example.com"}
	_ = repo.InsertCandidate(context.Background(), candidate)
	_ = repo.InsertTokenBalanceTx(context.Background(), nil, &models.TokenBalance{
		CompanyID:       company.ID,
		Balance:         balance,
		TokensPerUnlock: perUnlock,
	})
	_ = repo.InsertPipelineEntryTx(context.Background(), nil, &models.PipelineEntry{
		CompanyID:       company.ID,
		CandidateID:     candidate.ID,
		CurrentStageKey: "new",
		LastTouchedAt:   time.Now().UTC(),
	})
	return company.ID, candidate.ID
}

func TestUnlockCandidate_DebitsAndMarks(t *testing.T) {
	repo := newStubRepo()
	companyID, candidateID := seedUnlockFixture(repo, 5, 5)
	svc := &UnlockService{Repo: repo, Ledger: &LedgerService{Repo: repo}}

	entry, err := svc.UnlockCandidate(context.Background(), companyID, candidateID)
	if err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if entry == nil || entry.UnlockedAt == nil {
		t.Fatalf("entry not marked unlocked: %+v", entry)
	}
	if got := repo.balances[companyID].Balance; got != 0 {
		t.Fatalf("balance=%d want=0", got)
	}
	if len(repo.transactions) != 1 {
		t.Fatalf("transactions=%d want=1", len(repo.transactions))
	}
	txn := repo.transactions[0]
	if txn.EntryType != models.TokenEntryUnlockDebit || txn.Amount != 5 || txn.BalanceAfter != 0 {
		t.Fatalf("unexpected transaction: %+v", txn)
	}
	if txn.CandidateID == nil || *txn.CandidateID != candidateID {
		t.Fatalf("transaction candidate=%v want=%d", txn.CandidateID, candidateID)
	}
	if len(repo.activities) != 1 {
		t.Fatalf("activities=%d want=1", len(repo.activities))
	}
	rec := repo.activities[0]
	if rec.Type != models.ActivityCandidateUnlocked {
		t.Fatalf("activity type=%s", rec.Type)
	}
	var payload CandidateUnlockedPayload
	if err := json.Unmarshal(rec.Payload, &payload); err != nil {
		t.Fatalf("payload unmarshal: %v", err)
	}
	if payload.TokensSpent != 5 || payload.BalanceAfter != 0 {
		t.Fatalf("payload=%+v", payload)
	}
}

func TestUnlockCandidate_SecondCallAlreadyUnlocked(t *testing.T) {
	repo := newStubRepo()
	companyID, candidateID := seedUnlockFixture(repo, 10, 5)
	svc := &UnlockService{Repo: repo, Ledger: &LedgerService{Repo: repo}}

	if _, err := svc.UnlockCandidate(context.Background(), companyID, candidateID); err != nil {
		t.Fatalf("first unlock failed: %v", err)
	}
	entry, err := svc.UnlockCandidate(context.Background(), companyID, candidateID)
	if !errors.Is(err, ErrAlreadyUnlocked) {
		t.Fatalf("err=%v want ErrAlreadyUnlocked", err)
	}
	if entry == nil || entry.UnlockedAt == nil {
		t.Fatalf("existing entry not returned: %+v", entry)
	}
	// No second charge.
	if got := repo.balances[companyID].Balance; got != 5 {
		t.Fatalf("balance=%d want=5", got)
	}
	if len(repo.transactions) != 1 {
		t.Fatalf("transactions=%d want=1", len(repo.transactions))
	}
}

func TestUnlockCandidate_InsufficientBalance(t *testing.T) {
	repo := newStubRepo()
	companyID, candidateID := seedUnlockFixture(repo, 3, 5)
	svc := &UnlockService{Repo: repo, Ledger: &LedgerService{Repo: repo}}

	_, err := svc.UnlockCandidate(context.Background(), companyID, candidateID)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err=%v want ErrInsufficientBalance", err)
	}
	if got := repo.balances[companyID].Balance; got != 3 {
		t.Fatalf("balance=%d want=3 (untouched)", got)
	}
	entry, _ := repo.GetPipelineEntry(context.Background(), companyID, candidateID)
	if entry.UnlockedAt != nil {
		t.Fatalf("entry unlocked despite failed debit")
	}
	if len(repo.transactions) != 0 || len(repo.activities) != 0 {
		t.Fatalf("ledger/activity written on failure: txns=%d activities=%d",
			len(repo.transactions), len(repo.activities))
	}
}

func TestUnlockCandidate_UnknownEntry(t *testing.T) {
	repo := newStubRepo()
	companyID, _ := seedUnlockFixture(repo, 5, 5)
	svc := &UnlockService{Repo: repo, Ledger: &LedgerService{Repo: repo}}

	_, err := svc.UnlockCandidate(context.Background(), companyID, 9999)
	if !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("err=%v want ErrCandidateNotFound", err)
	}
}
