package service

import (
	"context"
	"testing"

	"talentpool/internal/config"
	"talentpool/internal/models"
)

func TestOnboard_SeedsStagesAndGrant(t *testing.T) {
	repo := newStubRepo()
	svc := &CompanyService{
		Repo:          repo,
		Ledger:        &LedgerService{Repo: repo},
		Tokens:        config.TokensConfig{SignupGrant: 20, TokensPerUnlock: 5},
		DefaultStages: []string{"New", "Screening", "Interview", "Offer", "Hired"},
	}

	company, err := svc.Onboard(context.Background(), "  Acme  ", "")
	if err != nil {
		t.Fatalf("onboard failed: %v", err)
	}
	if company.Name != "Acme" || company.Plan != "starter" {
		t.Fatalf("company=%+v", company)
	}

	bal := repo.balances[company.ID]
	if bal == nil || bal.Balance != 20 || bal.TokensPerUnlock != 5 {
		t.Fatalf("balance row=%+v", bal)
	}
	if len(repo.transactions) != 1 || repo.transactions[0].EntryType != models.TokenEntryPlanCredit {
		t.Fatalf("transactions=%+v", repo.transactions)
	}

	stages, _ := repo.ListStages(context.Background(), company.ID)
	if len(stages) != 5 {
		t.Fatalf("stages=%d want=5", len(stages))
	}
	if stages[0].Key != "new" || stages[4].Key != "hired" {
		t.Fatalf("stage keys=%v", stages)
	}
	for i, st := range stages {
		if st.Ordinal != i+1 {
			t.Fatalf("stage %s ordinal=%d want=%d", st.Key, st.Ordinal, i+1)
		}
	}
}
