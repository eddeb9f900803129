package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"talentpool/internal/models"
	"talentpool/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// InTx runs the callback with a nil handle; the ...Tx methods mutate the maps
// directly, which is enough for service-level tests.
type stubRepo struct {
	nextID       uint64
	companies    map[uint64]*models.Company
	candidates   map[uint64]*models.Candidate
	balances     map[uint64]*models.TokenBalance
	transactions []models.TokenTransaction
	stages       []*models.PipelineStage
	entries      []*models.PipelineEntry
	notes        []models.CandidateNote
	activities   []models.ActivityRecord
	jobs         map[uint64]*models.JobPosting
	applications []models.Application
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		companies:  map[uint64]*models.Company{},
		candidates: map[uint64]*models.Candidate{},
		balances:   map[uint64]*models.TokenBalance{},
		jobs:       map[uint64]*models.JobPosting{},
	}
}

func (s *stubRepo) id() uint64 {
	s.nextID++
	return s.nextID
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) InsertCompanyTx(ctx context.Context, tx *gorm.DB, item *models.Company) error {
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.companies[item.ID] = item
	return nil
}

func (s *stubRepo) GetCompanyByID(ctx context.Context, id uint64) (*models.Company, error) {
	return s.companies[id], nil
}

func (s *stubRepo) ListCompanies(ctx context.Context, params repository.ListCompaniesParams) ([]models.Company, error) {
	out := make([]models.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubRepo) CountCompanies(ctx context.Context, params repository.ListCompaniesParams) (int64, error) {
	return int64(len(s.companies)), nil
}

func (s *stubRepo) InsertCandidate(ctx context.Context, item *models.Candidate) error {
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.candidates[item.ID] = item
	return nil
}

func (s *stubRepo) GetCandidateByID(ctx context.Context, id uint64) (*models.Candidate, error) {
	return s.candidates[id], nil
}

func (s *stubRepo) ListCandidates(ctx context.Context, params repository.ListCandidatesParams) ([]models.Candidate, error) {
	out := make([]models.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubRepo) CountCandidates(ctx context.Context, params repository.ListCandidatesParams) (int64, error) {
	return int64(len(s.candidates)), nil
}

func (s *stubRepo) InsertTokenBalanceTx(ctx context.Context, tx *gorm.DB, item *models.TokenBalance) error {
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.balances[item.CompanyID] = item
	return nil
}

func (s *stubRepo) GetTokenBalance(ctx context.Context, companyID uint64) (*models.TokenBalance, error) {
	return s.balances[companyID], nil
}

func (s *stubRepo) GetTokenBalanceForUpdateTx(ctx context.Context, tx *gorm.DB, companyID uint64) (*models.TokenBalance, error) {
	return s.balances[companyID], nil
}

func (s *stubRepo) UpdateTokenBalanceTx(ctx context.Context, tx *gorm.DB, companyID uint64, balance int64) error {
	if bal, ok := s.balances[companyID]; ok {
		bal.Balance = balance
	}
	return nil
}

func (s *stubRepo) InsertTokenTransactionTx(ctx context.Context, tx *gorm.DB, item *models.TokenTransaction) error {
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.transactions = append(s.transactions, *item)
	return nil
}

func (s *stubRepo) ListTokenTransactions(ctx context.Context, params repository.ListTokenTransactionsParams) ([]models.TokenTransaction, error) {
	var out []models.TokenTransaction
	for i := len(s.transactions) - 1; i >= 0; i-- {
		if s.transactions[i].CompanyID == params.CompanyID {
			out = append(out, s.transactions[i])
		}
	}
	return out, nil
}

func (s *stubRepo) CountTokenTransactions(ctx context.Context, params repository.ListTokenTransactionsParams) (int64, error) {
	items, _ := s.ListTokenTransactions(ctx, params)
	return int64(len(items)), nil
}

func (s *stubRepo) InsertStage(ctx context.Context, item *models.PipelineStage) error {
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.stages = append(s.stages, item)
	return nil
}

func (s *stubRepo) InsertStagesTx(ctx context.Context, tx *gorm.DB, items []models.PipelineStage) error {
	for i := range items {
		st := items[i]
		if st.ID == 0 {
			st.ID = s.id()
		}
		s.stages = append(s.stages, &st)
	}
	return nil
}

func (s *stubRepo) ListStages(ctx context.Context, companyID uint64) ([]models.PipelineStage, error) {
	var out []models.PipelineStage
	for _, st := range s.stages {
		if st.CompanyID == companyID {
			out = append(out, *st)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ordinal != out[j].Ordinal {
			return out[i].Ordinal < out[j].Ordinal
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *stubRepo) GetStageByKey(ctx context.Context, companyID uint64, key string) (*models.PipelineStage, error) {
	for _, st := range s.stages {
		if st.CompanyID == companyID && st.Key == key {
			return st, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) UpdateStageOrdinalTx(ctx context.Context, tx *gorm.DB, companyID uint64, key string, ordinal int) error {
	for _, st := range s.stages {
		if st.CompanyID == companyID && st.Key == key {
			st.Ordinal = ordinal
		}
	}
	return nil
}

func (s *stubRepo) MaxStageOrdinal(ctx context.Context, companyID uint64) (int, error) {
	max := 0
	for _, st := range s.stages {
		if st.CompanyID == companyID && st.Ordinal > max {
			max = st.Ordinal
		}
	}
	return max, nil
}

func (s *stubRepo) InsertPipelineEntryTx(ctx context.Context, tx *gorm.DB, item *models.PipelineEntry) error {
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.entries = append(s.entries, item)
	return nil
}

func (s *stubRepo) GetPipelineEntry(ctx context.Context, companyID, candidateID uint64) (*models.PipelineEntry, error) {
	for _, e := range s.entries {
		if e.CompanyID == companyID && e.CandidateID == candidateID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) GetPipelineEntryForUpdateTx(ctx context.Context, tx *gorm.DB, companyID, candidateID uint64) (*models.PipelineEntry, error) {
	return s.GetPipelineEntry(ctx, companyID, candidateID)
}

func (s *stubRepo) ListPipelineEntries(ctx context.Context, params repository.ListPipelineEntriesParams) ([]models.PipelineEntry, error) {
	var out []models.PipelineEntry
	for _, e := range s.entries {
		if e.CompanyID == params.CompanyID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *stubRepo) CountPipelineEntries(ctx context.Context, params repository.ListPipelineEntriesParams) (int64, error) {
	items, _ := s.ListPipelineEntries(ctx, params)
	return int64(len(items)), nil
}

func (s *stubRepo) MovePipelineEntryTx(ctx context.Context, tx *gorm.DB, companyID, candidateID uint64, fromKey, toKey string, touchedAt time.Time) (int64, error) {
	for _, e := range s.entries {
		if e.CompanyID == companyID && e.CandidateID == candidateID && e.CurrentStageKey == fromKey {
			e.CurrentStageKey = toKey
			e.LastTouchedAt = touchedAt
			return 1, nil
		}
	}
	return 0, nil
}

func (s *stubRepo) MarkEntryUnlockedTx(ctx context.Context, tx *gorm.DB, entryID uint64, at time.Time) error {
	for _, e := range s.entries {
		if e.ID == entryID && e.UnlockedAt == nil {
			t := at
			e.UnlockedAt = &t
		}
	}
	return nil
}

func (s *stubRepo) InsertNoteTx(ctx context.Context, tx *gorm.DB, item *models.CandidateNote) error {
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.notes = append(s.notes, *item)
	return nil
}

func (s *stubRepo) ListNotes(ctx context.Context, params repository.ListNotesParams) ([]models.CandidateNote, error) {
	var out []models.CandidateNote
	for i := len(s.notes) - 1; i >= 0; i-- {
		n := s.notes[i]
		if n.CompanyID == params.CompanyID && n.CandidateID == params.CandidateID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubRepo) CountNotes(ctx context.Context, params repository.ListNotesParams) (int64, error) {
	items, _ := s.ListNotes(ctx, params)
	return int64(len(items)), nil
}

func (s *stubRepo) InsertActivityTx(ctx context.Context, tx *gorm.DB, item *models.ActivityRecord) error {
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.activities = append(s.activities, *item)
	return nil
}

func (s *stubRepo) ListActivities(ctx context.Context, params repository.ListActivitiesParams) ([]models.ActivityRecord, error) {
	var out []models.ActivityRecord
	for i := len(s.activities) - 1; i >= 0; i-- {
		a := s.activities[i]
		if a.CompanyID != params.CompanyID {
			continue
		}
		if params.CandidateID != nil && a.CandidateID != *params.CandidateID {
			continue
		}
		if params.Type != nil && a.Type != *params.Type {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *stubRepo) CountActivities(ctx context.Context, params repository.ListActivitiesParams) (int64, error) {
	items, _ := s.ListActivities(ctx, params)
	return int64(len(items)), nil
}

func (s *stubRepo) DeleteActivitiesBefore(ctx context.Context, before time.Time) (int64, error) {
	var kept []models.ActivityRecord
	var removed int64
	for _, a := range s.activities {
		if a.CreatedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	s.activities = kept
	return removed, nil
}

func (s *stubRepo) InsertJobPosting(ctx context.Context, item *models.JobPosting) error {
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.jobs[item.ID] = item
	return nil
}

func (s *stubRepo) GetJobPostingByID(ctx context.Context, id uint64) (*models.JobPosting, error) {
	return s.jobs[id], nil
}

func (s *stubRepo) ListJobPostings(ctx context.Context, params repository.ListJobPostingsParams) ([]models.JobPosting, error) {
	out := make([]models.JobPosting, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, *j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubRepo) CountJobPostings(ctx context.Context, params repository.ListJobPostingsParams) (int64, error) {
	return int64(len(s.jobs)), nil
}

func (s *stubRepo) UpdateJobPostingStatus(ctx context.Context, id uint64, status string) error {
	if j, ok := s.jobs[id]; ok {
		j.Status = status
	}
	return nil
}

func (s *stubRepo) InsertApplicationTx(ctx context.Context, tx *gorm.DB, item *models.Application) error {
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.applications = append(s.applications, *item)
	return nil
}

func (s *stubRepo) GetApplication(ctx context.Context, jobPostingID, candidateID uint64) (*models.Application, error) {
	for i := range s.applications {
		a := s.applications[i]
		if a.JobPostingID == jobPostingID && a.CandidateID == candidateID {
			return &a, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) ListApplications(ctx context.Context, params repository.ListApplicationsParams) ([]models.Application, error) {
	var out []models.Application
	for _, a := range s.applications {
		if params.JobPostingID != nil && a.JobPostingID != *params.JobPostingID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *stubRepo) CountApplications(ctx context.Context, params repository.ListApplicationsParams) (int64, error) {
	items, _ := s.ListApplications(ctx, params)
	return int64(len(items)), nil
}
