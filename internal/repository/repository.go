package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"talentpool/internal/models"
)

// Repository is the storage boundary for the whole service. Services that
// need multi-row atomicity run inside InTx and call the ...Tx variants with
// the transaction handle they are given.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Companies
	InsertCompanyTx(ctx context.Context, tx *gorm.DB, item *models.Company) error
	GetCompanyByID(ctx context.Context, id uint64) (*models.Company, error)
	ListCompanies(ctx context.Context, params ListCompaniesParams) ([]models.Company, error)
	CountCompanies(ctx context.Context, params ListCompaniesParams) (int64, error)

	// Candidates
	InsertCandidate(ctx context.Context, item *models.Candidate) error
	GetCandidateByID(ctx context.Context, id uint64) (*models.Candidate, error)
	ListCandidates(ctx context.Context, params ListCandidatesParams) ([]models.Candidate, error)
	CountCandidates(ctx context.Context, params ListCandidatesParams) (int64, error)

	// Token ledger
	InsertTokenBalanceTx(ctx context.Context, tx *gorm.DB, item *models.TokenBalance) error
	GetTokenBalance(ctx context.Context, companyID uint64) (*models.TokenBalance, error)
	GetTokenBalanceForUpdateTx(ctx context.Context, tx *gorm.DB, companyID uint64) (*models.TokenBalance, error)
	UpdateTokenBalanceTx(ctx context.Context, tx *gorm.DB, companyID uint64, balance int64) error
	InsertTokenTransactionTx(ctx context.Context, tx *gorm.DB, item *models.TokenTransaction) error
	ListTokenTransactions(ctx context.Context, params ListTokenTransactionsParams) ([]models.TokenTransaction, error)
	CountTokenTransactions(ctx context.Context, params ListTokenTransactionsParams) (int64, error)

	// Pipeline stages
	InsertStage(ctx context.Context, item *models.PipelineStage) error
	InsertStagesTx(ctx context.Context, tx *gorm.DB, items []models.PipelineStage) error
	ListStages(ctx context.Context, companyID uint64) ([]models.PipelineStage, error)
	GetStageByKey(ctx context.Context, companyID uint64, key string) (*models.PipelineStage, error)
	UpdateStageOrdinalTx(ctx context.Context, tx *gorm.DB, companyID uint64, key string, ordinal int) error
	MaxStageOrdinal(ctx context.Context, companyID uint64) (int, error)

	// Pipeline entries
	InsertPipelineEntryTx(ctx context.Context, tx *gorm.DB, item *models.PipelineEntry) error
	GetPipelineEntry(ctx context.Context, companyID, candidateID uint64) (*models.PipelineEntry, error)
	GetPipelineEntryForUpdateTx(ctx context.Context, tx *gorm.DB, companyID, candidateID uint64) (*models.PipelineEntry, error)
	ListPipelineEntries(ctx context.Context, params ListPipelineEntriesParams) ([]models.PipelineEntry, error)
	CountPipelineEntries(ctx context.Context, params ListPipelineEntriesParams) (int64, error)
	// MovePipelineEntryTx updates the stage only where current_stage_key still
	// equals fromKey and reports the rows touched, so callers can detect a
	// concurrent move instead of silently overwriting it.
	MovePipelineEntryTx(ctx context.Context, tx *gorm.DB, companyID, candidateID uint64, fromKey, toKey string, touchedAt time.Time) (int64, error)
	MarkEntryUnlockedTx(ctx context.Context, tx *gorm.DB, entryID uint64, at time.Time) error

	// Candidate notes
	InsertNoteTx(ctx context.Context, tx *gorm.DB, item *models.CandidateNote) error
	ListNotes(ctx context.Context, params ListNotesParams) ([]models.CandidateNote, error)
	CountNotes(ctx context.Context, params ListNotesParams) (int64, error)

	// Activity log
	InsertActivityTx(ctx context.Context, tx *gorm.DB, item *models.ActivityRecord) error
	ListActivities(ctx context.Context, params ListActivitiesParams) ([]models.ActivityRecord, error)
	CountActivities(ctx context.Context, params ListActivitiesParams) (int64, error)
	DeleteActivitiesBefore(ctx context.Context, before time.Time) (int64, error)

	// Job postings & applications
	InsertJobPosting(ctx context.Context, item *models.JobPosting) error
	GetJobPostingByID(ctx context.Context, id uint64) (*models.JobPosting, error)
	ListJobPostings(ctx context.Context, params ListJobPostingsParams) ([]models.JobPosting, error)
	CountJobPostings(ctx context.Context, params ListJobPostingsParams) (int64, error)
	UpdateJobPostingStatus(ctx context.Context, id uint64, status string) error
	InsertApplicationTx(ctx context.Context, tx *gorm.DB, item *models.Application) error
	GetApplication(ctx context.Context, jobPostingID, candidateID uint64) (*models.Application, error)
	ListApplications(ctx context.Context, params ListApplicationsParams) ([]models.Application, error)
	CountApplications(ctx context.Context, params ListApplicationsParams) (int64, error)
}

type ListCompaniesParams struct {
	Limit   int
	Offset  int
	Name    *string
	Plan    *string
	OrderBy string
	Asc     *bool
}

type ListCandidatesParams struct {
	Limit    int
	Offset   int
	Name     *string
	Location *string
	OrderBy  string
	Asc      *bool
}

type ListTokenTransactionsParams struct {
	Limit     int
	Offset    int
	CompanyID uint64
	EntryType *string
	Since     *time.Time
	OrderBy   string
	Asc       *bool
}

type ListPipelineEntriesParams struct {
	Limit     int
	Offset    int
	CompanyID uint64
	StageKey  *string
	Unlocked  *bool
	OrderBy   string
	Asc       *bool
}

type ListNotesParams struct {
	Limit       int
	Offset      int
	CompanyID   uint64
	CandidateID uint64
}

type ListActivitiesParams struct {
	Limit       int
	Offset      int
	CompanyID   uint64
	CandidateID *uint64
	Type        *string
	Since       *time.Time
}

type ListJobPostingsParams struct {
	Limit     int
	Offset    int
	CompanyID *uint64
	Status    *string
	Location  *string
	OrderBy   string
	Asc       *bool
}

type ListApplicationsParams struct {
	Limit        int
	Offset       int
	JobPostingID *uint64
	CompanyID    *uint64
	CandidateID  *uint64
	Status       *string
}
