package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"talentpool/internal/models"
	"talentpool/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- companies --------------------------------------------------------------

func (s *Store) InsertCompanyTx(ctx context.Context, tx *gorm.DB, item *models.Company) error {
	if s == nil || tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) GetCompanyByID(ctx context.Context, id uint64) (*models.Company, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Company
	err := s.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListCompanies(ctx context.Context, params repository.ListCompaniesParams) ([]models.Company, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyCompanyFilters(s.db.WithContext(ctx).Model(&models.Company{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	var items []models.Company
	if err := query.Limit(normalizeLimit(params.Limit, 50)).Offset(normalizeOffset(params.Offset)).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountCompanies(ctx context.Context, params repository.ListCompaniesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyCompanyFilters(s.db.WithContext(ctx).Model(&models.Company{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyCompanyFilters(query *gorm.DB, params repository.ListCompaniesParams) *gorm.DB {
	if params.Name != nil && strings.TrimSpace(*params.Name) != "" {
		query = query.Where("name ILIKE ?", "%"+strings.TrimSpace(*params.Name)+"%")
	}
	if params.Plan != nil && strings.TrimSpace(*params.Plan) != "" {
		query = query.Where("plan = ?", strings.TrimSpace(*params.Plan))
	}
	return query
}

// --- candidates -------------------------------------------------------------

func (s *Store) InsertCandidate(ctx context.Context, item *models.Candidate) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetCandidateByID(ctx context.Context, id uint64) (*models.Candidate, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Candidate
	err := s.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListCandidates(ctx context.Context, params repository.ListCandidatesParams) ([]models.Candidate, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyCandidateFilters(s.db.WithContext(ctx).Model(&models.Candidate{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	var items []models.Candidate
	if err := query.Limit(normalizeLimit(params.Limit, 50)).Offset(normalizeOffset(params.Offset)).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountCandidates(ctx context.Context, params repository.ListCandidatesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyCandidateFilters(s.db.WithContext(ctx).Model(&models.Candidate{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyCandidateFilters(query *gorm.DB, params repository.ListCandidatesParams) *gorm.DB {
	if params.Name != nil && strings.TrimSpace(*params.Name) != "" {
		query = query.Where("full_name ILIKE ?", "%"+strings.TrimSpace(*params.Name)+"%")
	}
	if params.Location != nil && strings.TrimSpace(*params.Location) != "" {
		query = query.Where("location ILIKE ?", "%"+strings.TrimSpace(*params.Location)+"%")
	}
	return query
}

// --- token ledger -----------------------------------------------------------

func (s *Store) InsertTokenBalanceTx(ctx context.Context, tx *gorm.DB, item *models.TokenBalance) error {
	if s == nil || tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) GetTokenBalance(ctx context.Context, companyID uint64) (*models.TokenBalance, error) {
	if s == nil || s.db == nil || companyID == 0 {
		return nil, nil
	}
	var item models.TokenBalance
	err := s.db.WithContext(ctx).
		Model(&models.TokenBalance{}).
		Where("company_id = ?", companyID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetTokenBalanceForUpdateTx(ctx context.Context, tx *gorm.DB, companyID uint64) (*models.TokenBalance, error) {
	if s == nil || tx == nil || companyID == 0 {
		return nil, nil
	}
	var item models.TokenBalance
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ?", companyID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateTokenBalanceTx(ctx context.Context, tx *gorm.DB, companyID uint64, balance int64) error {
	if s == nil || tx == nil || companyID == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Model(&models.TokenBalance{}).
		Where("company_id = ?", companyID).
		Updates(map[string]any{"balance": balance, "updated_at": time.Now().UTC()}).
		Error
}

func (s *Store) InsertTokenTransactionTx(ctx context.Context, tx *gorm.DB, item *models.TokenTransaction) error {
	if s == nil || tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) ListTokenTransactions(ctx context.Context, params repository.ListTokenTransactionsParams) ([]models.TokenTransaction, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyTokenTransactionFilters(s.db.WithContext(ctx).Model(&models.TokenTransaction{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	var items []models.TokenTransaction
	if err := query.Limit(normalizeLimit(params.Limit, 100)).Offset(normalizeOffset(params.Offset)).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountTokenTransactions(ctx context.Context, params repository.ListTokenTransactionsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyTokenTransactionFilters(s.db.WithContext(ctx).Model(&models.TokenTransaction{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyTokenTransactionFilters(query *gorm.DB, params repository.ListTokenTransactionsParams) *gorm.DB {
	if params.CompanyID > 0 {
		query = query.Where("company_id = ?", params.CompanyID)
	}
	if params.EntryType != nil && strings.TrimSpace(*params.EntryType) != "" {
		query = query.Where("entry_type = ?", strings.TrimSpace(*params.EntryType))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	return query
}

// --- pipeline stages --------------------------------------------------------

func (s *Store) InsertStage(ctx context.Context, item *models.PipelineStage) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) InsertStagesTx(ctx context.Context, tx *gorm.DB, items []models.PipelineStage) error {
	if s == nil || tx == nil || len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (s *Store) ListStages(ctx context.Context, companyID uint64) ([]models.PipelineStage, error) {
	if s == nil || s.db == nil || companyID == 0 {
		return nil, nil
	}
	var items []models.PipelineStage
	// Stable board order: ordinal, then insertion order for ties.
	if err := s.db.WithContext(ctx).
		Model(&models.PipelineStage{}).
		Where("company_id = ?", companyID).
		Order("ordinal asc").
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetStageByKey(ctx context.Context, companyID uint64, key string) (*models.PipelineStage, error) {
	if s == nil || s.db == nil || companyID == 0 || strings.TrimSpace(key) == "" {
		return nil, nil
	}
	var item models.PipelineStage
	err := s.db.WithContext(ctx).
		Model(&models.PipelineStage{}).
		Where("company_id = ? AND key = ?", companyID, strings.TrimSpace(key)).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateStageOrdinalTx(ctx context.Context, tx *gorm.DB, companyID uint64, key string, ordinal int) error {
	if s == nil || tx == nil || companyID == 0 || strings.TrimSpace(key) == "" {
		return nil
	}
	return tx.WithContext(ctx).
		Model(&models.PipelineStage{}).
		Where("company_id = ? AND key = ?", companyID, strings.TrimSpace(key)).
		Update("ordinal", ordinal).
		Error
}

func (s *Store) MaxStageOrdinal(ctx context.Context, companyID uint64) (int, error) {
	if s == nil || s.db == nil || companyID == 0 {
		return 0, nil
	}
	var max *int
	if err := s.db.WithContext(ctx).
		Model(&models.PipelineStage{}).
		Where("company_id = ?", companyID).
		Select("MAX(ordinal)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// --- pipeline entries -------------------------------------------------------

func (s *Store) InsertPipelineEntryTx(ctx context.Context, tx *gorm.DB, item *models.PipelineEntry) error {
	if s == nil || tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) GetPipelineEntry(ctx context.Context, companyID, candidateID uint64) (*models.PipelineEntry, error) {
	if s == nil || s.db == nil || companyID == 0 || candidateID == 0 {
		return nil, nil
	}
	var item models.PipelineEntry
	err := s.db.WithContext(ctx).
		Model(&models.PipelineEntry{}).
		Where("company_id = ? AND candidate_id = ?", companyID, candidateID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetPipelineEntryForUpdateTx(ctx context.Context, tx *gorm.DB, companyID, candidateID uint64) (*models.PipelineEntry, error) {
	if s == nil || tx == nil || companyID == 0 || candidateID == 0 {
		return nil, nil
	}
	var item models.PipelineEntry
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND candidate_id = ?", companyID, candidateID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListPipelineEntries(ctx context.Context, params repository.ListPipelineEntriesParams) ([]models.PipelineEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyPipelineEntryFilters(s.db.WithContext(ctx).Model(&models.PipelineEntry{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "last_touched_at")
	var items []models.PipelineEntry
	if err := query.Limit(normalizeLimit(params.Limit, 200)).Offset(normalizeOffset(params.Offset)).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPipelineEntries(ctx context.Context, params repository.ListPipelineEntriesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyPipelineEntryFilters(s.db.WithContext(ctx).Model(&models.PipelineEntry{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyPipelineEntryFilters(query *gorm.DB, params repository.ListPipelineEntriesParams) *gorm.DB {
	if params.CompanyID > 0 {
		query = query.Where("company_id = ?", params.CompanyID)
	}
	if params.StageKey != nil && strings.TrimSpace(*params.StageKey) != "" {
		query = query.Where("current_stage_key = ?", strings.TrimSpace(*params.StageKey))
	}
	if params.Unlocked != nil {
		if *params.Unlocked {
			query = query.Where("unlocked_at IS NOT NULL")
		} else {
			query = query.Where("unlocked_at IS NULL")
		}
	}
	return query
}

func (s *Store) MovePipelineEntryTx(ctx context.Context, tx *gorm.DB, companyID, candidateID uint64, fromKey, toKey string, touchedAt time.Time) (int64, error) {
	if s == nil || tx == nil || companyID == 0 || candidateID == 0 {
		return 0, nil
	}
	res := tx.WithContext(ctx).
		Model(&models.PipelineEntry{}).
		Where("company_id = ? AND candidate_id = ?", companyID, candidateID).
		Where("current_stage_key = ?", fromKey).
		Updates(map[string]any{
			"current_stage_key": toKey,
			"last_touched_at":   touchedAt,
		})
	return res.RowsAffected, res.Error
}

func (s *Store) MarkEntryUnlockedTx(ctx context.Context, tx *gorm.DB, entryID uint64, at time.Time) error {
	if s == nil || tx == nil || entryID == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Model(&models.PipelineEntry{}).
		Where("id = ?", entryID).
		Where("unlocked_at IS NULL").
		Update("unlocked_at", at).
		Error
}

// --- candidate notes --------------------------------------------------------

func (s *Store) InsertNoteTx(ctx context.Context, tx *gorm.DB, item *models.CandidateNote) error {
	if s == nil || tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) ListNotes(ctx context.Context, params repository.ListNotesParams) ([]models.CandidateNote, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.CandidateNote
	if err := s.db.WithContext(ctx).
		Model(&models.CandidateNote{}).
		Where("company_id = ? AND candidate_id = ?", params.CompanyID, params.CandidateID).
		Order("created_at desc").
		Order("id desc").
		Limit(normalizeLimit(params.Limit, 100)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountNotes(ctx context.Context, params repository.ListNotesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.db.WithContext(ctx).
		Model(&models.CandidateNote{}).
		Where("company_id = ? AND candidate_id = ?", params.CompanyID, params.CandidateID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// --- activity log -----------------------------------------------------------

func (s *Store) InsertActivityTx(ctx context.Context, tx *gorm.DB, item *models.ActivityRecord) error {
	if s == nil || tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) ListActivities(ctx context.Context, params repository.ListActivitiesParams) ([]models.ActivityRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyActivityFilters(s.db.WithContext(ctx).Model(&models.ActivityRecord{}), params)
	var items []models.ActivityRecord
	if err := query.
		Order("created_at desc").
		Order("id desc").
		Limit(normalizeLimit(params.Limit, 100)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountActivities(ctx context.Context, params repository.ListActivitiesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyActivityFilters(s.db.WithContext(ctx).Model(&models.ActivityRecord{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyActivityFilters(query *gorm.DB, params repository.ListActivitiesParams) *gorm.DB {
	if params.CompanyID > 0 {
		query = query.Where("company_id = ?", params.CompanyID)
	}
	if params.CandidateID != nil && *params.CandidateID > 0 {
		query = query.Where("candidate_id = ?", *params.CandidateID)
	}
	if params.Type != nil && strings.TrimSpace(*params.Type) != "" {
		query = query.Where("type = ?", strings.TrimSpace(*params.Type))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	return query
}

func (s *Store) DeleteActivitiesBefore(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil || before.IsZero() {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&models.ActivityRecord{})
	return res.RowsAffected, res.Error
}

// --- job postings & applications --------------------------------------------

func (s *Store) InsertJobPosting(ctx context.Context, item *models.JobPosting) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetJobPostingByID(ctx context.Context, id uint64) (*models.JobPosting, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.JobPosting
	err := s.db.WithContext(ctx).
		Model(&models.JobPosting{}).
		Where("id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListJobPostings(ctx context.Context, params repository.ListJobPostingsParams) ([]models.JobPosting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyJobPostingFilters(s.db.WithContext(ctx).Model(&models.JobPosting{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	var items []models.JobPosting
	if err := query.Limit(normalizeLimit(params.Limit, 50)).Offset(normalizeOffset(params.Offset)).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountJobPostings(ctx context.Context, params repository.ListJobPostingsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyJobPostingFilters(s.db.WithContext(ctx).Model(&models.JobPosting{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyJobPostingFilters(query *gorm.DB, params repository.ListJobPostingsParams) *gorm.DB {
	if params.CompanyID != nil && *params.CompanyID > 0 {
		query = query.Where("company_id = ?", *params.CompanyID)
	}
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	if params.Location != nil && strings.TrimSpace(*params.Location) != "" {
		query = query.Where("location ILIKE ?", "%"+strings.TrimSpace(*params.Location)+"%")
	}
	return query
}

func (s *Store) UpdateJobPostingStatus(ctx context.Context, id uint64, status string) error {
	if s == nil || s.db == nil || id == 0 || strings.TrimSpace(status) == "" {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.JobPosting{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": strings.TrimSpace(status), "updated_at": time.Now().UTC()}).
		Error
}

func (s *Store) InsertApplicationTx(ctx context.Context, tx *gorm.DB, item *models.Application) error {
	if s == nil || tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) GetApplication(ctx context.Context, jobPostingID, candidateID uint64) (*models.Application, error) {
	if s == nil || s.db == nil || jobPostingID == 0 || candidateID == 0 {
		return nil, nil
	}
	var item models.Application
	err := s.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("job_posting_id = ? AND candidate_id = ?", jobPostingID, candidateID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListApplications(ctx context.Context, params repository.ListApplicationsParams) ([]models.Application, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyApplicationFilters(s.db.WithContext(ctx).Model(&models.Application{}), params)
	var items []models.Application
	if err := query.
		Order("created_at desc").
		Limit(normalizeLimit(params.Limit, 50)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountApplications(ctx context.Context, params repository.ListApplicationsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyApplicationFilters(s.db.WithContext(ctx).Model(&models.Application{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyApplicationFilters(query *gorm.DB, params repository.ListApplicationsParams) *gorm.DB {
	if params.JobPostingID != nil && *params.JobPostingID > 0 {
		query = query.Where("job_posting_id = ?", *params.JobPostingID)
	}
	if params.CompanyID != nil && *params.CompanyID > 0 {
		query = query.Where("company_id = ?", *params.CompanyID)
	}
	if params.CandidateID != nil && *params.CandidateID > 0 {
		query = query.Where("candidate_id = ?", *params.CandidateID)
	}
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	return query
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
