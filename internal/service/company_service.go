package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"talentpool/internal/config"
	"talentpool/internal/models"
	"talentpool/internal/repository"
)

// CompanyService handles onboarding: the company row, its seeded default
// stages, and the signup token grant land in one transaction.
type CompanyService struct {
	Repo          repository.Repository
	Ledger        *LedgerService
	Logger        *zap.Logger
	Tokens        config.TokensConfig
	DefaultStages []string
}

func (s *CompanyService) Onboard(ctx context.Context, name, plan string) (*models.Company, error) {
	if s == nil || s.Repo == nil || s.Ledger == nil {
		return nil, nil
	}
	now := time.Now().UTC()
	company := &models.Company{
		Name:      strings.TrimSpace(name),
		Plan:      strings.TrimSpace(plan),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if company.Plan == "" {
		company.Plan = "starter"
	}
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.InsertCompanyTx(ctx, tx, company); err != nil {
			return err
		}
		if err := s.Ledger.CreditInitialTx(ctx, tx, company.ID, s.Tokens.SignupGrant, s.Tokens.TokensPerUnlock, now); err != nil {
			return err
		}
		stages := make([]models.PipelineStage, 0, len(s.DefaultStages))
		for i, stageName := range s.DefaultStages {
			stages = append(stages, models.PipelineStage{
				CompanyID: company.ID,
				Key:       StageKey(stageName),
				Name:      stageName,
				Ordinal:   i + 1,
				CreatedAt: now,
			})
		}
		return s.Repo.InsertStagesTx(ctx, tx, stages)
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("company onboarded",
			zap.Uint64("company_id", company.ID),
			zap.String("plan", company.Plan),
		)
	}
	return company, nil
}
