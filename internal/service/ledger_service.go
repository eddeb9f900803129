package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"talentpool/internal/models"
	"talentpool/internal/repository"
)

// LedgerService is the only mutation path for token balances. Every change
// locks the balance row, writes the new balance, and appends a
// TokenTransaction in the same database transaction, so the balance can never
// go negative and the history always reconciles.
type LedgerService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (s *LedgerService) GetBalance(ctx context.Context, companyID uint64) (*models.TokenBalance, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	bal, err := s.Repo.GetTokenBalance(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if bal == nil {
		return nil, ErrCompanyNotFound
	}
	return bal, nil
}

// Credit adds tokens, e.g. when a plan purchase lands. Amounts <= 0 are
// rejected by returning the current balance untouched.
func (s *LedgerService) Credit(ctx context.Context, companyID uint64, amount int64) (*models.TokenBalance, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	if amount <= 0 {
		return s.GetBalance(ctx, companyID)
	}
	var out *models.TokenBalance
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		bal, err := s.Repo.GetTokenBalanceForUpdateTx(ctx, tx, companyID)
		if err != nil {
			return err
		}
		if bal == nil {
			return ErrCompanyNotFound
		}
		now := time.Now().UTC()
		newBalance := bal.Balance + amount
		if err := s.Repo.UpdateTokenBalanceTx(ctx, tx, companyID, newBalance); err != nil {
			return err
		}
		if err := s.Repo.InsertTokenTransactionTx(ctx, tx, &models.TokenTransaction{
			CompanyID:    companyID,
			EntryType:    models.TokenEntryPlanCredit,
			Amount:       amount,
			BalanceAfter: newBalance,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
		bal.Balance = newBalance
		bal.UpdatedAt = now
		out = bal
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("token credit applied",
			zap.Uint64("company_id", companyID),
			zap.Int64("amount", amount),
			zap.Int64("balance", out.Balance),
		)
	}
	return out, nil
}

// DebitUnlockTx charges one unlock at the company's configured rate. It must
// run inside the caller's transaction: the balance row stays locked until the
// unlock mark and the activity append commit together. No partial debit: if
// balance < tokens_per_unlock nothing is written.
func (s *LedgerService) DebitUnlockTx(ctx context.Context, tx *gorm.DB, companyID, candidateID uint64, at time.Time) (spent, balanceAfter int64, err error) {
	if s == nil || s.Repo == nil {
		return 0, 0, nil
	}
	bal, err := s.Repo.GetTokenBalanceForUpdateTx(ctx, tx, companyID)
	if err != nil {
		return 0, 0, err
	}
	if bal == nil {
		return 0, 0, ErrCompanyNotFound
	}
	cost := bal.TokensPerUnlock
	if bal.Balance < cost {
		return 0, 0, ErrInsufficientBalance
	}
	balanceAfter = bal.Balance - cost
	if err := s.Repo.UpdateTokenBalanceTx(ctx, tx, companyID, balanceAfter); err != nil {
		return 0, 0, err
	}
	if err := s.Repo.InsertTokenTransactionTx(ctx, tx, &models.TokenTransaction{
		CompanyID:    companyID,
		CandidateID:  &candidateID,
		EntryType:    models.TokenEntryUnlockDebit,
		Amount:       cost,
		BalanceAfter: balanceAfter,
		CreatedAt:    at,
	}); err != nil {
		return 0, 0, err
	}
	return cost, balanceAfter, nil
}

// CreditInitialTx seeds the signup grant during company onboarding.
func (s *LedgerService) CreditInitialTx(ctx context.Context, tx *gorm.DB, companyID uint64, grant, tokensPerUnlock int64, at time.Time) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	if err := s.Repo.InsertTokenBalanceTx(ctx, tx, &models.TokenBalance{
		CompanyID:       companyID,
		Balance:         grant,
		TokensPerUnlock: tokensPerUnlock,
		CreatedAt:       at,
		UpdatedAt:       at,
	}); err != nil {
		return err
	}
	if grant <= 0 {
		return nil
	}
	return s.Repo.InsertTokenTransactionTx(ctx, tx, &models.TokenTransaction{
		CompanyID:    companyID,
		EntryType:    models.TokenEntryPlanCredit,
		Amount:       grant,
		BalanceAfter: grant,
		CreatedAt:    at,
	})
}
