package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ikhfad/sporton-backend/internal/models"
	"github.com/ikhfad/sporton-backend/internal/repo"
	"github.com/ikhfad/sporton-backend/internal/transport"
)

// BankService manages the payment-destination reference data shown to
// customers at checkout. Pure CRUD, no invariants.
type BankService struct {
	Repo *repo.GormRepo
}

func (s *BankService) GetBank(ctx context.Context, id uuid.UUID) (*models.Bank, error) {
	return s.Repo.GetBank(ctx, id)
}

func (s *BankService) GetBanks(ctx context.Context, offset, limit int) (int64, []models.Bank, error) {
	return s.Repo.GetBanks(ctx, offset, limit)
}

func (s *BankService) CreateBank(ctx context.Context, req transport.CreateBankRequest) (*models.Bank, error) {
	if req.BankName == "" || req.AccountName == "" || req.AccountNumber == "" {
		return nil, fmt.Errorf("%w: bank_name, account_name and account_number are required", ErrValidation)
	}

	bank := &models.Bank{
		BankName:      req.BankName,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
	}

	if err := s.Repo.CreateBank(ctx, bank); err != nil {
		return nil, err
	}

	return bank, nil
}

func (s *BankService) UpdateBank(ctx context.Context, id uuid.UUID, req transport.UpdateBankRequest) (*models.Bank, error) {
	bank, err := s.Repo.GetBank(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BankName != nil {
		bank.BankName = *req.BankName
	}
	if req.AccountName != nil {
		bank.AccountName = *req.AccountName
	}
	if req.AccountNumber != nil {
		bank.AccountNumber = *req.AccountNumber
	}

	if err := s.Repo.SaveBank(ctx, bank); err != nil {
		return nil, err
	}

	return bank, nil
}

func (s *BankService) DeleteBank(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteBank(ctx, id)
}
