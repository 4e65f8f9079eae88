// Package customer handles signup, profiles and the two customer passwords.
package customer

import (
	"context"
	"log/slog"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/account"
	"github.com/amirasaad/brokerage/pkg/domain/customer"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/google/uuid"
)

// Service manages customers.
type Service struct {
	uow             repository.UnitOfWork
	defaultCurrency money.Code
	logger          *slog.Logger
}

// New creates a customer Service. Every new customer gets an empty USDT account.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		uow:             uow,
		defaultCurrency: money.USDT,
		logger:          logger.With("service", "customer"),
	}
}

// SignupRequest carries the fields of a new customer.
type SignupRequest struct {
	Email    string
	Name     string
	Password string
}

// Signup stores the customer together with their default account.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*customer.Customer, *account.Account, error) {
	c, err := customer.New(req.Email, req.Name, req.Password)
	if err != nil {
		return nil, nil, err
	}
	var acc *account.Account
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = accRepo.GetOrCreate(ctx, c.ID, s.defaultCurrency)
		return err
	})
	if err != nil {
		s.logger.Warn("signup failed", "email", c.Email, "error", err)
		return nil, nil, domain.Aborted(err)
	}
	s.logger.Info("customer signed up", "customer_id", c.ID, "account_id", acc.ID)
	return c, acc, nil
}

// Get returns a customer by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	repo, err := s.uow.CustomerRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// Accounts lists the customer's accounts, one per currency.
func (s *Service) Accounts(ctx context.Context, id uuid.UUID) ([]*account.Account, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByCustomer(ctx, id)
}

// ChangePassword replaces the login or withdraw password. The current
// secret is required except when a withdraw password is set for the first time.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, change customer.PasswordChange) error {
	repo, err := s.uow.CustomerRepository()
	if err != nil {
		return err
	}
	c, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	update, err := c.Resolve(change)
	if err != nil {
		s.logger.Info("password change rejected", "customer_id", id, "kind", change.Kind, "error", err)
		return err
	}
	if err := repo.UpdatePassword(ctx, id, update); err != nil {
		return err
	}
	s.logger.Info("password changed", "customer_id", id, "kind", change.Kind)
	return nil
}

// SetWithdrawPassword sets the withdraw password once. Later changes go
// through ChangePassword.
func (s *Service) SetWithdrawPassword(ctx context.Context, id uuid.UUID, password string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.HasWithdrawPassword() {
		return customer.ErrWithdrawPasswordAlreadySet
	}
	return s.ChangePassword(ctx, id, customer.PasswordChange{Kind: customer.WithdrawPassword, New: password})
}

// HasWithdrawPassword reports whether the customer set a withdraw password.
func (s *Service) HasWithdrawPassword(ctx context.Context, id uuid.UUID) (bool, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return c.HasWithdrawPassword(), nil
}

// CheckWithdrawPassword verifies the secret guarding withdrawals.
func (s *Service) CheckWithdrawPassword(ctx context.Context, id uuid.UUID, password string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !c.HasWithdrawPassword() {
		return customer.ErrWithdrawPasswordNotSet
	}
	if !c.CheckPassword(customer.WithdrawPassword, password) {
		return customer.ErrPasswordMismatch
	}
	return nil
}
