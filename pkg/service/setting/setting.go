// Package setting serves the trading configuration: general flags, per-pair
// trading settings and per-customer win rates.
package setting

import (
	"context"
	"log/slog"

	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/domain/setting"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service reads and writes trading configuration.
type Service struct {
	uow      repository.UnitOfWork
	defaults setting.Flags
	logger   *slog.Logger
}

// New creates a Service. cfg supplies the flag values used until an admin
// stores an override.
func New(uow repository.UnitOfWork, cfg *config.Trading, logger *slog.Logger) *Service {
	defaults := setting.Flags{OpenToTrade: true, AutoDecideWinLose: true}
	if cfg != nil {
		defaults = setting.Flags{OpenToTrade: cfg.OpenToTrade, AutoDecideWinLose: cfg.AutoDecideWinLose}
	}
	return &Service{uow: uow, defaults: defaults, logger: logger.With("service", "setting")}
}

// Flags returns a snapshot of the general flags. Callers read it once per
// operation and pass it down.
func (s *Service) Flags(ctx context.Context) (setting.Flags, error) {
	repo, err := s.uow.SettingRepository()
	if err != nil {
		return s.defaults, err
	}
	values, err := repo.Values(ctx)
	if err != nil {
		s.logger.Error("failed to load general settings", "error", err)
		return s.defaults, err
	}
	return s.defaults.Apply(values), nil
}

// SetFlag stores a general flag.
func (s *Service) SetFlag(ctx context.Context, name, value string) error {
	normalized, err := setting.Validate(name, value)
	if err != nil {
		return err
	}
	repo, err := s.uow.SettingRepository()
	if err != nil {
		return err
	}
	if err := repo.SetValue(ctx, name, normalized); err != nil {
		return err
	}
	s.logger.Info("general setting updated", "name", name, "value", normalized)
	return nil
}

// TradingSettings lists every materialized (period, type) setting.
func (s *Service) TradingSettings(ctx context.Context) ([]*trade.Setting, error) {
	repo, err := s.uow.SettingRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListTradingSettings(ctx)
}

// UpdateTradingSetting changes the payout or win rate of one pair. Nil
// fields keep their stored value.
type UpdateTradingSetting struct {
	Period     int
	Type       trade.Type
	Percentage *decimal.Decimal
	WinRate    *float64
}

// UpdateTradingSetting materializes the pair if needed and applies the change.
func (s *Service) UpdateTradingSetting(ctx context.Context, req UpdateTradingSetting) (ts *trade.Setting, err error) {
	logger := s.logger.With("period", req.Period, "trade_type", req.Type)
	if req.WinRate != nil {
		if err := trade.ValidateWinRate(*req.WinRate); err != nil {
			return nil, err
		}
	}
	if req.Percentage != nil && req.Percentage.IsNegative() {
		return nil, trade.ErrInvalidPercentage
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.SettingRepository()
		if err != nil {
			return err
		}
		ts, err = repo.TradingSetting(ctx, req.Period, req.Type)
		if err != nil {
			return err
		}
		if req.WinRate != nil {
			ts.WinRate = *req.WinRate
		}
		if req.Percentage != nil {
			ts.Percentage = *req.Percentage
		}
		return repo.SaveTradingSetting(ctx, ts)
	})
	if err != nil {
		logger.Error("UpdateTradingSetting failed", "error", err)
		return nil, err
	}
	logger.Info("trading setting updated", "percentage", ts.Percentage, "win_rate", ts.WinRate)
	return ts, nil
}

// CustomerWinRate returns the customer's gate, materializing the default.
func (s *Service) CustomerWinRate(ctx context.Context, customerID uuid.UUID) (float64, error) {
	repo, err := s.uow.SettingRepository()
	if err != nil {
		return 0, err
	}
	return repo.CustomerWinRate(ctx, customerID)
}

// SetCustomerWinRate overrides the customer's gate.
func (s *Service) SetCustomerWinRate(ctx context.Context, customerID uuid.UUID, rate float64) error {
	if err := trade.ValidateWinRate(rate); err != nil {
		return err
	}
	repo, err := s.uow.SettingRepository()
	if err != nil {
		return err
	}
	if err := repo.SetCustomerWinRate(ctx, customerID, rate); err != nil {
		return err
	}
	s.logger.Info("customer win rate updated", "customer_id", customerID, "win_rate", rate)
	return nil
}
