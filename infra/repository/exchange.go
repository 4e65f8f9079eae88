package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/review"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type exchangeRepository struct {
	db *gorm.DB
}

// NewExchangeRepository creates an exchange repository on the given session.
func NewExchangeRepository(db *gorm.DB) repository.ExchangeRepository {
	return &exchangeRepository{db: db}
}

// Create implements repository.ExchangeRepository.
func (r *exchangeRepository) Create(ctx context.Context, ex *review.Exchange) error {
	row := Exchange{
		ID:              ex.ID,
		CustomerID:      ex.CustomerID,
		FromAccountID:   ex.FromAccountID,
		ToAccountID:     ex.ToAccountID,
		FromAccountNo:   ex.FromAccountNo,
		ToAccountNo:     ex.ToAccountNo,
		FromCurrency:    ex.FromCurrency.String(),
		ToCurrency:      ex.ToCurrency.String(),
		Amount:          ex.Amount,
		ExchangedAmount: ex.ExchangedAmount,
		ExchangeRate:    ex.Rate,
		ExchangeType:    ex.Type,
		ExchangeStatus:  string(ex.Status),
		Policy:          string(ex.Policy),
		ResolvedAt:      ex.ResolvedAt,
		CreatedAt:       ex.CreatedAt,
		UpdatedAt:       ex.UpdatedAt,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

// Get implements repository.ExchangeRepository.
func (r *exchangeRepository) Get(ctx context.Context, id uuid.UUID) (*review.Exchange, error) {
	var row Exchange
	err := WrapError(func() error {
		return r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, review.ErrExchangeNotFound
	}
	if err != nil {
		return nil, err
	}
	return mapExchangeToDomain(&row), nil
}

// List implements repository.ExchangeRepository.
func (r *exchangeRepository) List(ctx context.Context, filter repository.ListFilter) ([]*review.Exchange, error) {
	q := r.db.WithContext(ctx).Model(&Exchange{})
	if filter.CustomerID != uuid.Nil {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("exchange_status = ?", filter.Status)
	}
	var rows []Exchange
	err := WrapError(func() error {
		return q.Order("created_at DESC").Limit(filter.PageSize()).Offset(filter.Offset).Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*review.Exchange, 0, len(rows))
	for i := range rows {
		out = append(out, mapExchangeToDomain(&rows[i]))
	}
	return out, nil
}

// Transition implements repository.ExchangeRepository.
func (r *exchangeRepository) Transition(
	ctx context.Context,
	id uuid.UUID,
	from, to review.ExchangeStatus,
) (bool, error) {
	now := time.Now().UTC()
	return swap(
		r.db.WithContext(ctx).Model(&Exchange{}).Where("id = ? AND exchange_status = ?", id, string(from)),
		map[string]any{"exchange_status": string(to), "resolved_at": now, "updated_at": now},
	)
}

func mapExchangeToDomain(row *Exchange) *review.Exchange {
	return &review.Exchange{
		ID:              row.ID,
		CustomerID:      row.CustomerID,
		FromAccountID:   row.FromAccountID,
		ToAccountID:     row.ToAccountID,
		FromAccountNo:   row.FromAccountNo,
		ToAccountNo:     row.ToAccountNo,
		FromCurrency:    money.Code(row.FromCurrency),
		ToCurrency:      money.Code(row.ToCurrency),
		Amount:          row.Amount,
		ExchangedAmount: row.ExchangedAmount,
		Rate:            row.ExchangeRate,
		Type:            row.ExchangeType,
		Status:          review.ExchangeStatus(row.ExchangeStatus),
		Policy:          review.Policy(row.Policy),
		ResolvedAt:      row.ResolvedAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
