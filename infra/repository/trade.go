package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type tradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a trade repository on the given session.
func NewTradeRepository(db *gorm.DB) repository.TradeRepository {
	return &tradeRepository{db: db}
}

// Create implements repository.TradeRepository.
func (r *tradeRepository) Create(ctx context.Context, t *trade.Trade) error {
	row := mapTradeToModel(t)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

// Get implements repository.TradeRepository.
func (r *tradeRepository) Get(ctx context.Context, id uuid.UUID) (*trade.Trade, error) {
	return r.first(ctx, "id = ?", id)
}

// GetForCustomer implements repository.TradeRepository.
func (r *tradeRepository) GetForCustomer(ctx context.Context, id, customerID uuid.UUID) (*trade.Trade, error) {
	return r.first(ctx, "id = ? AND customer_id = ?", id, customerID)
}

func (r *tradeRepository) first(ctx context.Context, query string, args ...any) (*trade.Trade, error) {
	var row Trade
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Where(query, args...).First(&row).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, trade.ErrTradeNotFound
	}
	if err != nil {
		return nil, err
	}
	return mapTradeToDomain(&row), nil
}

// List implements repository.TradeRepository.
func (r *tradeRepository) List(ctx context.Context, filter repository.ListFilter) ([]*trade.Trade, error) {
	q := r.db.WithContext(ctx).Model(&Trade{})
	if filter.CustomerID != uuid.Nil {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("trading_status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("trade_type = ?", filter.Type)
	}
	var rows []Trade
	err := WrapError(func() error {
		return q.Order("created_at DESC").
			Limit(filter.PageSize()).
			Offset(filter.Offset).
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*trade.Trade, 0, len(rows))
	for i := range rows {
		out = append(out, mapTradeToDomain(&rows[i]))
	}
	return out, nil
}

// Complete implements repository.TradeRepository.
func (r *tradeRepository) Complete(
	ctx context.Context,
	id uuid.UUID,
	isSuccess bool,
	profit decimal.Decimal,
	profitApplied bool,
) (bool, error) {
	now := time.Now().UTC()
	return swap(
		r.db.WithContext(ctx).Model(&Trade{}).
			Where("id = ? AND trading_status = ?", id, string(trade.StatusPending)),
		map[string]any{
			"trading_status": string(trade.StatusCompleted),
			"is_success":     isSuccess,
			"profit":         profit,
			"profit_applied": profitApplied,
			"settled_at":     now,
			"updated_at":     now,
		})
}

// MarkProfitApplied implements repository.TradeRepository.
func (r *tradeRepository) MarkProfitApplied(ctx context.Context, id uuid.UUID, profit decimal.Decimal) (bool, error) {
	now := time.Now().UTC()
	return swap(
		r.db.WithContext(ctx).Model(&Trade{}).
			Where("id = ? AND trading_status = ? AND profit_applied = ?", id, string(trade.StatusCompleted), false),
		map[string]any{
			"profit":         profit,
			"profit_applied": true,
			"settled_at":     now,
			"updated_at":     now,
		})
}

// Fail implements repository.TradeRepository.
func (r *tradeRepository) Fail(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now().UTC()
	return swap(
		r.db.WithContext(ctx).Model(&Trade{}).
			Where("id = ? AND trading_status = ?", id, string(trade.StatusPending)),
		map[string]any{
			"trading_status": string(trade.StatusFailed),
			"settled_at":     now,
			"updated_at":     now,
		})
}

// swap runs a conditional update and reports whether it matched exactly one row.
func swap(q *gorm.DB, updates map[string]any) (bool, error) {
	res := q.Updates(updates)
	if err := MapGormErrorToDomain(res.Error); err != nil {
		return false, err
	}
	return res.RowsAffected == 1, nil
}

// ListPending implements repository.TradeRepository.
func (r *tradeRepository) ListPending(ctx context.Context, createdBefore time.Time) ([]*trade.Trade, error) {
	var rows []Trade
	err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("trading_status = ? AND created_at < ?", string(trade.StatusPending), createdBefore).
			Order("created_at").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*trade.Trade, 0, len(rows))
	for i := range rows {
		out = append(out, mapTradeToDomain(&rows[i]))
	}
	return out, nil
}

// Totals implements repository.TradeRepository.
func (r *tradeRepository) Totals(ctx context.Context) (int64, decimal.Decimal, error) {
	var count int64
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Trade{}).Count(&count).Error
	}); err != nil {
		return 0, decimal.Zero, err
	}
	var agg sumRow
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Trade{}).
			Select("SUM(trade_quantity) AS total").
			Scan(&agg).Error
	}); err != nil {
		return 0, decimal.Zero, err
	}
	return count, agg.Total.Decimal, nil
}

type sumRow struct {
	Total decimal.NullDecimal
}

func mapTradeToModel(t *trade.Trade) Trade {
	return Trade{
		ID:            t.ID,
		CustomerID:    t.CustomerID,
		AccountID:     t.AccountID,
		Currency:      t.Currency.String(),
		TradeType:     string(t.Type),
		Period:        t.Period,
		TradeQuantity: t.Quantity,
		TradingStatus: string(t.Status),
		IsSuccess:     t.IsSuccess,
		Profit:        t.Profit,
		ProfitApplied: t.ProfitApplied,
		SettledAt:     t.SettledAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func mapTradeToDomain(row *Trade) *trade.Trade {
	return &trade.Trade{
		ID:            row.ID,
		CustomerID:    row.CustomerID,
		AccountID:     row.AccountID,
		Currency:      money.Code(row.Currency),
		Type:          trade.Type(row.TradeType),
		Period:        row.Period,
		Quantity:      row.TradeQuantity,
		Status:        trade.Status(row.TradingStatus),
		IsSuccess:     row.IsSuccess,
		Profit:        row.Profit,
		ProfitApplied: row.ProfitApplied,
		SettledAt:     row.SettledAt,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
