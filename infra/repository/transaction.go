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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a deposit/withdrawal repository on the given session.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create implements repository.TransactionRepository.
func (r *transactionRepository) Create(ctx context.Context, tx *review.Transaction) error {
	row := mapTransactionToModel(tx)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

// Get implements repository.TransactionRepository.
func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*review.Transaction, error) {
	var row Transaction
	err := WrapError(func() error {
		return r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, review.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return mapTransactionToDomain(&row), nil
}

// List implements repository.TransactionRepository.
func (r *transactionRepository) List(ctx context.Context, filter repository.ListFilter) ([]*review.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&Transaction{})
	if filter.CustomerID != uuid.Nil {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	var rows []Transaction
	err := WrapError(func() error {
		return q.Order("created_at DESC").Limit(filter.PageSize()).Offset(filter.Offset).Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*review.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, mapTransactionToDomain(&rows[i]))
	}
	return out, nil
}

// Transition implements repository.TransactionRepository.
func (r *transactionRepository) Transition(
	ctx context.Context,
	id uuid.UUID,
	from, to review.Status,
) (bool, error) {
	now := time.Now().UTC()
	return swap(
		r.db.WithContext(ctx).Model(&Transaction{}).Where("id = ? AND status = ?", id, string(from)),
		map[string]any{"status": string(to), "resolved_at": now, "updated_at": now},
	)
}

// MarkSent implements repository.TransactionRepository.
func (r *transactionRepository) MarkSent(ctx context.Context, id uuid.UUID) (bool, error) {
	return swap(
		r.db.WithContext(ctx).Model(&Transaction{}).
			Where("id = ? AND type = ? AND status = ? AND sent = ?",
				id, string(review.KindWithdrawal), string(review.StatusCompleted), false),
		map[string]any{"sent": true, "updated_at": time.Now().UTC()},
	)
}

// Sum implements repository.TransactionRepository.
func (r *transactionRepository) Sum(
	ctx context.Context,
	kind review.Kind,
	status review.Status,
) (decimal.Decimal, error) {
	var agg sumRow
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Transaction{}).
			Select("SUM(amount) AS total").
			Where("type = ? AND status = ?", string(kind), string(status)).
			Scan(&agg).Error
	})
	if err != nil {
		return decimal.Zero, err
	}
	return agg.Total.Decimal, nil
}

func mapTransactionToModel(tx *review.Transaction) Transaction {
	return Transaction{
		ID:             tx.ID,
		CustomerID:     tx.CustomerID,
		AccountID:      tx.AccountID,
		TransactionRef: tx.Ref,
		Type:           string(tx.Type),
		Amount:         tx.Amount,
		Fee:            tx.Fee,
		NetAmount:      tx.NetAmount,
		Currency:       tx.Currency.String(),
		Status:         string(tx.Status),
		Address:        tx.Address,
		ProofRef:       tx.ProofRef,
		Description:    tx.Description,
		Sent:           tx.Sent,
		ResolvedAt:     tx.ResolvedAt,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
}

func mapTransactionToDomain(row *Transaction) *review.Transaction {
	return &review.Transaction{
		ID:          row.ID,
		CustomerID:  row.CustomerID,
		AccountID:   row.AccountID,
		Ref:         row.TransactionRef,
		Type:        review.Kind(row.Type),
		Amount:      row.Amount,
		Fee:         row.Fee,
		NetAmount:   row.NetAmount,
		Currency:    money.Code(row.Currency),
		Status:      review.Status(row.Status),
		Address:     row.Address,
		ProofRef:    row.ProofRef,
		Description: row.Description,
		Sent:        row.Sent,
		ResolvedAt:  row.ResolvedAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
