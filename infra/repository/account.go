package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/account"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository on the given session.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// GetOrCreate implements repository.AccountRepository.
func (r *accountRepository) GetOrCreate(
	ctx context.Context,
	customerID uuid.UUID,
	currency money.Code,
) (*account.Account, error) {
	fresh, err := account.New().WithCustomerID(customerID).WithCurrency(currency).Build()
	if err != nil {
		return nil, err
	}
	row := mapAccountToModel(fresh)
	err = WrapError(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "customer_id"}, {Name: "currency"}},
				DoNothing: true,
			}).
			Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByCurrency(ctx, customerID, currency)
}

// Get implements repository.AccountRepository.
func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByCurrency implements repository.AccountRepository.
func (r *accountRepository) GetByCurrency(
	ctx context.Context,
	customerID uuid.UUID,
	currency money.Code,
) (*account.Account, error) {
	return r.first(ctx, "customer_id = ? AND currency = ?", customerID, currency.String())
}

// GetByNo implements repository.AccountRepository.
func (r *accountRepository) GetByNo(ctx context.Context, accountNo string) (*account.Account, error) {
	return r.first(ctx, "account_no = ?", accountNo)
}

func (r *accountRepository) first(ctx context.Context, query string, args ...any) (*account.Account, error) {
	var row Account
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Where(query, args...).First(&row).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return mapAccountToDomain(&row), nil
}

// ListByCustomer implements repository.AccountRepository.
func (r *accountRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*account.Account, error) {
	var rows []Account
	err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("customer_id = ?", customerID).
			Order("created_at").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*account.Account, 0, len(rows))
	for i := range rows {
		out = append(out, mapAccountToDomain(&rows[i]))
	}
	return out, nil
}

// ApplyDelta implements repository.AccountRepository.
//
// The guard and the increment are one UPDATE, so concurrent writers
// serialize on the row lock and each sees the other's committed result.
func (r *accountRepository) ApplyDelta(
	ctx context.Context,
	id uuid.UUID,
	delta account.Delta,
) (*account.Account, error) {
	if delta.IsZero() && delta.MinBalance.IsZero() {
		return r.Get(ctx, id)
	}
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Where("balance + ? >= 0", delta.Balance).
		Where("inreview_balance + ? >= 0", delta.InReview).
		Where("balance >= ?", delta.MinBalance).
		Updates(map[string]any{
			"balance":          gorm.Expr("balance + ?", delta.Balance),
			"inreview_balance": gorm.Expr("inreview_balance + ?", delta.InReview),
			"updated_at":       time.Now().UTC(),
		})
	if err := MapGormErrorToDomain(res.Error); err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, account.ErrInsufficientFunds
	}
	return r.Get(ctx, id)
}

// SetActive implements repository.AccountRepository.
func (r *accountRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": active, "updated_at": time.Now().UTC()})
	if err := MapGormErrorToDomain(res.Error); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func mapAccountToModel(a *account.Account) Account {
	return Account{
		ID:              a.ID,
		CustomerID:      a.CustomerID,
		AccountNo:       a.AccountNo,
		Currency:        a.Currency.String(),
		Balance:         a.Balance,
		InreviewBalance: a.InReview,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func mapAccountToDomain(row *Account) *account.Account {
	return &account.Account{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		AccountNo:  row.AccountNo,
		Currency:   money.Code(row.Currency),
		Balance:    row.Balance,
		InReview:   row.InreviewBalance,
		IsActive:   row.IsActive,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
