package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/customer"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository on the given session.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

// Create implements repository.CustomerRepository.
func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	row := Customer{
		ID:                   c.ID,
		Email:                c.Email,
		Name:                 c.Name,
		PasswordHash:         c.PasswordHash,
		WithdrawPasswordHash: c.WithdrawPasswordHash,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

// Get implements repository.CustomerRepository.
func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail implements repository.CustomerRepository.
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *customerRepository) first(ctx context.Context, query string, args ...any) (*customer.Customer, error) {
	var row Customer
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Where(query, args...).First(&row).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, customer.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer.Customer{
		ID:                   row.ID,
		Email:                row.Email,
		Name:                 row.Name,
		PasswordHash:         row.PasswordHash,
		WithdrawPasswordHash: row.WithdrawPasswordHash,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}, nil
}

// UpdatePassword implements repository.CustomerRepository.
func (r *customerRepository) UpdatePassword(
	ctx context.Context,
	id uuid.UUID,
	update customer.PasswordUpdate,
) error {
	res := r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", id).
		Updates(map[string]any{
			update.Kind.Column(): update.Hash,
			"updated_at":         time.Now().UTC(),
		})
	if err := MapGormErrorToDomain(res.Error); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}
