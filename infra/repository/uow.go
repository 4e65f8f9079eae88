package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/brokerage/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
//
// Inside Do every repository is built on the transaction handle, outside it
// on the root connection. Services never see *gorm.DB.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			typeOf[repository.AccountRepository]():      func(db *gorm.DB) any { return NewAccountRepository(db) },
			typeOf[repository.TradeRepository]():        func(db *gorm.DB) any { return NewTradeRepository(db) },
			typeOf[repository.SettingRepository]():      func(db *gorm.DB) any { return NewSettingRepository(db) },
			typeOf[repository.TransactionRepository]():  func(db *gorm.DB) any { return NewTransactionRepository(db) },
			typeOf[repository.ExchangeRepository]():     func(db *gorm.DB) any { return NewExchangeRepository(db) },
			typeOf[repository.CustomerRepository]():     func(db *gorm.DB) any { return NewCustomerRepository(db) },
			typeOf[repository.NotificationRepository](): func(db *gorm.DB) any { return NewNotificationRepository(db) },
		},
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Do runs fn in a transaction boundary, providing a UoW bound to it.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		// already inside a transaction; join it
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// GetRepository returns the repository registered for repoType, bound to the
// current session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func get[T any](u *UoW) (T, error) {
	var zero T
	repoAny, err := u.GetRepository(typeOf[T]())
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("repository %T does not implement %v", repoAny, typeOf[T]())
	}
	return repo, nil
}

func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return get[repository.AccountRepository](u)
}

func (u *UoW) TradeRepository() (repository.TradeRepository, error) {
	return get[repository.TradeRepository](u)
}

func (u *UoW) SettingRepository() (repository.SettingRepository, error) {
	return get[repository.SettingRepository](u)
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return get[repository.TransactionRepository](u)
}

func (u *UoW) ExchangeRepository() (repository.ExchangeRepository, error) {
	return get[repository.ExchangeRepository](u)
}

func (u *UoW) CustomerRepository() (repository.CustomerRepository, error) {
	return get[repository.CustomerRepository](u)
}

func (u *UoW) NotificationRepository() (repository.NotificationRepository, error) {
	return get[repository.NotificationRepository](u)
}

var _ repository.UnitOfWork = (*UoW)(nil)
