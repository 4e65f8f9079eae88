package repository

import (
	"context"
	"reflect"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Repositories obtained from the UnitOfWork handed to Do share its
// transaction, so every write inside fn commits or rolls back together.
// Outside Do they run on the plain connection.
//
//	repoAny, err := uow.GetRepository(reflect.TypeOf((*AccountRepository)(nil)).Elem())
//	repo := repoAny.(AccountRepository)
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error
	// the transaction is rolled back and the error returned unchanged.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current session.
	GetRepository(repoType reflect.Type) (any, error)

	AccountRepository() (AccountRepository, error)
	TradeRepository() (TradeRepository, error)
	SettingRepository() (SettingRepository, error)
	TransactionRepository() (TransactionRepository, error)
	ExchangeRepository() (ExchangeRepository, error)
	CustomerRepository() (CustomerRepository, error)
	NotificationRepository() (NotificationRepository, error)
}
