// Package notification turns ledger events into admin inbox entries and
// forwards them to a chat sink.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/amirasaad/brokerage/pkg/domain/events"
	"github.com/amirasaad/brokerage/pkg/domain/notification"
	"github.com/amirasaad/brokerage/pkg/eventbus"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/google/uuid"
)

// Sender delivers a rendered notification somewhere a human reads it.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Service persists notifications and lists the admin inbox.
type Service struct {
	uow     repository.UnitOfWork
	sender  Sender
	tracker *eventbus.IdempotencyTracker
	logger  *slog.Logger
}

// New creates a notification Service. sender may be nil.
func New(uow repository.UnitOfWork, sender Sender, logger *slog.Logger) *Service {
	return &Service{
		uow:     uow,
		sender:  sender,
		tracker: eventbus.NewIdempotencyTracker(),
		logger:  logger.With("service", "notification"),
	}
}

// Register subscribes the service to every ledger event. Redelivered events
// are recognized by their id and stored once.
func (s *Service) Register(bus eventbus.Bus) {
	for _, t := range events.All() {
		bus.Register(t, eventbus.WithIdempotency(s.Handle, s.tracker, eventbus.ByEventID, "notification", s.logger))
	}
}

// Handle stores one event as a notification. A failing sink is logged and
// does not fail the handler; a failing store does.
func (s *Service) Handle(ctx context.Context, e events.Event) error {
	e = deref(e)
	text := Render(e)
	n := notification.New(ownerOf(e), e.Type(), text)

	repo, err := s.uow.NotificationRepository()
	if err != nil {
		return err
	}
	if err := repo.Create(ctx, n); err != nil {
		s.logger.Error("failed to persist notification", "event_type", e.Type(), "error", err)
		return err
	}
	if s.sender != nil {
		if err := s.sender.Send(ctx, text); err != nil {
			s.logger.Warn("notification sink failed", "event_type", e.Type(), "error", err)
		}
	}
	return nil
}

// List returns the newest notifications first.
func (s *Service) List(ctx context.Context, unreadOnly bool, limit int) ([]*notification.Notification, error) {
	repo, err := s.uow.NotificationRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, unreadOnly, limit)
}

// CountUnread returns how many notifications nobody read yet.
func (s *Service) CountUnread(ctx context.Context) (int64, error) {
	repo, err := s.uow.NotificationRepository()
	if err != nil {
		return 0, err
	}
	return repo.CountUnread(ctx)
}

// MarkRead marks one notification read.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	repo, err := s.uow.NotificationRepository()
	if err != nil {
		return err
	}
	return repo.MarkRead(ctx, id)
}

// MarkAllRead empties the unread inbox.
func (s *Service) MarkAllRead(ctx context.Context) error {
	repo, err := s.uow.NotificationRepository()
	if err != nil {
		return err
	}
	return repo.MarkAllRead(ctx)
}

// Render formats an event as a one-line admin message.
func Render(e events.Event) string {
	switch ev := deref(e).(type) {
	case events.TradeCreated:
		return fmt.Sprintf("New %s trade of %s %s for %ds", ev.TradeType, ev.Quantity, ev.Currency, ev.Period)
	case events.TradeSettled:
		result := "lost"
		if ev.IsSuccess {
			result = "won"
		}
		return fmt.Sprintf("Trade %s %s, profit %s %s", ev.TradeID, result, ev.Profit, ev.Currency)
	case events.TradeFailed:
		return fmt.Sprintf("Trade %s failed: %s", ev.TradeID, ev.Reason)
	case events.DepositRequested:
		return fmt.Sprintf("Deposit of %s %s awaits review", ev.Amount, ev.Currency)
	case events.WithdrawalRequested:
		return fmt.Sprintf("Withdrawal of %s %s (net %s) to %s awaits review", ev.Amount, ev.Currency, ev.NetAmount, ev.Address)
	case events.ExchangeRequested:
		return fmt.Sprintf("Exchange of %s %s into %s %s is %s",
			ev.Amount, ev.FromCurrency, ev.ExchangedAmount, ev.ToCurrency, ev.Status)
	case events.ReviewResolved:
		return fmt.Sprintf("%s %s resolved: %s", ev.Kind, ev.RecordID, ev.Status)
	case events.WithdrawalSent:
		return fmt.Sprintf("Withdrawal %s sent", ev.TransactionID)
	default:
		return e.Type()
	}
}

// deref turns the pointer events the durable buses decode into values.
func deref(e events.Event) events.Event {
	v := reflect.ValueOf(e)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return e
	}
	if ev, ok := v.Elem().Interface().(events.Event); ok {
		return ev
	}
	return e
}

func ownerOf(e events.Event) uuid.UUID {
	owned, ok := e.(interface{ Owner() string })
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(owned.Owner())
	if err != nil {
		return uuid.Nil
	}
	return id
}
