// Package events defines the facts the ledger publishes after a commit.
// They are notifications only; nothing downstream may move money.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is anything the bus can carry.
type Event interface {
	Type() string
}

// EventType represents the type of an event in the system.
type EventType string

func (t EventType) String() string { return string(t) }

const (
	EventTypeTradeCreated        EventType = "Trade.Created"
	EventTypeTradeSettled        EventType = "Trade.Settled"
	EventTypeTradeFailed         EventType = "Trade.Failed"
	EventTypeDepositRequested    EventType = "Deposit.Requested"
	EventTypeWithdrawalRequested EventType = "Withdrawal.Requested"
	EventTypeExchangeRequested   EventType = "Exchange.Requested"
	EventTypeReviewResolved      EventType = "Review.Resolved"
	EventTypeWithdrawalSent      EventType = "Withdrawal.Sent"
)

// Meta is embedded in every event.
type Meta struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventID identifies one emission of an event.
func (m Meta) EventID() uuid.UUID { return m.ID }

// Owner is the partition key for ordered transports.
func (m Meta) Owner() string {
	if m.CustomerID == uuid.Nil {
		return ""
	}
	return m.CustomerID.String()
}

// NewMeta stamps a fresh event id and time.
func NewMeta(customerID uuid.UUID) Meta {
	return Meta{ID: uuid.New(), CustomerID: customerID, Timestamp: time.Now().UTC()}
}

type TradeCreated struct {
	Meta
	TradeID   uuid.UUID       `json:"trade_id"`
	AccountID uuid.UUID       `json:"account_id"`
	Currency  string          `json:"currency"`
	TradeType string          `json:"trade_type"`
	Period    int             `json:"period"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type TradeSettled struct {
	Meta
	TradeID   uuid.UUID       `json:"trade_id"`
	AccountID uuid.UUID       `json:"account_id"`
	Currency  string          `json:"currency"`
	IsSuccess bool            `json:"is_success"`
	Profit    decimal.Decimal `json:"profit"`
	Manual    bool            `json:"manual"`
}

type TradeFailed struct {
	Meta
	TradeID uuid.UUID `json:"trade_id"`
	Reason  string    `json:"reason"`
}

type DepositRequested struct {
	Meta
	TransactionID uuid.UUID       `json:"transaction_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}

type WithdrawalRequested struct {
	Meta
	TransactionID uuid.UUID       `json:"transaction_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	Currency      string          `json:"currency"`
	Address       string          `json:"address"`
}

type ExchangeRequested struct {
	Meta
	ExchangeID      uuid.UUID       `json:"exchange_id"`
	FromCurrency    string          `json:"from_currency"`
	ToCurrency      string          `json:"to_currency"`
	Amount          decimal.Decimal `json:"amount"`
	ExchangedAmount decimal.Decimal `json:"exchanged_amount"`
	Status          string          `json:"status"`
}

type ReviewResolved struct {
	Meta
	Kind     string    `json:"kind"`
	RecordID uuid.UUID `json:"record_id"`
	Decision string    `json:"decision"`
	Status   string    `json:"status"`
}

type WithdrawalSent struct {
	Meta
	TransactionID uuid.UUID `json:"transaction_id"`
}

func (TradeCreated) Type() string        { return EventTypeTradeCreated.String() }
func (TradeSettled) Type() string        { return EventTypeTradeSettled.String() }
func (TradeFailed) Type() string         { return EventTypeTradeFailed.String() }
func (DepositRequested) Type() string    { return EventTypeDepositRequested.String() }
func (WithdrawalRequested) Type() string { return EventTypeWithdrawalRequested.String() }
func (ExchangeRequested) Type() string   { return EventTypeExchangeRequested.String() }
func (ReviewResolved) Type() string      { return EventTypeReviewResolved.String() }
func (WithdrawalSent) Type() string      { return EventTypeWithdrawalSent.String() }

// EventTypes builds empty events for decoding envelopes from redis or kafka.
var EventTypes = map[EventType]func() Event{
	EventTypeTradeCreated:        func() Event { return &TradeCreated{} },
	EventTypeTradeSettled:        func() Event { return &TradeSettled{} },
	EventTypeTradeFailed:         func() Event { return &TradeFailed{} },
	EventTypeDepositRequested:    func() Event { return &DepositRequested{} },
	EventTypeWithdrawalRequested: func() Event { return &WithdrawalRequested{} },
	EventTypeExchangeRequested:   func() Event { return &ExchangeRequested{} },
	EventTypeReviewResolved:      func() Event { return &ReviewResolved{} },
	EventTypeWithdrawalSent:      func() Event { return &WithdrawalSent{} },
}

// All lists every event type, in declaration order.
func All() []EventType {
	return []EventType{
		EventTypeTradeCreated,
		EventTypeTradeSettled,
		EventTypeTradeFailed,
		EventTypeDepositRequested,
		EventTypeWithdrawalRequested,
		EventTypeExchangeRequested,
		EventTypeReviewResolved,
		EventTypeWithdrawalSent,
	}
}
