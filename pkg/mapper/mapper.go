// Package mapper turns domain entities into the read models in pkg/dto.
package mapper

import (
	"github.com/amirasaad/brokerage/pkg/domain/account"
	"github.com/amirasaad/brokerage/pkg/domain/customer"
	"github.com/amirasaad/brokerage/pkg/domain/notification"
	"github.com/amirasaad/brokerage/pkg/domain/review"
	"github.com/amirasaad/brokerage/pkg/domain/setting"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/dto"
	reviewsvc "github.com/amirasaad/brokerage/pkg/service/review"
	tradesvc "github.com/amirasaad/brokerage/pkg/service/trade"
)

// All maps a slice with fn.
func All[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

func Account(a *account.Account) dto.AccountRead {
	return dto.AccountRead{
		ID:        a.ID,
		AccountNo: a.AccountNo,
		Currency:  a.Currency.String(),
		Balance:   a.Balance,
		InReview:  a.InReview,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

func Customer(c *customer.Customer) dto.CustomerRead {
	return dto.CustomerRead{
		ID:                  c.ID,
		Email:               c.Email,
		Name:                c.Name,
		HasWithdrawPassword: c.HasWithdrawPassword(),
		CreatedAt:           c.CreatedAt,
	}
}

func Notification(n *notification.Notification) dto.NotificationRead {
	return dto.NotificationRead{
		ID:         n.ID,
		CustomerID: n.CustomerID,
		Kind:       n.Kind,
		Message:    n.Message,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}

func Trade(t *trade.Trade) dto.TradeRead {
	return dto.TradeRead{
		ID:            t.ID,
		CustomerID:    t.CustomerID,
		AccountID:     t.AccountID,
		Currency:      t.Currency.String(),
		TradeType:     string(t.Type),
		Period:        t.Period,
		Quantity:      t.Quantity,
		Status:        string(t.Status),
		IsSuccess:     t.IsSuccess,
		Result:        t.Result(),
		Profit:        t.Profit,
		ProfitApplied: t.ProfitApplied,
		SettledAt:     t.SettledAt,
		CreatedAt:     t.CreatedAt,
	}
}

func TradeOpened(r *tradesvc.CreateTradeResult) dto.TradeOpened {
	out := dto.TradeOpened{Trade: Trade(r.Trade), Sequence: r.Sequence}
	if r.Setting != nil {
		out.Percentage = r.Setting.Percentage
	}
	return out
}

func TradeSettled(r *tradesvc.SettleTradeResult) dto.TradeSettled {
	out := dto.TradeSettled{Trade: Trade(r.Trade), Result: r.Result, Profit: r.Profit}
	if r.Account != nil {
		acc := Account(r.Account)
		out.Account = &acc
	}
	return out
}

func TradingSetting(s *trade.Setting) dto.TradingSettingRead {
	return dto.TradingSettingRead{
		Period:     s.Seconds,
		TradeType:  string(s.Type),
		Percentage: s.Percentage,
		WinRate:    s.WinRate,
	}
}

func Flags(f setting.Flags) dto.FlagsRead {
	return dto.FlagsRead{OpenToTrade: f.OpenToTrade, AutoDecideWinLose: f.AutoDecideWinLose}
}

func Transaction(t *review.Transaction) dto.TransactionRead {
	return dto.TransactionRead{
		ID:          t.ID,
		CustomerID:  t.CustomerID,
		AccountID:   t.AccountID,
		Ref:         t.Ref,
		Type:        string(t.Type),
		Currency:    t.Currency.String(),
		Amount:      t.Amount,
		Fee:         t.Fee,
		NetAmount:   t.NetAmount,
		Status:      string(t.Status),
		Address:     t.Address,
		ProofRef:    t.ProofRef,
		Description: t.Description,
		Sent:        t.Sent,
		ResolvedAt:  t.ResolvedAt,
		CreatedAt:   t.CreatedAt,
	}
}

func Exchange(e *review.Exchange) dto.ExchangeRead {
	return dto.ExchangeRead{
		ID:              e.ID,
		CustomerID:      e.CustomerID,
		FromAccountNo:   e.FromAccountNo,
		ToAccountNo:     e.ToAccountNo,
		FromCurrency:    e.FromCurrency.String(),
		ToCurrency:      e.ToCurrency.String(),
		Amount:          e.Amount,
		ExchangedAmount: e.ExchangedAmount,
		Rate:            e.Rate,
		Status:          string(e.Status),
		Policy:          string(e.Policy),
		ResolvedAt:      e.ResolvedAt,
		CreatedAt:       e.CreatedAt,
	}
}

func Resolution(r *reviewsvc.Resolution) dto.ResolutionRead {
	out := dto.ResolutionRead{Kind: string(r.Kind), ID: r.ID, Status: r.Status}
	if r.Transaction != nil {
		tx := Transaction(r.Transaction)
		out.Transaction = &tx
	}
	if r.Exchange != nil {
		ex := Exchange(r.Exchange)
		out.Exchange = &ex
	}
	return out
}
