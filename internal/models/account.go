package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType — тип счёта: к получению или к оплате.
type AccountType string

const (
	Receivable AccountType = "receivable"
	Payable    AccountType = "payable"
)

// AccountStatus — статус счёта. Переход pending → paid односторонний.
type AccountStatus string

const (
	AccountPending AccountStatus = "pending"
	AccountPaid    AccountStatus = "paid"
)

// Account — ожидаемое поступление или платёж со сроком.
type Account struct {
	ID        int64           `json:"id"`
	UserUID   string          `json:"-"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	Status    AccountStatus   `json:"status"`
	Overdue   bool            `json:"overdue"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsOverdue сообщает, просрочен ли неоплаченный счёт в момент now.
func (a *Account) IsOverdue(now time.Time) bool {
	return a.Status == AccountPending && a.DueDate != nil && a.DueDate.Before(now)
}

// Settlement строит транзакцию, которая отражает оплату счёта в момент at.
func (a *Account) Settlement(at time.Time) Transaction {
	typ := Expense
	if a.Type == Receivable {
		typ = Income
	}
	return Transaction{
		UserUID:     a.UserUID,
		Description: "Pagamento: " + a.Name,
		Amount:      a.Amount,
		Type:        typ,
		Category:    CategoryPayments,
		Date:        at.UTC(),
	}
}

// AccountRequest — данные для создания счёта. DueDate задаётся местной датой YYYY-MM-DD.
type AccountRequest struct {
	Name    string          `json:"name" validate:"required,max=100"`
	Type    AccountType     `json:"type" validate:"required,oneof=receivable payable"`
	Amount  decimal.Decimal `json:"amount" validate:"required,gt=0"`
	DueDate string          `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// AccountsOverview — счета, сгруппированные по типу, с суммами неоплаченных.
type AccountsOverview struct {
	Receivables      []*Account      `json:"receivables"`
	Payables         []*Account      `json:"payables"`
	TotalReceivables decimal.Decimal `json:"total_receivables"`
	TotalPayables    decimal.Decimal `json:"total_payables"`
}

// PendingTotal суммирует неоплаченные счета.
func PendingTotal(accounts []*Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a.Status == AccountPending {
			total = total.Add(a.Amount)
		}
	}
	return total
}
