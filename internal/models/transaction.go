package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType — направление движения денег.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Категории транзакций.
const (
	CategorySales     = "vendas"
	CategoryServices  = "servicos"
	CategoryMarketing = "marketing"
	CategorySuppliers = "fornecedores"
	CategoryTaxes     = "impostos"
	CategoryGeneral   = "despesas_gerais"
	CategoryOther     = "outros"
	CategoryPayments  = "pagamentos"
)

// UncategorizedLabel — подпись для транзакций без категории при выводе.
const UncategorizedLabel = "Sem categoria"

// Category — категория с подписью для интерфейса.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var categories = []Category{
	{CategorySales, "Vendas"},
	{CategoryServices, "Serviços"},
	{CategoryMarketing, "Marketing"},
	{CategorySuppliers, "Fornecedores"},
	{CategoryTaxes, "Impostos"},
	{CategoryGeneral, "Despesas Gerais"},
	{CategoryOther, "Outros"},
	{CategoryPayments, "Pagamentos"},
}

// Categories возвращает список допустимых категорий.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// CategoryLabel возвращает подпись категории, для пустой возвращает "Sem categoria".
func CategoryLabel(id string) string {
	if id == "" {
		return UncategorizedLabel
	}
	for _, c := range categories {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}

// Transaction — запись о доходе или расходе. Date хранится в UTC.
type Transaction struct {
	ID             int64           `json:"id"`
	UserUID        string          `json:"-"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Type           TransactionType `json:"type"`
	Category       string          `json:"category,omitempty"`
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"created_at"`
	IsRecurring    bool            `json:"is_recurring"`
	RecurrenceType string          `json:"recurrence_type,omitempty"`
	AccountID      *int64          `json:"account_id,omitempty"`
}

// Signed возвращает сумму со знаком: расход отрицательный.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionRequest — данные для создания или изменения транзакции.
// Date — местная дата в формате YYYY-MM-DD; пустая означает сегодня.
type TransactionRequest struct {
	Description    string          `json:"description" validate:"required,max=200"`
	Amount         decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Type           TransactionType `json:"type" validate:"required,oneof=income expense"`
	Category       string          `json:"category" validate:"omitempty,oneof=vendas servicos marketing fornecedores impostos despesas_gerais outros pagamentos"`
	Date           string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	IsRecurring    bool            `json:"is_recurring"`
	RecurrenceType string          `json:"recurrence_type" validate:"omitempty,oneof=weekly monthly yearly"`
}

// Totals — итоги по набору транзакций.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// NewTotals собирает итоги из сумм доходов и расходов.
func NewTotals(income, expense decimal.Decimal) Totals {
	return Totals{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// CategoryTotal — сумма расходов по категории. Пустая Category означает "без категории".
type CategoryTotal struct {
	Category string          `json:"category"`
	Label    string          `json:"label"`
	Total    decimal.Decimal `json:"total"`
}
