package models

import (
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
)

// CashFlow — список транзакций с итогами и признаком исчерпанного лимита.
type CashFlow struct {
	Transactions []*Transaction `json:"transactions"`
	Totals       Totals         `json:"totals"`
	Count        int            `json:"count"`
	Limit        int            `json:"limit"`
	LimitReached bool           `json:"limit_reached"`
}

// GoalsSummary — сводка по активным целям для дашборда.
type GoalsSummary struct {
	TotalGoals      int             `json:"total_goals"`
	TotalTarget     decimal.Decimal `json:"total_target"`
	TotalCurrent    decimal.Decimal `json:"total_current"`
	AverageProgress float64         `json:"average_progress"`
}

// Level — уровень пользователя по количеству транзакций.
type Level struct {
	Value    int `json:"value"`
	Progress int `json:"progress"`
}

// LevelFor считает уровень: каждые 10 транзакций повышают его на 1, максимум 10.
func LevelFor(count int) Level {
	value := count/10 + 1
	if value > 10 {
		value = 10
	}
	return Level{Value: value, Progress: (count % 10) * 10}
}

// Dashboard — главная сводка пользователя.
type Dashboard struct {
	Month              string                   `json:"month"`
	Monthly            Totals                   `json:"monthly"`
	RecentTransactions []*Transaction           `json:"recent_transactions"`
	PendingReceivables decimal.Decimal          `json:"pending_receivables"`
	PendingPayables    decimal.Decimal          `json:"pending_payables"`
	Goals              []GoalView               `json:"goals"`
	GoalsSummary       GoalsSummary             `json:"goals_summary"`
	Level              Level                    `json:"level"`
	Plan               entitlement.Entitlements `json:"plan"`
	Status             entitlement.Status       `json:"status"`
	TrialDaysRemaining int                      `json:"trial_days_remaining"`
}

// ChartData — доходы и расходы по месяцам, от старого к новому.
type ChartData struct {
	Months   []string          `json:"months"`
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// MonthlyRow — строка помесячного отчёта.
type MonthlyRow struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

// KPIs — ключевые показатели отчёта.
type KPIs struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	Overdue       int             `json:"overdue_accounts"`
}

// ReportOverview — данные страницы отчётов.
type ReportOverview struct {
	Monthly    []MonthlyRow    `json:"monthly"`
	Categories []CategoryTotal `json:"categories"`
	KPIs       KPIs            `json:"kpis"`
}
