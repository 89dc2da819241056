package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
)

var hundred = decimal.NewFromInt(100)

// Goal — финансовая цель пользователя.
//
// Признак выполнения вычисляется из сумм (Completed). Поле IsCompleted
// хранится только для фильтрации в запросах и перезаписывается при каждом сохранении.
type Goal struct {
	ID            int64
	UserUID       string
	Title         string
	Description   string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	CreatedAt     time.Time
	IsCompleted   bool
}

// Completed сообщает, достигнута ли цель.
func (g *Goal) Completed() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Sync приводит хранимый флаг к вычисленному значению. Вызывается перед записью.
func (g *Goal) Sync() {
	g.IsCompleted = g.Completed()
}

// Progress возвращает процент выполнения в пределах [0, 100]. Для нулевой цели возвращает 0.
func (g *Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if p.GreaterThan(hundred) {
		p = hundred
	}
	if p.IsNegative() {
		p = decimal.Zero
	}
	return p.Round(2).InexactFloat64()
}

// DaysRemaining возвращает число календарных дней до целевой даты (отрицательное при просрочке).
// Второе значение false, если дата не задана.
func (g *Goal) DaysRemaining(now time.Time) (int, bool) {
	if g.TargetDate == nil {
		return 0, false
	}
	return tz.DaysBetween(now, *g.TargetDate), true
}

// IsOverdue сообщает, что целевая дата прошла, а цель не выполнена.
func (g *Goal) IsOverdue(now time.Time) bool {
	days, ok := g.DaysRemaining(now)
	return ok && days < 0 && !g.Completed()
}

// GoalView — цель с вычисленными полями для ответа API.
type GoalView struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Completed     bool            `json:"completed"`
	Progress      float64         `json:"progress"`
	DaysRemaining *int            `json:"days_remaining,omitempty"`
	Overdue       bool            `json:"overdue"`
}

// View строит представление цели на момент now.
func (g *Goal) View(now time.Time) GoalView {
	v := GoalView{
		ID:            g.ID,
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		TargetDate:    g.TargetDate,
		CreatedAt:     g.CreatedAt,
		Completed:     g.Completed(),
		Progress:      g.Progress(),
		Overdue:       g.IsOverdue(now),
	}
	if days, ok := g.DaysRemaining(now); ok {
		v.DaysRemaining = &days
	}
	return v
}

// GoalRequest — данные для создания или изменения цели. TargetDate задаётся местной датой YYYY-MM-DD.
type GoalRequest struct {
	Title         string          `json:"title" validate:"required,min=3,max=200"`
	Description   string          `json:"description" validate:"max=500"`
	TargetAmount  decimal.Decimal `json:"target_amount" validate:"required,gt=0"`
	CurrentAmount decimal.Decimal `json:"current_amount" validate:"gte=0"`
	TargetDate    string          `json:"target_date" validate:"required,datetime=2006-01-02"`
}

// GoalProgressRequest — новое текущее значение цели.
type GoalProgressRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
}

// GoalsOverview — список целей с итогами по активным.
type GoalsOverview struct {
	Active          []GoalView      `json:"active"`
	Completed       []GoalView      `json:"completed"`
	TotalTarget     decimal.Decimal `json:"total_target"`
	TotalCurrent    decimal.Decimal `json:"total_current"`
	OverallProgress float64         `json:"overall_progress"`
}
