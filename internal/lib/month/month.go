// Package month содержит работу с календарными месяцами в часовом поясе São Paulo:
// окна последних N месяцев для графиков и отчётов, границы месяца и подписи на португальском.
package month

import (
	"time"

	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
)

var shortNames = [...]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

var fullNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Period — календарный месяц.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Of возвращает месяц, в который попадает момент t по местному времени.
func Of(t time.Time) Period {
	local := tz.ToLocal(t)
	return Period{Year: local.Year(), Month: local.Month()}
}

// Add сдвигает период на n месяцев (n может быть отрицательным).
func (p Period) Add(n int) Period {
	t := time.Date(p.Year, p.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return Period{Year: t.Year(), Month: t.Month()}
}

// Bounds возвращает полуинтервал [start, end) месяца в UTC, считая границы по местному времени.
func (p Period) Bounds() (time.Time, time.Time) {
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, tz.Local)
	end := start.AddDate(0, 1, 0)
	return start.UTC(), end.UTC()
}

// ShortLabel возвращает сокращённое название месяца ("Jan", "Fev", ...).
func (p Period) ShortLabel() string {
	return shortNames[p.Month-1]
}

// Label возвращает полное название месяца с годом, например "Março 2025".
func (p Period) Label() string {
	return fullNames[p.Month-1] + " " + time.Date(p.Year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}

// Window возвращает n последних календарных месяцев, включая текущий, от старого к новому.
func Window(now time.Time, n int) []Period {
	if n <= 0 {
		return nil
	}
	current := Of(now)
	out := make([]Period, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, current.Add(-i))
	}
	return out
}
