// Package report формирует файлы финансового отчёта. Данные собираются в Bundle,
// а Renderer превращает их в конкретный формат (PDF, XLSX).
package report

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/financeiro/internal/lib/currency"
	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

// ErrUnknownFormat — запрошен формат, для которого нет рендерера.
var ErrUnknownFormat = errors.New("unknown report format")

const (
	// Title — заголовок отчёта.
	Title = "Relatório Financeiro"
	// Product — название продукта в шапке и подвале.
	Product = "Financeiro Inteligente"
	// RecentLimit — количество транзакций в отчёте.
	RecentLimit = 10
	// DescriptionWidth — длина описания транзакции, после которой оно обрезается.
	DescriptionWidth = 25
)

// Summary — итоги текущего месяца.
type Summary struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Bundle — данные, из которых строится любой формат отчёта.
type Bundle struct {
	Title        string
	UserName     string
	PlanName     string
	GeneratedAt  time.Time
	Summary      Summary
	Monthly      []models.MonthlyRow
	Transactions []*models.Transaction
	Categories   []models.CategoryTotal
}

// Renderer превращает Bundle в файл определённого формата.
type Renderer interface {
	// Format возвращает расширение файла без точки.
	Format() string
	ContentType() string
	Render(b Bundle) ([]byte, error)
}

// File — готовый файл отчёта.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Build рендерит Bundle и даёт файлу имя по местному времени генерации.
func Build(r Renderer, b Bundle) (*File, error) {
	data, err := r.Render(b)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        FileName(r.Format(), b.GeneratedAt),
		ContentType: r.ContentType(),
		Data:        data,
	}, nil
}

// FileName возвращает имя вида relatorio_financeiro_YYYYMMDD_HHMM.ext.
func FileName(ext string, at time.Time) string {
	return "relatorio_financeiro_" + tz.ToLocal(at).Format("20060102_1504") + "." + ext
}

// Truncate обрезает строку до n символов и добавляет "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// SignedAmount форматирует сумму транзакции со знаком: "+R$ 10,00" или "-R$ 10,00".
func SignedAmount(tx *models.Transaction) string {
	if tx.Type == models.Expense {
		return "-" + currency.Format(tx.Amount)
	}
	return "+" + currency.Format(tx.Amount)
}

// TypeLabel — подпись типа транзакции.
func TypeLabel(t models.TransactionType) string {
	if t == models.Expense {
		return "Despesa"
	}
	return "Receita"
}

func localDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return tz.ToLocal(t).Format("02/01/2006")
}

func localStamp(t time.Time) string {
	return tz.ToLocal(t).Format("02/01/2006 às 15:04")
}

func labelOf(category string) string {
	return models.CategoryLabel(category)
}
