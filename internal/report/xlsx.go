package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary      = "Resumo"
	sheetMonthly      = "Mensal"
	sheetTransactions = "Transações"
	sheetCategories   = "Categorias"
)

// XLSX рендерит отчёт в книгу Excel, по листу на каждый набор строк.
type XLSX struct{}

// NewXLSX создаёт рендерер XLSX.
func NewXLSX() *XLSX { return &XLSX{} }

// Format возвращает расширение файла.
func (XLSX) Format() string { return "xlsx" }

// ContentType возвращает MIME-тип.
func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render строит книгу с листами Resumo, Mensal, Transações и Categorias.
func (XLSX) Render(b Bundle) ([]byte, error) {
	const op = "report.XLSX.Render"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, name := range []string{sheetMonthly, sheetTransactions, sheetCategories} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := [][]any{
		{b.Title},
		{"Usuário", b.UserName},
		{"Plano", b.PlanName},
		{"Data", localStamp(b.GeneratedAt)},
		{},
		{"Item", "Valor"},
		{"Receitas do Mês", b.Summary.Income.InexactFloat64()},
		{"Despesas do Mês", b.Summary.Expense.InexactFloat64()},
		{"Saldo do Mês", b.Summary.Balance.InexactFloat64()},
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	monthly := [][]any{{"Mês", "Receitas", "Despesas", "Lucro"}}
	for _, m := range b.Monthly {
		monthly = append(monthly, []any{m.Month, m.Income.InexactFloat64(), m.Expense.InexactFloat64(), m.Profit.InexactFloat64()})
	}
	if err := writeRows(f, sheetMonthly, monthly); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	txs := [][]any{{"Data", "Descrição", "Categoria", "Tipo", "Valor"}}
	for _, tx := range b.Transactions {
		txs = append(txs, []any{localDate(tx.Date), tx.Description, labelOf(tx.Category), TypeLabel(tx.Type), tx.Signed().InexactFloat64()})
	}
	if err := writeRows(f, sheetTransactions, txs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cats := [][]any{{"Categoria", "Total Gasto"}}
	for _, c := range b.Categories {
		cats = append(cats, []any{labelOf(c.Category), c.Total.InexactFloat64()})
	}
	if err := writeRows(f, sheetCategories, cats); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for sheet, header := range map[string]string{
		sheetSummary:      "A6:B6",
		sheetMonthly:      "A1:D1",
		sheetTransactions: "A1:E1",
		sheetCategories:   "A1:B1",
	} {
		if err := f.SetCellStyle(sheet, header[:2], header[3:], bold); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
