package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/magabrotheeeer/financeiro/internal/lib/currency"
)

// PDF рендерит отчёт в A4 PDF.
type PDF struct{}

// NewPDF создаёт рендерер PDF.
func NewPDF() *PDF { return &PDF{} }

// Format возвращает расширение файла.
func (PDF) Format() string { return "pdf" }

// ContentType возвращает MIME-тип.
func (PDF) ContentType() string { return "application/pdf" }

// Render строит документ: шапка, блок пользователя, итоги месяца,
// последние транзакции, расходы по категориям и подвал.
func (PDF) Render(b Bundle) ([]byte, error) {
	const op = "report.PDF.Render"

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	stamp := localStamp(b.GeneratedAt)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Relatório gerado automaticamente pelo %s em %s", Product, stamp)), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(0, 12, tr(b.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, tr(Product), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.CellFormat(0, 6, tr("Usuário: "+b.UserName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Plano: "+b.PlanName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Data: "+stamp), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	section(pdf, tr("Resumo Financeiro"))
	table(pdf, tr, []float64{90, 60}, []string{"Item", "Valor"}, [][]string{
		{"Receitas do Mês", currency.Format(b.Summary.Income)},
		{"Despesas do Mês", currency.Format(b.Summary.Expense)},
		{"Saldo do Mês", currency.Format(b.Summary.Balance)},
	})
	pdf.Ln(8)

	section(pdf, tr("Transações Recentes"))
	if len(b.Transactions) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr("Nenhuma transação encontrada."), "", 1, "L", false, 0, "")
	} else {
		rows := make([][]string, 0, len(b.Transactions))
		for _, tx := range b.Transactions {
			rows = append(rows, []string{
				localDate(tx.Date),
				Truncate(tx.Description, DescriptionWidth),
				labelOf(tx.Category),
				TypeLabel(tx.Type),
				SignedAmount(tx),
			})
		}
		table(pdf, tr, []float64{24, 56, 34, 22, 34}, []string{"Data", "Descrição", "Categoria", "Tipo", "Valor"}, rows)
	}
	pdf.Ln(8)

	section(pdf, tr("Análise por Categorias"))
	if len(b.Categories) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr("Nenhuma despesa por categoria encontrada."), "", 1, "L", false, 0, "")
	} else {
		rows := make([][]string, 0, len(b.Categories))
		for _, c := range b.Categories {
			rows = append(rows, []string{labelOf(c.Category), currency.Format(c.Total)})
		}
		table(pdf, tr, []float64{90, 60}, []string{"Categoria", "Total Gasto"}, rows)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func table(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, header []string, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(59, 130, 246)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range header {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, tr(cell), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}
