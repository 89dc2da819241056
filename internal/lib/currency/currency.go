// Package currency форматирует денежные суммы в реалах по бразильским правилам:
// точка разделяет тысячи, запятая отделяет копейки (сентаво).
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol — префикс валюты.
const Symbol = "R$"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Format возвращает сумму в виде "R$ 1.234,56". Отрицательные суммы получают ведущий минус: "-R$ 10,00".
func Format(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + Symbol + " " + printer.Sprintf("%.2f", rounded.InexactFloat64())
}
