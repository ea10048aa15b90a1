package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Символ валюты для отображения
const CurrencySymbol = "R$"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Round округляет сумму до центавов (банковское округление не используется)
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Fixed строковое представление суммы с двумя знаками ("1234.50")
func Fixed(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatBRL форматирует сумму для отображения в pt-BR ("R$ 1.234,50")
func FormatBRL(amount decimal.Decimal) string {
	return CurrencySymbol + " " + printer.Sprintf("%.2f", Round(amount).InexactFloat64())
}

// FormatPercent форматирует процент в pt-BR ("12,5%")
func FormatPercent(percent decimal.Decimal) string {
	return strings.Replace(percent.String(), ".", ",", 1) + "%"
}

// View сумма для ответа API: значение с двумя знаками и строка для отображения
type View struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

// NewView строит View из суммы
func NewView(amount decimal.Decimal) View {
	return View{
		Value:   Fixed(amount),
		Display: FormatBRL(amount),
	}
}
