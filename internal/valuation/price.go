package valuation

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// esMX prints numbers with Mexican Spanish grouping and decimal separators.
var esMX = message.NewPrinter(language.MustParse("es-MX"))

// FormatMXN renders an amount as Mexican peso currency, e.g. "$1,234,567.00".
// Amounts always carry two fraction digits.
func FormatMXN(amount float64) string {
	const fractionDigits = 2

	return esMX.Sprintf("$%v", number.Decimal(
		amount,
		number.MinFractionDigits(fractionDigits),
		number.MaxFractionDigits(fractionDigits),
	))
}
