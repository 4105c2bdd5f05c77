package domain

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("en-AU"))

// FormatAmount renders a major-unit amount as a currency string with grouping
// and exactly two decimal places, e.g. $1,234.56. Negative amounts keep their
// sign in front of the symbol.
func FormatAmount(major float64) string {
	formatted := printer.Sprint(number.Decimal(
		math.Abs(major),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
	if major < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}
