package greenops

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the given precision and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	rounded := Round(f, precision)
	if precision <= 0 {
		return FormatNumber(int64(rounded))
	}

	formatted := strconv.FormatFloat(rounded, 'f', precision, 64)
	intPart, frac, found := strings.Cut(formatted, ".")
	if !found {
		return formatted
	}

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}
	sign := ""
	if n == 0 && strings.HasPrefix(intPart, "-") {
		sign = "-"
	}
	return sign + FormatNumber(n) + "." + frac
}

// FormatKg formats an emissions value as "1,234.568 kg CO2e". Values below
// MinDisplayThresholdKg, other than zero, render as "< 0.001 kg CO2e".
func FormatKg(kg float64) string {
	if kg > 0 && kg < MinDisplayThresholdKg {
		return fmt.Sprintf("< %.3f kg CO2e", MinDisplayThresholdKg)
	}
	return FormatFloat(kg, ResultPrecision) + " kg CO2e"
}
