package service

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"edu-loan/domain"
)

// YearlyBalances reduces the schedule to the lowest remaining balance of each
// year of the term, in year order.
func YearlyBalances(schedule domain.Schedule) []domain.YearBalance {
	balances := []domain.YearBalance{}
	for _, rec := range schedule {
		last := len(balances) - 1
		if last >= 0 && balances[last].Year == rec.Year {
			if rec.RemainingBalance < balances[last].RemainingBalance {
				balances[last].RemainingBalance = rec.RemainingBalance
			}
			continue
		}
		balances = append(balances, domain.YearBalance{
			Year:             rec.Year,
			RemainingBalance: rec.RemainingBalance,
		})
	}
	return balances
}

// Composition returns the principal and interest portion of every month.
func Composition(schedule domain.Schedule) []domain.CompositionPoint {
	points := make([]domain.CompositionPoint, 0, len(schedule))
	for _, rec := range schedule {
		points = append(points, domain.CompositionPoint{
			Month:     rec.Month,
			Principal: rec.Principal,
			Interest:  rec.Interest,
		})
	}
	return points
}

// FormatCurrency renders amount as dollars with thousands separators,
// rounded half away from zero to places digits: 1234.5 -> "$1,234.50".
func FormatCurrency(amount float64, places int32) string {
	d := decimal.NewFromFloat(amount).Round(places)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(places)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// Beyond int64; skip grouping.
		return sign + "$" + fixed
	}

	out := sign + "$" + humanize.Comma(whole)
	if fracPart != "" {
		out += "." + fracPart
	}
	return out
}

// FormatSummary formats the monthly payment to the cent and the totals to
// the dollar.
func FormatSummary(summary domain.Summary) domain.FormattedSummary {
	return domain.FormattedSummary{
		MonthlyPaymentAfterGrace: FormatCurrency(summary.MonthlyPaymentAfterGrace, 2),
		TotalPayment:             FormatCurrency(summary.TotalPayment, 0),
		TotalInterest:            FormatCurrency(summary.TotalInterest, 0),
	}
}
