package domain

// ScheduleRequest is the calculator form as submitted by a client.
type ScheduleRequest struct {
	Amount             float64 `json:"amount"`
	APY                float64 `json:"apy"`
	Years              int     `json:"years"`
	Months             int     `json:"months"`
	GracePeriodMonths  int     `json:"grace_period_months"`
	InterestOnlyMonths int     `json:"interest_only_months"`
	CapitalizeInterest *bool   `json:"capitalize_interest,omitempty"`
}

// DefaultScheduleRequest returns the values the calculator form starts with.
func DefaultScheduleRequest() ScheduleRequest {
	capitalize := true
	return ScheduleRequest{
		Amount:             100000,
		APY:                5.0,
		Years:              10,
		Months:             0,
		GracePeriodMonths:  6,
		InterestOnlyMonths: 6,
		CapitalizeInterest: &capitalize,
	}
}

func (r ScheduleRequest) TotalMonths() int {
	return r.Years*12 + r.Months
}

// ToTerms converts the request; a missing capitalize flag means capitalize.
func (r ScheduleRequest) ToTerms() LoanTerms {
	capitalize := true
	if r.CapitalizeInterest != nil {
		capitalize = *r.CapitalizeInterest
	}
	return LoanTerms{
		Principal:          r.Amount,
		AnnualYield:        r.APY,
		TotalMonths:        r.TotalMonths(),
		GracePeriodMonths:  r.GracePeriodMonths,
		InterestOnlyMonths: r.InterestOnlyMonths,
		CapitalizeInterest: capitalize,
	}
}

type YearBalance struct {
	Year             int     `json:"year"`
	RemainingBalance float64 `json:"remaining_balance"`
}

type CompositionPoint struct {
	Month     int     `json:"month"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
}

type FormattedSummary struct {
	MonthlyPaymentAfterGrace string `json:"monthly_payment_after_grace"`
	TotalPayment             string `json:"total_payment"`
	TotalInterest            string `json:"total_interest"`
}

type ScheduleResult struct {
	Terms          LoanTerms          `json:"terms"`
	Summary        Summary            `json:"summary"`
	Formatted      FormattedSummary   `json:"formatted"`
	Schedule       Schedule           `json:"schedule"`
	YearlyBalances []YearBalance      `json:"yearly_balances"`
	Composition    []CompositionPoint `json:"composition"`
}
