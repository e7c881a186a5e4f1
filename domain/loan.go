package domain

// LoanTerms are the inputs of one amortization run.
type LoanTerms struct {
	Principal          float64 `json:"principal"`
	AnnualYield        float64 `json:"annual_yield"` // percent, compounded monthly
	TotalMonths        int     `json:"total_months"`
	GracePeriodMonths  int     `json:"grace_period_months"`
	InterestOnlyMonths int     `json:"interest_only_months"`
	CapitalizeInterest bool    `json:"capitalize_interest"`
}

// RepaymentMonths is the length of the amortization phase. It can be zero or
// negative when grace and interest-only periods cover the whole term.
func (t LoanTerms) RepaymentMonths() int {
	return t.TotalMonths - t.GracePeriodMonths - t.InterestOnlyMonths
}

type Phase string

const (
	PhaseGrace        Phase = "grace"
	PhaseInterestOnly Phase = "interest_only"
	PhaseAmortization Phase = "amortization"
)

type MonthlyRecord struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remaining_balance"`
	Year             int     `json:"year"`
	Phase            Phase   `json:"phase"`
}

// Schedule is ordered by month, one record per month of the term.
type Schedule []MonthlyRecord

type Summary struct {
	MonthlyRate                float64 `json:"monthly_rate"`
	EffectivePrincipal         float64 `json:"effective_principal"`
	RepaymentMonths            int     `json:"repayment_months"`
	MonthlyPaymentAfterGrace   float64 `json:"monthly_payment_after_grace"`
	TotalPayment               float64 `json:"total_payment"`
	TotalInterest              float64 `json:"total_interest"`
	AccruedInterestDuringGrace float64 `json:"accrued_interest_during_grace"`
}
