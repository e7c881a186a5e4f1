package service

import (
	"math"

	"edu-loan/domain"
)

// MonthlyRate converts an annual percentage yield into the equivalent
// monthly compounding rate, (1 + apy/100)^(1/12) - 1.
func MonthlyRate(annualYield float64) float64 {
	return math.Pow(1+annualYield/100, 1.0/12) - 1
}

// CapitalizeGraceInterest compounds principal once per grace month.
// The loop matches month-by-month capitalization; it can differ from
// principal*(1+rate)^months in the last floating-point digit.
func CapitalizeGraceInterest(principal, rate float64, graceMonths int) float64 {
	for i := 0; i < graceMonths; i++ {
		principal += principal * rate
	}
	return principal
}

// LevelPayment is the constant payment that retires principal over months
// periods. It is zero when months <= 0 and principal/months when rate is zero.
func LevelPayment(principal, rate float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	if rate == 0 {
		return principal / float64(months)
	}
	growth := math.Pow(1+rate, float64(months))
	return principal * rate * growth / (growth - 1)
}

// ComputeSchedule walks every month of the term and classifies it as grace,
// interest-only or amortization. It never fails: when grace and
// interest-only periods leave no repayment months every payment is zero and
// the balance is left unpaid at term end.
func ComputeSchedule(terms domain.LoanTerms) (domain.Schedule, domain.Summary) {
	rate := MonthlyRate(terms.AnnualYield)

	principal := terms.Principal
	var accrued float64
	if terms.CapitalizeInterest {
		principal = CapitalizeGraceInterest(principal, rate, terms.GracePeriodMonths)
	} else {
		accrued = principal * rate * float64(terms.GracePeriodMonths)
	}

	repaymentMonths := terms.RepaymentMonths()
	payment := LevelPayment(principal, rate, repaymentMonths)

	months := terms.TotalMonths
	if months < 0 {
		months = 0
	}
	schedule := make(domain.Schedule, 0, months)
	interestOnlyEnd := terms.GracePeriodMonths + terms.InterestOnlyMonths
	balance := principal

	var totalPayment, totalInterest float64
	for month := 1; month <= months; month++ {
		rec := domain.MonthlyRecord{
			Month:    month,
			Interest: balance * rate,
			Year:     (month + 11) / 12,
		}

		switch {
		case month <= terms.GracePeriodMonths:
			rec.Phase = domain.PhaseGrace
		case month <= interestOnlyEnd:
			rec.Phase = domain.PhaseInterestOnly
			// Without an amortization window nothing is collected at all, which
			// overrides the interest-only rule of paying the accrued interest.
			if repaymentMonths > 0 {
				rec.Payment = rec.Interest
			}
		default:
			rec.Phase = domain.PhaseAmortization
			rec.Payment = payment
			rec.Principal = payment - rec.Interest
			balance -= rec.Principal
		}
		rec.RemainingBalance = balance

		totalPayment += rec.Payment
		totalInterest += rec.Interest
		schedule = append(schedule, rec)
	}

	return schedule, domain.Summary{
		MonthlyRate:                rate,
		EffectivePrincipal:         principal,
		RepaymentMonths:            repaymentMonths,
		MonthlyPaymentAfterGrace:   payment,
		TotalPayment:               totalPayment,
		TotalInterest:              totalInterest,
		AccruedInterestDuringGrace: accrued,
	}
}
