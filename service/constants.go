package service

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxAnnualYield  = 1000.0 // percent
	MaxTermMonths   = 600    // 50 years
	MaxExtraMonths  = 11
	MaxGracePeriod  = 12
	MaxInterestOnly = 60

	cacheKeyPrefix = "edu-loan:schedule:v1"
)
