package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"edu-loan/domain"
	"edu-loan/logger"
	"edu-loan/repository"
)

// ErrInvalidTerms is wrapped by every validation failure.
var ErrInvalidTerms = errors.New("invalid loan terms")

type ScheduleService struct {
	cache    repository.CacheRepository
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewScheduleService creates a ScheduleService. A nil cache disables caching.
func NewScheduleService(
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	log *logger.Logger,
) *ScheduleService {
	if cache == nil {
		cache = repository.NoopCache{}
	}
	if log == nil {
		log = logger.New(logger.DefaultConfig())
	}
	return &ScheduleService{
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.WithComponent(logger.ComponentSchedule),
	}
}

// Validate checks the form bounds. Grace and interest-only periods longer
// than the term are accepted; the engine handles them.
func (s *ScheduleService) Validate(req domain.ScheduleRequest) error {
	var problems []string

	if math.IsNaN(req.Amount) || req.Amount < 0 {
		problems = append(problems, "amount must be non-negative")
	} else if req.Amount > MaxLoanAmount {
		problems = append(problems, fmt.Sprintf("amount exceeds the maximum of $%.2f", MaxLoanAmount))
	}

	if math.IsNaN(req.APY) || req.APY < 0 {
		problems = append(problems, "apy must be non-negative")
	} else if req.APY > MaxAnnualYield {
		problems = append(problems, fmt.Sprintf("apy exceeds the maximum of %.2f%%", MaxAnnualYield))
	}

	if req.Years < 0 {
		problems = append(problems, "years must be non-negative")
	}
	if req.Months < 0 || req.Months > MaxExtraMonths {
		problems = append(problems, fmt.Sprintf("months must be between 0 and %d", MaxExtraMonths))
	}
	// Years is bounded before multiplying so a huge value cannot wrap into range.
	if req.Years > MaxTermMonths/12 || (req.Years >= 0 && req.TotalMonths() > MaxTermMonths) {
		problems = append(problems, fmt.Sprintf("term exceeds the maximum of %d months", MaxTermMonths))
	}

	if req.GracePeriodMonths < 0 || req.GracePeriodMonths > MaxGracePeriod {
		problems = append(problems, fmt.Sprintf("grace period must be between 0 and %d months", MaxGracePeriod))
	}
	if req.InterestOnlyMonths < 0 || req.InterestOnlyMonths > MaxInterestOnly {
		problems = append(problems, fmt.Sprintf("interest-only period must be between 0 and %d months", MaxInterestOnly))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTerms, strings.Join(problems, "; "))
	}
	return nil
}

// Calculate validates the request and returns the schedule with every
// derived view. Cache failures are logged and otherwise ignored.
func (s *ScheduleService) Calculate(
	ctx context.Context,
	req domain.ScheduleRequest,
) (domain.ScheduleResult, error) {
	if err := s.Validate(req); err != nil {
		return domain.ScheduleResult{}, err
	}

	terms := req.ToTerms()
	key := CacheKey(terms)
	log := s.log.With(logger.FieldCacheKey, key)

	if cached, ok := s.lookup(ctx, log, key); ok {
		log.DebugContext(ctx, "Schedule served from cache", logger.FieldCacheHit, true)
		return cached, nil
	}

	result := BuildResult(terms)

	if payload, err := json.Marshal(result); err != nil {
		log.WarnContext(ctx, "Failed to encode schedule for cache", logger.FieldError, err)
	} else if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		log.WarnContext(ctx, "Failed to store schedule in cache", logger.FieldError, err)
	}

	log.InfoContext(ctx, "Schedule calculated",
		logger.FieldOperation, logger.OpCalculate,
		logger.FieldPrincipal, terms.Principal,
		logger.FieldAPY, terms.AnnualYield,
		logger.FieldTermMonths, terms.TotalMonths,
		logger.FieldCacheHit, false,
	)
	return result, nil
}

func (s *ScheduleService) lookup(ctx context.Context, log *logger.Logger, key string) (domain.ScheduleResult, bool) {
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "Cache lookup failed", logger.FieldError, err)
		return domain.ScheduleResult{}, false
	}
	if !ok {
		return domain.ScheduleResult{}, false
	}

	var result domain.ScheduleResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		log.WarnContext(ctx, "Discarding undecodable cache entry", logger.FieldError, err)
		return domain.ScheduleResult{}, false
	}
	return result, true
}

// BuildResult runs the engine and derives the chart and summary views.
func BuildResult(terms domain.LoanTerms) domain.ScheduleResult {
	schedule, summary := ComputeSchedule(terms)
	return domain.ScheduleResult{
		Terms:          terms,
		Summary:        summary,
		Formatted:      FormatSummary(summary),
		Schedule:       schedule,
		YearlyBalances: YearlyBalances(schedule),
		Composition:    Composition(schedule),
	}
}

// CacheKey identifies a set of terms; floats use the shortest exact form.
func CacheKey(terms domain.LoanTerms) string {
	return strings.Join([]string{
		cacheKeyPrefix,
		strconv.FormatFloat(terms.Principal, 'g', -1, 64),
		strconv.FormatFloat(terms.AnnualYield, 'g', -1, 64),
		strconv.Itoa(terms.TotalMonths),
		strconv.Itoa(terms.GracePeriodMonths),
		strconv.Itoa(terms.InterestOnlyMonths),
		strconv.FormatBool(terms.CapitalizeInterest),
	}, ":")
}
