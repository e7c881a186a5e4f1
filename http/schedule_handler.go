package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"edu-loan/domain"
	"edu-loan/logger"
	"edu-loan/service"
)

// ScheduleCalculator is the part of service.ScheduleService the handlers use.
type ScheduleCalculator interface {
	Calculate(ctx context.Context, req domain.ScheduleRequest) (domain.ScheduleResult, error)
}

type ScheduleHandler struct {
	service     ScheduleCalculator
	csvFileName string
}

func NewScheduleHandler(service ScheduleCalculator, csvFileName string) *ScheduleHandler {
	if csvFileName == "" {
		csvFileName = "education_loan_schedule.csv"
	}
	return &ScheduleHandler{service: service, csvFileName: csvFileName}
}

// Calculate returns the schedule, summary and chart series as JSON.
func (h *ScheduleHandler) Calculate(c *gin.Context) {
	result, ok := h.calculate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportCSV returns the schedule as a CSV download.
func (h *ScheduleHandler) ExportCSV(c *gin.Context) {
	result, ok := h.calculate(c)
	if !ok {
		return
	}

	// Encode into a buffer first so a failure can still produce a 500.
	var buf bytes.Buffer
	if err := service.WriteScheduleCSV(&buf, result.Schedule); err != nil {
		logger.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "Failed to encode schedule CSV",
			logger.FieldOperation, logger.OpExport,
			logger.FieldError, err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, h.csvFileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Defaults returns the request the calculator form starts with.
func (h *ScheduleHandler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, domain.DefaultScheduleRequest())
}

func (h *ScheduleHandler) calculate(c *gin.Context) (domain.ScheduleResult, bool) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	if !strings.Contains(c.GetHeader("Content-Type"), "application/json") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Content-Type must be application/json"})
		return domain.ScheduleResult{}, false
	}

	var req domain.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WarnContext(ctx, "Error decoding request body", logger.FieldError, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return domain.ScheduleResult{}, false
	}

	result, err := h.service.Calculate(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTerms) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return domain.ScheduleResult{}, false
		}
		log.ErrorContext(ctx, "Error calculating schedule",
			logger.FieldOperation, logger.OpCalculate,
			logger.FieldError, err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return domain.ScheduleResult{}, false
	}
	return result, true
}
