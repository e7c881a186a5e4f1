package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"edu-loan/domain"
)

var scheduleCSVHeader = []string{"Month", "Payment", "Principal", "Interest", "Remaining Balance", "Year"}

// WriteScheduleCSV writes one row per month with money columns formatted as
// currency text.
func WriteScheduleCSV(w io.Writer, schedule domain.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scheduleCSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range schedule {
		row := []string{
			strconv.Itoa(rec.Month),
			FormatCurrency(rec.Payment, 2),
			FormatCurrency(rec.Principal, 2),
			FormatCurrency(rec.Interest, 2),
			FormatCurrency(rec.RemainingBalance, 2),
			strconv.Itoa(rec.Year),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", rec.Month, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
