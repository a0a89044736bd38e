package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDateRange = errors.New("intervalo de datas inválido")
)

// DateRange é um intervalo fechado de datas no formato yyyy-mm-dd
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Validate verifica o formato das datas e se o início não é posterior ao fim
func (r DateRange) Validate() error {
	start, err := time.Parse(time.DateOnly, r.Start)
	if err != nil {
		return fmt.Errorf("%w: data inicial %q", ErrInvalidDateRange, r.Start)
	}

	end, err := time.Parse(time.DateOnly, r.End)
	if err != nil {
		return fmt.Errorf("%w: data final %q", ErrInvalidDateRange, r.End)
	}

	if start.After(end) {
		return fmt.Errorf("%w: início posterior ao fim", ErrInvalidDateRange)
	}

	return nil
}

// MonthRange retorna o mês completo que contém a data
func MonthRange(date time.Time) DateRange {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return DateRange{Start: first.Format(time.DateOnly), End: last.Format(time.DateOnly)}
}

// LastDaysRange retorna o intervalo que termina hoje e começa `days` dias antes
func LastDaysRange(now time.Time, days int) DateRange {
	return DateRange{
		Start: now.AddDate(0, 0, -days).Format(time.DateOnly),
		End:   now.Format(time.DateOnly),
	}
}

// PeriodLabel formata o mês no padrão MM-YYYY usado nos fechamentos
func PeriodLabel(date time.Time) string {
	return fmt.Sprintf("%02d-%04d", int(date.Month()), date.Year())
}
