package utils

import "time"

// ParseDate valida uma data yyyy-mm-dd. Texto vazio retorna nil sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// FirstDayOfMonth retorna o primeiro dia do mês da data, à meia-noite
func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// PreviousMonths lista o primeiro dia dos `count` meses anteriores ao mês da data,
// do mais recente para o mais antigo
func PreviousMonths(date time.Time, count int) []time.Time {
	first := FirstDayOfMonth(date)
	months := make([]time.Time, 0, count)
	for i := 1; i <= count; i++ {
		months = append(months, first.AddDate(0, -i, 0))
	}
	return months
}
