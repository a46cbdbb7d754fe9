package utils

import "time"

// ParseDate interpreta datas YYYY-MM-DD vindas de query string. String vazia
// devolve nil sem erro, para o chamador aplicar o default.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// StartOfDay zera o horário mantendo o fuso local
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextDay é o início do dia seguinte
func NextDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// FormatDate formata uma data como YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
