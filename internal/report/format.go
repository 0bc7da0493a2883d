package report

import (
	"strconv"

	"logsummary/internal/models"
)

// Format превращает счётчики во внешнее представление: плоский словарь со строковыми значениями.
// Каждый вызов возвращает новый словарь.
func Format(counts models.Counts) map[string]string {
	out := make(map[string]string, len(counts))
	for key, n := range counts {
		out[key] = strconv.Itoa(n)
	}
	return out
}
