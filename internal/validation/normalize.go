// Package validation содержит функции нормализации входных данных.
//
// Все функции чистые и тотальные: мусор на входе никогда не приводит к
// ошибке, а вырождается в пустую каноническую форму.
package validation

import (
	"regexp"
	"strings"

	"github.com/mmeshcher/slowtravel-system/internal/model"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CleanTags обрезает пробелы вокруг тегов и выбрасывает пустые.
// Порядок и регистр сохраняются, дубликаты не удаляются.
func CleanTags(tags []string) []string {
	res := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			res = append(res, t)
		}
	}
	return res
}

// SplitTags разбирает строку тегов, разделённых запятыми.
func SplitTags(s string) []string {
	return CleanTags(strings.Split(s, ","))
}

// CleanPlan обрезает пробелы в полях остановок и выбрасывает остановки
// с пустым после обрезки названием.
func CleanPlan(plan []model.PlanStop) []model.PlanStop {
	res := make([]model.PlanStop, 0, len(plan))
	for _, stop := range plan {
		stop.Name = strings.TrimSpace(stop.Name)
		stop.Note = strings.TrimSpace(stop.Note)
		if stop.Name != "" {
			res = append(res, stop)
		}
	}
	return res
}

// IsValidEmail проверяет, что адрес имеет форму local@domain.tld.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
