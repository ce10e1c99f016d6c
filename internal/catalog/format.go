package catalog

import (
	"fmt"
	"strings"

	"learning-advisor/internal/domain"
)

// FormatList arma una lista con viñetas, una por línea.
func FormatList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func FormatCourses(courses []domain.Course) string {
	lines := make([]string, 0, len(courses))
	for _, c := range courses {
		lines = append(lines, fmt.Sprintf("- %s (%s) [%s]", c.Title, c.Platform, c.Level))
	}
	return strings.Join(lines, "\n")
}
