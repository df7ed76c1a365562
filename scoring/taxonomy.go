package scoring

import (
	"strings"

	"github.com/GundamHarshaReddy/Hackokai1/models"
)

// roleCategoryKeywords maps ordered category checks to their trigger words.
// Job postings and recommended roles are classified with the same table, so
// career-filtered listings compare category codes instead of matching titles
// against each other.
var roleCategoryKeywords = []struct {
	category string
	keywords []string
}{
	{models.CategoryDesign, []string{"design", "ui", "ux", "graphic", "illustrator"}},
	{models.CategoryData, []string{"data", "analytics", "statistics", "machine learning", "scientist"}},
	{models.CategorySoftware, []string{"software", "developer", "full stack", "frontend", "backend", "web", "mobile", "programmer", "devops"}},
	{models.CategoryMarketing, []string{"marketing", "sales", "brand", "content", "product manager", "growth"}},
	{models.CategoryEngineering, []string{"engineer", "technical project", "mechanical", "civil", "electrical"}},
	{models.CategoryOperations, []string{"coordinator", "operations", "business analyst", "consultant", "support", "hr", "recruit", "customer"}},
}

// ClassifyRole buckets a free-text role or job title into a category code.
func ClassifyRole(title string) string {
	t := strings.ToLower(title)
	for _, entry := range roleCategoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(t, kw) {
				return entry.category
			}
		}
	}
	return models.CategoryGeneral
}

// IsCategory reports whether s is a known category code.
func IsCategory(s string) bool {
	switch s {
	case models.CategorySoftware, models.CategoryData, models.CategoryMarketing,
		models.CategoryDesign, models.CategoryEngineering, models.CategoryOperations,
		models.CategoryGeneral:
		return true
	}
	return false
}
