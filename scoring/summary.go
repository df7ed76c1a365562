package scoring

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GundamHarshaReddy/Hackokai1/models"
)

// prefHighlights describes what a >70 slider says about the student.
var prefHighlights = map[string]string{
	"independence": "prefers collaborative teamwork",
	"structure":    "thrives in flexible environments",
	"pace":         "excels in fast-paced settings",
	"innovation":   "seeks innovative approaches",
	"interaction":  "enjoys high social interaction",
}

// traitHighlights describes a >=4 Likert trait.
var traitHighlights = map[string]string{
	"openness":          "highly creative and open to new experiences",
	"conscientiousness": "extremely organized and detail-oriented",
	"extraversion":      "naturally outgoing and energetic",
	"agreeableness":     "collaborative and team-focused",
	"analytical":        "strong analytical and problem-solving abilities",
	"creative":          "exceptional creative thinking skills",
}

// Summarize produces a short professional profile summary for admin review.
// Delegates to the provider when configured; any failure yields the composed
// deterministic summary instead.
func (e *Engine) Summarize(ctx context.Context, student *models.Student, recs []models.CareerRecommendation) string {
	if student == nil {
		student = &models.Student{}
	}

	if e.gen != nil {
		summary, err := e.delegatedSummary(ctx, student, recs)
		if err == nil {
			return summary
		}
		e.logger.Warn("summary provider call failed, using composed summary",
			zap.String("student", student.Email),
			zap.Error(err),
		)
	}

	return fallbackSummary(student)
}

func (e *Engine) delegatedSummary(ctx context.Context, student *models.Student, recs []models.CareerRecommendation) (string, error) {
	var recLines []string
	for _, r := range recs {
		recLines = append(recLines, fmt.Sprintf("- %s: %d%% match", r.Role, r.MatchScore))
	}
	if len(recLines) == 0 {
		recLines = []string{"No recommendations yet"}
	}

	prompt := fmt.Sprintf(`You are a career counselor providing professional student profile summaries for administrative review.

Student Information:
- Name: %s
- Education: %s in %s
- Core Values: %s
- Work Preferences: %s
- Personality Scores: %s

Career Recommendations:
%s

Create a 120-150 word professional summary in third person that references their selected values, their work preference scores, their strongest personality traits, and connects their education to career potential.`,
		student.Name,
		student.EducationDegree, student.Specialization,
		joinOr(student.CoreValues, "Not specified"),
		jsonString(workPrefs(student)),
		jsonString(traits(student)),
		strings.Join(recLines, "\n"),
	)

	return e.gen.GenerateContent(ctx, prompt)
}

func fallbackSummary(student *models.Student) string {
	prefs := workPrefs(student)
	var highs []string
	for _, key := range models.WorkPreferenceKeys {
		if v, ok := prefs[key]; ok && v > 70 {
			highs = append(highs, prefHighlights[key])
		}
	}

	tr := traits(student)
	var strengths []string
	for _, key := range models.PersonalityTraitKeys {
		if v, ok := tr[key]; ok && v >= 4 {
			if desc, ok := traitHighlights[key]; ok {
				strengths = append(strengths, desc)
			}
		}
	}

	workStyle := ""
	if len(highs) > 0 {
		workStyle = fmt.Sprintf(" They %s.", strings.Join(highs[:min(len(highs), 2)], " and "))
	}
	personality := ""
	if len(strengths) > 0 {
		personality = fmt.Sprintf(" Their key strengths include %s.", strings.Join(strengths[:min(len(strengths), 2)], " and "))
	}

	topValues := student.CoreValues
	if len(topValues) > 3 {
		topValues = topValues[:3]
	}

	return fmt.Sprintf("%s is a motivated %s graduate specializing in %s, with core values centered on %s.%s%s This combination of educational foundation, value-driven approach, and natural abilities positions them well for impactful roles in their chosen field.",
		student.Name, student.EducationDegree, student.Specialization,
		joinOr(topValues, "their personal priorities"), workStyle, personality)
}
