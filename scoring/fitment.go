package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GundamHarshaReddy/Hackokai1/ai"
	"github.com/GundamHarshaReddy/Hackokai1/models"
)

// FitmentResult is a 0-100 compatibility rating with a human explanation.
type FitmentResult struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

const (
	fitmentBase       = 40
	fitmentNeutral    = 50
	fitmentFloorAI    = 30
	fitmentFloorRules = 35
	fitmentCeiling    = 95
)

// techSkillCatalog lists skill keywords considered adjacent to a technical
// specialization, so "JavaScript" counts for a Computer Science student even
// when the specialization text never names it.
var techSkillCatalog = []string{
	"javascript", "typescript", "python", "java", "go", "golang", "c++", "c#",
	"react", "angular", "vue", "node", "html", "css", "sql", "nosql",
	"mongodb", "mysql", "postgresql", "docker", "kubernetes", "aws", "azure",
	"gcp", "git", "linux", "rest", "api", "php", "swift", "kotlin", "flutter",
	"machine learning", "data analysis", "excel", "tableau", "power bi",
}

// valueSynonyms expands a core value to related words in job text.
var valueSynonyms = map[string][]string{
	"innovation": {"innovative", "creative"},
	"growth":     {"development", "learning"},
	"impact":     {"mission", "social"},
}

// FitmentScore computes a compatibility score between a student and a job.
// Neither input is rejected; missing fields contribute nothing. recs, when
// available, widens the skill-overlap evidence with previously recommended
// roles. The provider path clamps to [30,95], the deterministic path to
// [35,95]; a score is always produced.
func (e *Engine) FitmentScore(ctx context.Context, student *models.Student, job *models.Job, recs []models.CareerRecommendation) FitmentResult {
	if job == nil {
		job = &models.Job{}
	}
	if e.gen == nil {
		return e.fallbackFitment(student, job, recs)
	}

	result, err := e.delegatedFitment(ctx, student, job)
	if err != nil {
		e.logger.Warn("fitment provider call failed, returning neutral score",
			zap.String("job_title", job.JobTitle),
			zap.Error(err),
		)
		return FitmentResult{Score: fitmentNeutral, Reasoning: "Unable to calculate a precise match right now."}
	}
	result.Score = clamp(result.Score, fitmentFloorAI, fitmentCeiling)
	return result
}

func (e *Engine) delegatedFitment(ctx context.Context, student *models.Student, job *models.Job) (FitmentResult, error) {
	if student == nil {
		student = &models.Student{}
	}

	prompt := fmt.Sprintf(`You are a career matching AI. Calculate a fitment score (0-100) between a student and a job based on their profile match. Also provide a brief explanation. Respond only with valid JSON.

STUDENT:
Core Values: %s
Work Preferences: %s
Education: %s in %s
Personality Scores: %s

JOB:
Title: %s
Company: %s
Description: %s
Key Skills: %s
Job Type: %s

Respond with JSON format: {"score": number, "reasoning": "brief explanation"}`,
		joinOr(student.CoreValues, "Not specified"),
		jsonString(workPrefs(student)),
		student.EducationDegree, student.Specialization,
		jsonString(traits(student)),
		job.JobTitle, job.CompanyName, job.JobDescription,
		joinOr(job.KeySkills, "Not specified"), job.JobType,
	)

	raw, err := e.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return FitmentResult{}, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(ai.ExtractJSONObject(raw)), &data); err != nil {
		return FitmentResult{}, fmt.Errorf("parse fitment response: %w", err)
	}

	score, ok := ai.CoerceInt(data["score"])
	if !ok {
		return FitmentResult{}, fmt.Errorf("fitment response missing score")
	}
	reasoning := ai.CoerceString(data["reasoning"])
	if reasoning == "" {
		reasoning = "Profile compatibility assessment."
	}
	return FitmentResult{Score: score, Reasoning: reasoning}, nil
}

// fallbackFitment is the deterministic additive heuristic: education tier up
// to 25, skill overlap up to 20, work-preference alignment up to 20, core
// value overlap up to 15, tech-employer bonus up to 10, on a base of 40.
func (e *Engine) fallbackFitment(student *models.Student, job *models.Job, recs []models.CareerRecommendation) FitmentResult {
	if student == nil {
		student = &models.Student{}
	}

	score := fitmentBase
	var reasons []string

	spec := strings.ToLower(student.Specialization)
	title := strings.ToLower(job.JobTitle)
	desc := strings.ToLower(job.JobDescription)

	if pts, why := educationMatch(spec, title); pts > 0 {
		score += pts
		reasons = append(reasons, why)
	}

	if n := matchingSkillCount(student, job, recs); n > 0 {
		score += min(n*4, 20)
		reasons = append(reasons, fmt.Sprintf("%d relevant skills identified", n))
	}

	prefs := workPrefs(student)
	workPts := 0
	if containsAny(title, "developer", "design", "creative") {
		workPts += min(pref(prefs, "innovation")/10, 8)
	}
	if containsAny(title, "lead", "senior") {
		workPts += min((100-pref(prefs, "independence"))/10, 6)
	}
	if strings.Contains(title, "startup") || strings.Contains(desc, "fast-paced") {
		workPts += min(pref(prefs, "pace")/10, 6)
	}
	if workPts > 0 {
		score += workPts
		reasons = append(reasons, "Work style preferences align well")
	}

	if matched := matchingValues(student, job); len(matched) > 0 {
		score += min(len(matched)*5, 15)
		reasons = append(reasons, fmt.Sprintf("Core values like %s align with role", strings.Join(matched[:min(len(matched), 2)], " and ")))
	}

	company := strings.ToLower(job.CompanyName)
	if containsAny(company, "tech", "software", "digital") && containsAny(spec, "computer", "software", "information") {
		score += 10
		reasons = append(reasons, "Tech company matches your background")
	}

	reasoning := "Basic compatibility assessment based on profile analysis."
	if len(reasons) > 0 {
		reasoning = strings.Join(reasons, ". ") + "."
	}

	return FitmentResult{
		Score:     clamp(score, fitmentFloorRules, fitmentCeiling),
		Reasoning: reasoning,
	}
}

// educationMatch tiers the specialization-to-title alignment: exact domain
// beats adjacent domain beats generic relevance.
func educationMatch(spec, title string) (int, string) {
	switch {
	case containsAny(spec, "computer", "software", "information"):
		switch {
		case containsAny(title, "software", "developer", "engineer"):
			return 25, "Strong education-role alignment"
		case containsAny(title, "data", "analyst"):
			return 20, "Good technical background match"
		case containsAny(title, "product", "project"):
			return 15, "Relevant technical knowledge"
		}
	case containsAny(spec, "business", "management"):
		switch {
		case containsAny(title, "manager", "consultant", "business"):
			return 25, "Perfect business background match"
		case containsAny(title, "product", "project"):
			return 20, "Strong management skills alignment"
		}
	case containsAny(spec, "design", "art"):
		if containsAny(title, "design", "ui", "ux") {
			return 25, "Excellent design background fit"
		}
	}
	return 0, ""
}

// matchingSkillCount counts job key skills evidenced by the student's
// specialization text, core values, prior recommendation text, or technical
// adjacency for technical specializations.
func matchingSkillCount(student *models.Student, job *models.Job, recs []models.CareerRecommendation) int {
	spec := strings.ToLower(student.Specialization)
	technical := containsAny(spec, "computer", "software", "information", "technology")

	var recText strings.Builder
	for _, r := range recs {
		recText.WriteString(strings.ToLower(r.Role))
		recText.WriteString(" ")
		recText.WriteString(strings.ToLower(r.Explanation))
		recText.WriteString(" ")
	}

	count := 0
	for _, skill := range job.KeySkills {
		sl := strings.ToLower(strings.TrimSpace(skill))
		if sl == "" {
			continue
		}
		matched := strings.Contains(spec, sl) || strings.Contains(recText.String(), sl)
		if !matched {
			for _, cv := range coreValues(student) {
				cvl := strings.ToLower(cv)
				if strings.Contains(sl, cvl) || strings.Contains(cvl, sl) {
					matched = true
					break
				}
			}
		}
		if !matched && technical {
			for _, known := range techSkillCatalog {
				if sl == known || strings.Contains(sl, known) {
					matched = true
					break
				}
			}
		}
		if matched {
			count++
		}
	}
	return count
}

// matchingValues returns the student's core values found in the job's
// description or company name, with synonym expansion.
func matchingValues(student *models.Student, job *models.Job) []string {
	jobContext := strings.ToLower(job.JobDescription + " " + job.CompanyName)
	var matched []string
	for _, cv := range coreValues(student) {
		cvl := strings.ToLower(cv)
		hit := strings.Contains(jobContext, cvl)
		if !hit {
			for _, syn := range valueSynonyms[cvl] {
				if strings.Contains(jobContext, syn) {
					hit = true
					break
				}
			}
		}
		if hit {
			matched = append(matched, cv)
		}
	}
	return matched
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil || v == nil {
		return "{}"
	}
	return string(b)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
