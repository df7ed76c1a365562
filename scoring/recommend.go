package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/GundamHarshaReddy/Hackokai1/ai"
	"github.com/GundamHarshaReddy/Hackokai1/models"
)

// Recommendation is one ranked career suggestion.
type Recommendation struct {
	Role        string `json:"role"`
	Match       int    `json:"match"`
	Explanation string `json:"explanation"`
	Openings    int    `json:"openings"`
}

const (
	recommendMin   = 4
	recommendMax   = 6
	recommendFloor = 45
	recommendCeil  = 95
)

// Recommend produces 4-6 ranked career roles for a completed assessment,
// sorted by descending match. The provider path requests the same JSON shape
// as the deterministic rule table; any provider or parse failure falls back to
// the rules, so an answer is always produced.
func (e *Engine) Recommend(ctx context.Context, student *models.Student) []Recommendation {
	if student == nil {
		student = &models.Student{}
	}

	if e.gen != nil {
		recs, err := e.delegatedRecommend(ctx, student)
		if err == nil {
			return recs
		}
		e.logger.Warn("career recommendation provider call failed, using rule table",
			zap.String("student", student.Email),
			zap.Error(err),
		)
	}

	return e.fallbackRecommend(student)
}

func (e *Engine) delegatedRecommend(ctx context.Context, student *models.Student) ([]Recommendation, error) {
	var prefLines, traitLines []string
	prefs := workPrefs(student)
	for _, key := range models.WorkPreferenceKeys {
		prefLines = append(prefLines, fmt.Sprintf("  - %s: %d/100", key, pref(prefs, key)))
	}
	tr := traits(student)
	for _, key := range models.PersonalityTraitKeys {
		traitLines = append(traitLines, fmt.Sprintf("  - %s: %d/5", key, trait(tr, key)))
	}

	prompt := fmt.Sprintf(`You are an expert career counselor AI with deep knowledge of job markets and personality-career fit. Analyze this complete student assessment profile and recommend 4-6 highly personalized career roles. Respond only with a valid JSON array.

STUDENT PROFILE:
Name: %s
Education: %s in %s
Core Values (top 5 priorities): %s
Work Preferences (0-100 scale):
%s
Personality Assessment (1-5 scale):
%s

REQUIREMENTS:
1. Recommend 4-6 career roles with match scores 75-95.
2. Each explanation must be 2-3 sentences referencing their education, values, work preferences and personality scores.
3. Include a realistic job openings estimate per role.

JSON Response Format:
[{"role": "Specific Job Title", "match": 85, "explanation": "...", "openings": 1200}]`,
		student.Name,
		student.EducationDegree, student.Specialization,
		joinOr(student.CoreValues, "Not specified"),
		strings.Join(prefLines, "\n"),
		strings.Join(traitLines, "\n"),
	)

	raw, err := e.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var entries []map[string]any
	if err := json.Unmarshal([]byte(ai.ExtractJSONArray(raw)), &entries); err != nil {
		return nil, fmt.Errorf("parse recommendations response: %w", err)
	}

	var recs []Recommendation
	for _, entry := range entries {
		role := ai.CoerceString(entry["role"])
		if role == "" {
			continue
		}
		match, ok := ai.CoerceInt(entry["match"])
		if !ok {
			continue
		}
		openings, _ := ai.CoerceInt(entry["openings"])
		recs = append(recs, Recommendation{
			Role:        role,
			Match:       clamp(match, 0, 100),
			Explanation: ai.CoerceString(entry["explanation"]),
			Openings:    openings,
		})
	}

	if len(recs) < recommendMin {
		return nil, fmt.Errorf("provider returned %d usable recommendations, need at least %d", len(recs), recommendMin)
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Match > recs[j].Match })
	if len(recs) > recommendMax {
		recs = recs[:recommendMax]
	}
	return recs, nil
}

// fallbackRecommend is the deterministic rule table. Candidate role families
// are gated on specialization keywords, degree tokens, core values and
// personality/work-preference thresholds; per-candidate match blends four fit
// ratios at up to 25 points each over a base, with a small jitter for
// variety. Fewer than four qualifying families pad with generalist filler.
func (e *Engine) fallbackRecommend(student *models.Student) []Recommendation {
	spec := strings.ToLower(student.Specialization)
	degree := student.EducationDegree
	values := coreValues(student)
	prefs := workPrefs(student)
	tr := traits(student)

	analytical := trait(tr, "analytical")
	conscientiousness := trait(tr, "conscientiousness")
	extraversion := trait(tr, "extraversion")
	creative := trait(tr, "creative")

	innovation := pref(prefs, "innovation")
	independence := pref(prefs, "independence")
	structure := pref(prefs, "structure")
	pace := pref(prefs, "pace")
	interaction := pref(prefs, "interaction")

	var recs []Recommendation
	add := func(role string, base int, eduFit, valFit, workFit, persFit float64, explanation string, openings int) {
		score := base + int(25*(eduFit+valFit+workFit+persFit)+0.5) + e.jitter(5)
		recs = append(recs, Recommendation{
			Role:        role,
			Match:       clamp(score, recommendFloor, recommendCeil),
			Explanation: explanation,
			Openings:    openings,
		})
	}

	technical := containsAny(spec, "computer", "software", "information", "technology")
	if technical {
		valFit := 0.6
		if hasAnyValue(values, "Innovation", "Excellence", "Growth") {
			valFit = 0.8
		}
		workFit := (float64(innovation) + float64(independence)) / 200
		add("Software Developer", 60, 0.9, valFit, workFit, float64(analytical)/5,
			fmt.Sprintf("Your %s in %s provides the technical foundation essential for software development. With work preferences of %d/100 for innovation and %d/100 for independent work, you'll thrive in development environments. Your analytical score of %d/5 indicates strong problem-solving abilities crucial for coding.",
				degree, student.Specialization, innovation, independence, analytical),
			4500)

		if interaction > 60 {
			add("Full Stack Developer", 58, 0.9, valFit, 0.8, float64(analytical)/5,
				fmt.Sprintf("Your technical background covers both frontend and backend work. An interaction preference of %d/100 shows you enjoy collaborative work, ideal for full-stack teams, and your conscientiousness score of %d/5 helps with managing complex projects.",
					interaction, conscientiousness),
				3200)
		}
	}

	if containsAny(spec, "data", "statistics") || strings.Contains(degree, "M.Tech") ||
		hasValue(values, "Innovation") || analytical >= 4 {
		eduFit := 0.7
		if containsAny(spec, "data") {
			eduFit = 0.95
		}
		valFit := 0.6
		if hasAnyValue(values, "Innovation", "Excellence", "Growth") {
			valFit = 0.85
		}
		workFit := (float64(structure) + float64(innovation)) / 200
		add("Data Analyst", 55, eduFit, valFit, workFit, float64(analytical+conscientiousness)/10,
			fmt.Sprintf("Your %s in %s provides an analytical foundation essential for data interpretation. Your structured work preference (%d/100) aligns with data analysis methodologies, and high analytical thinking (%d/5) suits data-driven roles.",
				degree, student.Specialization, structure, analytical),
			2800)
	}

	businessDegree := containsAny(degree, "MBA", "B.Com", "BBA")
	if businessDegree || containsAny(spec, "marketing", "business") ||
		(interaction > 70 && extraversion >= 4) {
		eduFit := 0.6
		if businessDegree {
			eduFit = 0.9
		}
		valFit := 0.6
		if hasAnyValue(values, "Creativity", "Impact", "Growth", "Leadership") {
			valFit = 0.8
		}
		workFit := (float64(interaction) + float64(pace)) / 200
		persFit := float64(extraversion+conscientiousness) / 10
		add("Digital Marketing Specialist", 52, eduFit, valFit, workFit, persFit,
			fmt.Sprintf("Your %s provides business acumen essential for marketing strategy. A high interaction preference (%d/100) and pace preference (%d/100) suit the dynamic marketing environment, and your extraversion score of %d/5 indicates natural communication skills.",
				degree, interaction, pace, extraversion),
			2500)

		if hasValue(values, "Leadership") || conscientiousness >= 4 {
			add("Product Manager", 55, eduFit, 0.85, workFit, persFit,
				fmt.Sprintf("Your balanced work preferences (innovation %d/100, structure %d/100) are ideal for product management. High conscientiousness (%d/5) together with your leadership orientation shows strong management potential.",
					innovation, structure, conscientiousness),
				1800)
		}
	}

	if containsAny(spec, "design", "art") || hasValue(values, "Creativity") || creative >= 4 {
		eduFit := 0.6
		if containsAny(spec, "design") {
			eduFit = 0.95
		}
		valFit := 0.7
		if hasAnyValue(values, "Creativity", "Innovation", "Excellence") {
			valFit = 0.9
		}
		workFit := (float64(innovation) + float64(independence)) / 200
		add("UI/UX Designer", 58, eduFit, valFit, workFit, float64(creative)/5,
			fmt.Sprintf("Your profile aligns with design thinking and user experience principles. An innovation preference of %d/100 shows an ideal design mindset, and a creative thinking score of %d/5 is essential for user-centered solutions.",
				innovation, creative),
			2200)
	}

	if containsAny(degree, "B.Tech", "B.E") && !containsAny(spec, "computer", "software") {
		valFit := 0.6
		if hasAnyValue(values, "Excellence", "Innovation", "Growth") {
			valFit = 0.75
		}
		workFit := (float64(structure) + float64(innovation)) / 200
		add("Technical Project Manager", 50, 0.8, valFit, workFit, float64(analytical+conscientiousness)/10,
			fmt.Sprintf("Your engineering background combined with balanced work preferences makes you a fit for technical project leadership. Analytical thinking of %d/5 and conscientiousness of %d/5 support reliable project execution.",
				analytical, conscientiousness),
			1500)
	}

	fillers := []string{"Project Coordinator", "Business Analyst", "Operations Associate", "Customer Success Associate"}
	for i := 0; len(recs) < recommendMin; i++ {
		add(fillers[i%len(fillers)], 45, 0.6, 0.7, 0.6, 0.7,
			fmt.Sprintf("Your balanced work preferences show adaptability useful across diverse teams and requirements, and conscientiousness of %d/5 supports dependable execution.",
				conscientiousness),
			1800)
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Match > recs[j].Match })
	if len(recs) > recommendMax {
		recs = recs[:recommendMax]
	}
	return recs
}
