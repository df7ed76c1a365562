package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/GundamHarshaReddy/Hackokai1/models"
)

// stubGenerator cans one response for the delegated paths.
type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	return s.response, s.err
}

func (s *stubGenerator) Model() string { return "stub" }

func csStudent() *models.Student {
	return &models.Student{
		Name:            "Asha",
		Email:           "asha@example.com",
		Phone:           "9876543210",
		EducationDegree: "B.Tech",
		Specialization:  "Computer Science",
		CoreValues:      datatypes.NewJSONSlice([]string{"Innovation", "Growth", "Excellence", "Impact", "Balance"}),
		WorkPreferences: datatypes.NewJSONType(map[string]int{
			"independence": 70, "structure": 40, "pace": 60, "innovation": 80, "interaction": 50,
		}),
		PersonalityScores: datatypes.NewJSONType(map[string]int{
			"openness": 4, "conscientiousness": 4, "extraversion": 3,
			"agreeableness": 4, "neuroticism": 2, "analytical": 5, "creative": 3,
		}),
	}
}

func TestFallbackFitmentBounds(t *testing.T) {
	e := NewEngine(nil, nil)

	result := e.FitmentScore(context.Background(), &models.Student{}, &models.Job{}, nil)
	assert.GreaterOrEqual(t, result.Score, 35)
	assert.LessOrEqual(t, result.Score, 95)
	assert.NotEmpty(t, result.Reasoning)

	result = e.FitmentScore(context.Background(), nil, nil, nil)
	assert.GreaterOrEqual(t, result.Score, 35)
	assert.LessOrEqual(t, result.Score, 95)
}

func TestFallbackFitmentTechnicalMatch(t *testing.T) {
	e := NewEngine(nil, nil)
	job := &models.Job{
		JobTitle:    "Software Developer",
		CompanyName: "Acme Labs",
		KeySkills:   datatypes.NewJSONSlice([]string{"JavaScript"}),
	}

	result := e.FitmentScore(context.Background(), csStudent(), job, nil)
	assert.GreaterOrEqual(t, result.Score, 70, "CS student applying to a developer role should score well: %s", result.Reasoning)
	assert.LessOrEqual(t, result.Score, 95)
}

func TestFallbackFitmentCeiling(t *testing.T) {
	e := NewEngine(nil, nil)
	job := &models.Job{
		JobTitle:       "Senior Software Developer",
		CompanyName:    "TechNova Software",
		JobDescription: "Fast-paced innovative team focused on growth and impact.",
		KeySkills:      datatypes.NewJSONSlice([]string{"JavaScript", "Python", "SQL", "Docker", "AWS", "React"}),
	}

	result := e.FitmentScore(context.Background(), csStudent(), job, nil)
	assert.LessOrEqual(t, result.Score, 95)
}

func TestDelegatedFitmentClamped(t *testing.T) {
	for _, tc := range []struct {
		name     string
		response string
		want     int
	}{
		{"above ceiling", `{"score": 120, "reasoning": "great"}`, 95},
		{"below floor", `{"score": 2, "reasoning": "poor"}`, 30},
		{"fenced", "```json\n{\"score\": 81, \"reasoning\": \"solid\"}\n```", 81},
		{"percent string", `{"score": "77%", "reasoning": "good"}`, 77},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(&stubGenerator{response: tc.response}, nil)
			result := e.FitmentScore(context.Background(), csStudent(), &models.Job{JobTitle: "Analyst"}, nil)
			assert.Equal(t, tc.want, result.Score)
		})
	}
}

func TestDelegatedFitmentNeutralOnFailure(t *testing.T) {
	for _, tc := range []struct {
		name string
		gen  *stubGenerator
	}{
		{"provider error", &stubGenerator{err: context.DeadlineExceeded}},
		{"garbage response", &stubGenerator{response: "sorry, I cannot help with that"}},
		{"missing score", &stubGenerator{response: `{"reasoning": "no score"}`}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(tc.gen, nil)
			result := e.FitmentScore(context.Background(), csStudent(), &models.Job{JobTitle: "Analyst"}, nil)
			assert.Equal(t, 50, result.Score)
			assert.NotEmpty(t, result.Reasoning)
		})
	}
}

func TestFitmentSkillOverlapFromRecommendations(t *testing.T) {
	e := NewEngine(nil, nil)
	student := &models.Student{Specialization: "Economics"}
	job := &models.Job{
		JobTitle:  "Business Analyst",
		KeySkills: datatypes.NewJSONSlice([]string{"data analysis"}),
	}
	recs := []models.CareerRecommendation{
		{Role: "Data Analyst", Explanation: "Strong data analysis aptitude."},
	}

	with := e.FitmentScore(context.Background(), student, job, recs)
	without := e.FitmentScore(context.Background(), student, job, nil)
	require.Greater(t, with.Score, without.Score)
}
