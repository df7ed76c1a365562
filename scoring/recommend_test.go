package scoring

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GundamHarshaReddy/Hackokai1/models"
)

func assertRecommendationSet(t *testing.T, recs []Recommendation) {
	t.Helper()
	require.GreaterOrEqual(t, len(recs), 4)
	require.LessOrEqual(t, len(recs), 6)
	assert.True(t, sort.SliceIsSorted(recs, func(i, j int) bool {
		return recs[i].Match > recs[j].Match
	}), "recommendations must be sorted by descending match")
	for _, r := range recs {
		assert.NotEmpty(t, r.Role)
		assert.NotEmpty(t, r.Explanation)
		assert.GreaterOrEqual(t, r.Match, 45)
		assert.LessOrEqual(t, r.Match, 95)
	}
}

func TestFallbackRecommendTechnicalStudent(t *testing.T) {
	e := NewEngine(nil, nil)

	recs := e.Recommend(context.Background(), csStudent())
	assertRecommendationSet(t, recs)

	roles := make([]string, 0, len(recs))
	for _, r := range recs {
		roles = append(roles, r.Role)
	}
	assert.Contains(t, roles, "Software Developer")
}

func TestFallbackRecommendEmptyProfilePadsWithFiller(t *testing.T) {
	e := NewEngine(nil, nil)

	recs := e.Recommend(context.Background(), &models.Student{})
	assertRecommendationSet(t, recs)
	assert.Len(t, recs, 4)

	seen := make(map[string]bool)
	for _, r := range recs {
		assert.False(t, seen[r.Role], "filler roles must not repeat: %s", r.Role)
		seen[r.Role] = true
	}
}

func TestFallbackRecommendNilStudent(t *testing.T) {
	e := NewEngine(nil, nil)
	assertRecommendationSet(t, e.Recommend(context.Background(), nil))
}

func TestDelegatedRecommendParsesProviderArray(t *testing.T) {
	response := "```json\n" + `[
		{"role": "Cloud Engineer", "match": 91, "explanation": "Strong infra skills.", "openings": 1200},
		{"role": "Backend Developer", "match": "88%", "explanation": "Solid CS base.", "openings": 2400},
		{"role": "SRE", "match": 84, "explanation": "Operational mindset.", "openings": 900},
		{"role": "Data Engineer", "match": 86, "explanation": "Pipeline aptitude.", "openings": 1100},
		{"role": "", "match": 99, "explanation": "unusable, no role"},
		{"role": "QA Engineer", "match": 70, "explanation": "Detail oriented.", "openings": 800}
	]` + "\n```"
	e := NewEngine(&stubGenerator{response: response}, nil)

	recs := e.Recommend(context.Background(), csStudent())
	require.Len(t, recs, 5)
	assert.Equal(t, "Cloud Engineer", recs[0].Role)
	assert.Equal(t, 91, recs[0].Match)
	assert.Equal(t, 88, recs[1].Match)
	assert.True(t, sort.SliceIsSorted(recs, func(i, j int) bool {
		return recs[i].Match > recs[j].Match
	}))
}

func TestDelegatedRecommendFallsBackOnShortAnswer(t *testing.T) {
	// Two usable entries is below the minimum; the rule table must take over.
	response := `[{"role": "Cloud Engineer", "match": 91, "explanation": "x"},
		{"role": "SRE", "match": 84, "explanation": "y"}]`
	e := NewEngine(&stubGenerator{response: response}, nil)

	recs := e.Recommend(context.Background(), csStudent())
	assertRecommendationSet(t, recs)
}

func TestDelegatedRecommendFallsBackOnGarbage(t *testing.T) {
	e := NewEngine(&stubGenerator{response: "I recommend becoming a pilot"}, nil)
	assertRecommendationSet(t, e.Recommend(context.Background(), csStudent()))
}
