// Package scoring holds the career/job compatibility heuristics: fitment
// scoring between a student and a job, ranked career recommendations from a
// completed assessment, and profile summaries. Each operation is delegated to
// the configured text-generation provider when one exists and otherwise runs a
// deterministic fallback, so a missing or failing provider never fails a
// request.
package scoring

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GundamHarshaReddy/Hackokai1/ai"
	"github.com/GundamHarshaReddy/Hackokai1/models"
)

// Engine evaluates students against jobs and careers. A nil generator puts
// every operation on its deterministic path.
type Engine struct {
	gen    ai.Generator
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine builds an Engine. gen may be nil.
func NewEngine(gen ai.Generator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		gen:    gen,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// jitter returns a pseudo-random offset in [-n, n] for score variety.
func (e *Engine) jitter(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(2*n+1) - n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// workPrefs returns the student's slider map, nil-safe. Absent sliders read as
// the 50 midpoint.
func workPrefs(s *models.Student) map[string]int {
	if s == nil {
		return nil
	}
	return s.WorkPreferences.Data()
}

// traits returns the student's Likert map, nil-safe. Absent traits read as 3.
func traits(s *models.Student) map[string]int {
	if s == nil {
		return nil
	}
	return s.PersonalityScores.Data()
}

func pref(m map[string]int, key string) int {
	if v, ok := m[key]; ok {
		return v
	}
	return 50
}

func trait(m map[string]int, key string) int {
	if v, ok := m[key]; ok {
		return v
	}
	return 3
}

func coreValues(s *models.Student) []string {
	if s == nil {
		return nil
	}
	return s.CoreValues
}

func hasValue(values []string, v string) bool {
	for _, cv := range values {
		if strings.EqualFold(cv, v) {
			return true
		}
	}
	return false
}

func hasAnyValue(values []string, wanted ...string) bool {
	for _, w := range wanted {
		if hasValue(values, w) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
