package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackSummaryComposition(t *testing.T) {
	e := NewEngine(nil, nil)

	summary := e.Summarize(context.Background(), csStudent(), nil)
	assert.Contains(t, summary, "Asha")
	assert.Contains(t, summary, "Computer Science")
	assert.Contains(t, summary, "Innovation")
	assert.Contains(t, summary, "seeks innovative approaches")
	assert.Contains(t, summary, "organized and detail-oriented")
}

func TestSummarizeUsesProviderWhenAvailable(t *testing.T) {
	e := NewEngine(&stubGenerator{response: "A concise provider-written summary."}, nil)
	summary := e.Summarize(context.Background(), csStudent(), nil)
	assert.Equal(t, "A concise provider-written summary.", summary)
}

func TestSummarizeFallsBackOnProviderError(t *testing.T) {
	e := NewEngine(&stubGenerator{err: context.DeadlineExceeded}, nil)
	summary := e.Summarize(context.Background(), csStudent(), nil)
	assert.Contains(t, summary, "Asha")
}
