package assessment

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultSink struct {
	mu      sync.Mutex
	results []Result
}

func (s *resultSink) deliver(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
}

func (s *resultSink) snapshot() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Result(nil), s.results...)
}

func TestFieldValidatorDebounce(t *testing.T) {
	sink := &resultSink{}
	v := NewFieldValidator(func(_ context.Context, _, value string) (bool, string, error) {
		return !strings.Contains(value, "taken"), "", nil
	}, 20*time.Millisecond, sink.deliver)
	defer v.Close()

	// Rapid typing: only the last value should ever be checked.
	v.Submit("email", "a@")
	v.Submit("email", "a@b")
	v.Submit("email", "a@b.taken")

	require.Eventually(t, func() bool {
		return len(sink.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	got := sink.snapshot()[0]
	assert.Equal(t, "a@b.taken", got.Value)
	assert.False(t, got.Valid)
}

func TestFieldValidatorStaleResultNeverWins(t *testing.T) {
	sink := &resultSink{}
	release := make(chan struct{})
	var calls sync.Map
	v := NewFieldValidator(func(ctx context.Context, _, value string) (bool, string, error) {
		calls.Store(value, true)
		if value == "slow" {
			select {
			case <-release:
			case <-ctx.Done():
				return false, "", ctx.Err()
			}
		}
		return true, value, nil
	}, time.Millisecond, sink.deliver)
	defer v.Close()

	v.Submit("phone", "slow")
	require.Eventually(t, func() bool {
		_, ok := calls.Load("slow")
		return ok
	}, time.Second, time.Millisecond)

	v.Submit("phone", "fast")
	require.Eventually(t, func() bool {
		return len(sink.snapshot()) == 1
	}, time.Second, time.Millisecond)
	close(release)

	time.Sleep(20 * time.Millisecond)
	results := sink.snapshot()
	require.Len(t, results, 1, "the superseded check must not surface")
	assert.Equal(t, "fast", results[0].Message)
}

func TestFieldValidatorFailsOpen(t *testing.T) {
	sink := &resultSink{}
	v := NewFieldValidator(func(_ context.Context, _, _ string) (bool, string, error) {
		return false, "", context.DeadlineExceeded
	}, time.Millisecond, sink.deliver)
	defer v.Close()

	v.Submit("email", "a@b.com")
	require.Eventually(t, func() bool {
		return len(sink.snapshot()) == 1
	}, time.Second, time.Millisecond)
	assert.True(t, sink.snapshot()[0].Valid, "a failing check never blocks the form")
}

func TestFieldValidatorIndependentFields(t *testing.T) {
	sink := &resultSink{}
	v := NewFieldValidator(func(_ context.Context, field, _ string) (bool, string, error) {
		return true, field, nil
	}, time.Millisecond, sink.deliver)
	defer v.Close()

	v.Submit("email", "a@b.com")
	v.Submit("phone", "9876543210")

	require.Eventually(t, func() bool {
		return len(sink.snapshot()) == 2
	}, time.Second, time.Millisecond)
}

func TestFieldValidatorClose(t *testing.T) {
	sink := &resultSink{}
	v := NewFieldValidator(func(_ context.Context, _, _ string) (bool, string, error) {
		return true, "", nil
	}, 50*time.Millisecond, sink.deliver)

	v.Submit("email", "a@b.com")
	v.Close()
	v.Submit("email", "after-close")

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, sink.snapshot())
}
