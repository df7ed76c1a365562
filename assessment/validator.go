package assessment

import (
	"context"
	"sync"
	"time"
)

// CheckFunc answers whether a single field value is acceptable, typically by
// asking the server. A returned error means the check could not be performed;
// the validator treats that as valid so a flaky network never blocks the form.
type CheckFunc func(ctx context.Context, field, value string) (bool, string, error)

// Result is a completed validation for the field's most recent value.
type Result struct {
	Field   string
	Value   string
	Valid   bool
	Message string
}

type inflight struct {
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// FieldValidator debounces per-field checks while the student types. Each new
// value cancels the field's pending check, and a stale check that loses the
// race can never overwrite the result of a newer one.
type FieldValidator struct {
	check    CheckFunc
	debounce time.Duration
	deliver  func(Result)

	mu      sync.Mutex
	pending map[string]*inflight
	seq     map[string]uint64
	closed  bool
}

// NewFieldValidator wires a validator with the given debounce window and
// result sink. deliver is called from the checking goroutine.
func NewFieldValidator(check CheckFunc, debounce time.Duration, deliver func(Result)) *FieldValidator {
	return &FieldValidator{
		check:    check,
		debounce: debounce,
		deliver:  deliver,
		pending:  make(map[string]*inflight),
		seq:      make(map[string]uint64),
	}
}

// Submit records a new value for the field and schedules its check after the
// debounce window, cancelling any earlier pending check for the same field.
func (v *FieldValidator) Submit(field, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if prev, ok := v.pending[field]; ok {
		prev.timer.Stop()
		prev.cancel()
	}
	v.seq[field]++
	seq := v.seq[field]
	ctx, cancel := context.WithCancel(context.Background())
	fl := &inflight{seq: seq, cancel: cancel}
	fl.timer = time.AfterFunc(v.debounce, func() {
		v.run(ctx, field, value, seq)
	})
	v.pending[field] = fl
}

func (v *FieldValidator) run(ctx context.Context, field, value string, seq uint64) {
	if ctx.Err() != nil {
		return
	}
	valid, msg, err := v.check(ctx, field, value)
	if err != nil {
		// Fail open. A superseded request is the one exception: its result
		// must not surface at all.
		if ctx.Err() != nil {
			return
		}
		valid, msg = true, ""
	}

	v.mu.Lock()
	if v.closed || v.seq[field] != seq {
		v.mu.Unlock()
		return
	}
	delete(v.pending, field)
	v.mu.Unlock()

	if v.deliver != nil {
		v.deliver(Result{Field: field, Value: value, Valid: valid, Message: msg})
	}
}

// Close cancels every pending check and drops future submissions.
func (v *FieldValidator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	for _, fl := range v.pending {
		fl.timer.Stop()
		fl.cancel()
	}
	v.pending = make(map[string]*inflight)
}
