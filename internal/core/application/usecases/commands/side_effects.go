package commands

import (
	"context"
	"fmt"
	"time"
)

// sideEffectRecorder runs external side effects (notifications, document
// generation) with a per-call timeout and collects failures instead of
// propagating them. A stage's state transition commits regardless of side
// effect outcomes; failed effects are reported in the stage result so the
// caller can retry or alert.
type sideEffectRecorder struct {
	timeout time.Duration
	failed  []string
}

func newSideEffectRecorder(timeout time.Duration) *sideEffectRecorder {
	return &sideEffectRecorder{timeout: timeout}
}

// Run executes fn under the configured timeout. A non-nil error is recorded
// under the given label and never returned.
func (r *sideEffectRecorder) Run(ctx context.Context, label string, fn func(ctx context.Context) error) {
	boundedCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := fn(boundedCtx); err != nil {
		r.failed = append(r.failed, fmt.Sprintf("%s: %v", label, err))
	}
}

// Failed returns the recorded failure descriptions, one per failed effect.
func (r *sideEffectRecorder) Failed() []string {
	return r.failed
}
