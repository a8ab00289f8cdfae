package batch

import (
	"context"
	"time"
)

// Outcome classifies one processed item.
type Outcome int

const (
	Success Outcome = iota
	Failed
	Skipped
)

// Result aggregates a finished run.
type Result struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// Processed returns the number of items that were actually worked on.
func (r Result) Processed() int { return r.Success + r.Failed }

// Runner executes a sequence of work items strictly one at a time.
// Pacing and cancellation happen between items, never mid-item.
type Runner struct {
	// Fn processes one item. A non-nil error counts the item as Failed and
	// the error message is collected; otherwise the returned Outcome counts.
	Fn func(ctx context.Context, item string) (Outcome, error)

	// Pace runs between items (not after the last). Nil means no pacing.
	Pace func(ctx context.Context)
}

// SleepPace returns a pacing hook that sleeps for d, honoring cancellation.
func SleepPace(d time.Duration) func(ctx context.Context) {
	return func(ctx context.Context) {
		select {
		case <-ctx.Done():
		case <-time.After(d):
		}
	}
}

// Run processes items sequentially until done or ctx is canceled.
// Cancellation is only observed between items.
func (r Runner) Run(ctx context.Context, items []string) Result {
	var res Result
	for i, item := range items {
		if ctx.Err() != nil {
			break
		}

		outcome, err := r.Fn(ctx, item)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, err.Error())
		} else {
			switch outcome {
			case Success:
				res.Success++
			case Failed:
				res.Failed++
			case Skipped:
				res.Skipped++
			}
		}

		if r.Pace != nil && i < len(items)-1 {
			r.Pace(ctx)
		}
	}
	return res
}
