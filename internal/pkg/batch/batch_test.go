package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunCountsOutcomes(t *testing.T) {
	r := Runner{
		Fn: func(ctx context.Context, item string) (Outcome, error) {
			switch item {
			case "ok":
				return Success, nil
			case "skip":
				return Skipped, nil
			case "boom":
				return Failed, errors.New("boom happened")
			default:
				return Failed, nil
			}
		},
	}

	res := r.Run(context.Background(), []string{"ok", "skip", "boom", "ok", "bad"})

	assert.Equal(t, 2, res.Success)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 4, res.Processed())
	assert.Equal(t, []string{"boom happened"}, res.Errors)
}

func TestRunPacesBetweenItems(t *testing.T) {
	paces := 0
	r := Runner{
		Fn: func(ctx context.Context, item string) (Outcome, error) {
			return Success, nil
		},
		Pace: func(ctx context.Context) { paces++ },
	}

	r.Run(context.Background(), []string{"a", "b", "c"})

	// Not after the last item.
	assert.Equal(t, 2, paces)
}

func TestRunCancellationBetweenItems(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	processed := 0
	r := Runner{
		Fn: func(ctx context.Context, item string) (Outcome, error) {
			processed++
			if processed == 2 {
				cancel()
			}
			return Success, nil
		},
	}

	res := r.Run(ctx, []string{"a", "b", "c", "d"})

	assert.Equal(t, 2, processed)
	assert.Equal(t, 2, res.Success)
}

func TestSleepPaceHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	SleepPace(5 * time.Second)(ctx)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRunEmptyItems(t *testing.T) {
	r := Runner{Fn: func(ctx context.Context, item string) (Outcome, error) {
		t.Fatal("must not be called")
		return Failed, nil
	}}

	res := r.Run(context.Background(), nil)
	assert.Zero(t, res.Processed())
}
