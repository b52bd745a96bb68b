package queue

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Step handles item i and reports whether it reached an external API.
type Step func(ctx context.Context, i int) (acted bool)

// Runner processes items one at a time and waits Delay between items that
// reached an external API, so rate limits are respected.
type Runner struct {
	Delay time.Duration
	sleep func(ctx context.Context, d time.Duration) error
}

func NewRunner(delay time.Duration) *Runner {
	return &Runner{Delay: delay, sleep: sleepContext}
}

// Run calls step for every index in order. It stops early only when ctx is
// cancelled.
func (r *Runner) Run(ctx context.Context, count int, step Step) error {
	pending := false
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if pending && r.Delay > 0 {
			logrus.WithField("delay", r.Delay).Debug("waiting before next item")
			if err := r.sleepFn()(ctx, r.Delay); err != nil {
				return err
			}
			pending = false
		}

		if step(ctx, i) {
			pending = true
		}
	}
	return nil
}

func (r *Runner) sleepFn() func(context.Context, time.Duration) error {
	if r.sleep == nil {
		return sleepContext
	}
	return r.sleep
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
