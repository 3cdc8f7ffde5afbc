package driving

import "context"

// Scheduler repeats evaluation passes at the configured interval and
// records each run.
type Scheduler interface {
	// Start blocks until ctx is done or Stop is called. It returns
	// ctx.Err() when the context ends the loop.
	Start(ctx context.Context) error

	// Stop ends the loop and waits for an in-flight pass.
	Stop() error
}
