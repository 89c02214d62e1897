package geoconform

import (
	"context"
	"sync"
)

// ---- Validation-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast validation.
// Reports created from such a context keep only the first error.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current validation should stop on the first error.
func IsFailFast(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}

// Report collects the issues raised during one validation pass. Nested
// validators append to the same report. A Report is safe for concurrent use.
type Report struct {
	mu       sync.Mutex
	issues   Issues
	failFast bool
	stopped  bool
	ctx      context.Context
}

// NewReport creates a report honoring the fail-fast flag of ctx.
func NewReport(ctx context.Context) *Report {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Report{ctx: ctx, failFast: IsFailFast(ctx)}
}

// Add records issues. Ignore-severity issues are dropped. After the first
// error in fail-fast mode further issues are discarded.
func (r *Report) Add(more ...Issue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range more {
		if r.stopped {
			return
		}
		if it.Severity == Ignore {
			continue
		}
		r.issues = append(r.issues, it)
		if it.Severity == Error && r.failFast {
			r.stopped = true
		}
	}
}

// Done reports whether validation should stop: the context was cancelled or
// fail-fast mode recorded an error.
func (r *Report) Done() bool {
	if r.ctx.Err() != nil {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

// Context returns the context the report was created with.
func (r *Report) Context() context.Context { return r.ctx }

// Issues returns a copy of every recorded issue, warnings included.
func (r *Report) Issues() Issues {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(Issues(nil), r.issues...)
}

// Err returns the error-severity issues as an error, the context error when
// validation was cancelled, or nil.
func (r *Report) Err() error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	if errs := r.Issues().Errors(); len(errs) > 0 {
		return errs
	}
	return nil
}
