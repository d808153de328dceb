// Package loop models the single UI thread: blocking work runs elsewhere,
// its completion always runs back on the loop.
package loop

import "context"

// Task performs blocking work and returns the completion to run on the
// loop. A nil completion is allowed.
type Task func(ctx context.Context) func()

// Scheduler accepts tasks. Completions are never cancelled: a task that
// finishes after the user moved on still applies.
type Scheduler interface {
	Go(Task)
}

// Inline runs each task and its completion immediately on the caller.
type Inline struct {
	Ctx context.Context
}

func (s Inline) Go(t Task) {
	ctx := s.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if done := t(ctx); done != nil {
		done()
	}
}

// Queue collects tasks for a host loop to drain, such as the terminal UI
// turning them into commands.
type Queue struct {
	pending []Task
}

func (q *Queue) Go(t Task) { q.pending = append(q.pending, t) }

// Drain returns and clears the queued tasks.
func (q *Queue) Drain() []Task {
	out := q.pending
	q.pending = nil
	return out
}

// Len reports queued tasks.
func (q *Queue) Len() int { return len(q.pending) }
