package loop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInlineRunsCompletion(t *testing.T) {
	var order []string
	Inline{}.Go(func(ctx context.Context) func() {
		order = append(order, "work")
		return func() { order = append(order, "done") }
	})
	Inline{}.Go(func(context.Context) func() { return nil })
	assert.Equal(t, []string{"work", "done"}, order)
}

func TestQueueDrain(t *testing.T) {
	var q Queue
	q.Go(func(context.Context) func() { return nil })
	q.Go(func(context.Context) func() { return nil })
	assert.Equal(t, 2, q.Len())
	assert.Len(t, q.Drain(), 2)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain())
}
