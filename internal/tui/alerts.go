package tui

import (
	"context"
)

// alertQueue collects session alerts until the model shows them. Update
// prompts are driven by the model itself, so Prompt always cancels.
type alertQueue struct {
	pending []string
}

func (q *alertQueue) Alert(_ context.Context, msg string) error {
	q.pending = append(q.pending, msg)
	return nil
}

func (q *alertQueue) Prompt(context.Context, string, string) (string, bool, error) {
	return "", false, nil
}

// pop returns the oldest pending alert.
func (q *alertQueue) pop() (string, bool) {
	if len(q.pending) == 0 {
		return "", false
	}
	msg := q.pending[0]
	q.pending = q.pending[1:]
	return msg, true
}
