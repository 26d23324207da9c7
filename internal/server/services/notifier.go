// Package services contains the server-side business logic: account and
// credential management, the upload orchestration state machine, points
// accounting, and the dashboard aggregation.
package services

import "context"

// Notifier delivers user-visible outcome messages to the chat front-end.
// Every terminal upload outcome goes through it.
type Notifier interface {
	Notify(ctx context.Context, accountID string, text string) error
}

// NopNotifier drops notifications; used when no front-end is attached.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, accountID string, text string) error {
	return nil
}
