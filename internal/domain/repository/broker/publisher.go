package broker

import "context"

// Publisher forwards one human-readable progress line to an external stream
// so headless runs can be observed.
type Publisher interface {
	Publish(ctx context.Context, line string) error
}
