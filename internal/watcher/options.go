package watcher

import "time"

// DefaultSettleDelay is how long the file must stay quiet before a reload.
const DefaultSettleDelay = 250 * time.Millisecond

// Options configures the file watcher behavior.
type Options struct {
	SettleDelay time.Duration
}

// setDefaults applies default values to unset options.
func (o *Options) setDefaults() {
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
}
