package component

import "time"

// Lifetime destroys its entity, and everything attached to it, once Duration
// of world time has passed since the lifetime system first saw it.
type Lifetime struct {
	Duration time.Duration
	// Deadline is the world time of expiry, set when Armed.
	Deadline time.Duration
	Armed    bool
}

var LifetimeComponent = NewComponent[Lifetime]()
