package engine

import "time"

// Clock supplies the engine's notion of now. Injected so tests can simulate
// day rollover deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock Clock used outside tests.
func SystemClock() Clock { return systemClock{} }
