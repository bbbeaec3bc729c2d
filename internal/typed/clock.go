package typed

import "time"

// Timer is a pending scheduled callback.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed callbacks. The animator never blocks on it.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// WallClock returns the Clock backed by time.AfterFunc.
func WallClock() Clock {
	return wallClock{}
}
