package commands

import "time"

// Stock directions reported to Observer.StockMoved.
const (
	StockOut = "out"
	StockIn  = "in"
)

// Observer is told about every handled command. The metrics adapter implements it.
type Observer interface {
	CommandHandled(action string, err error, elapsed time.Duration)
	StockMoved(direction string, units int)
}

// NopObserver discards observations.
type NopObserver struct{}

func (NopObserver) CommandHandled(string, error, time.Duration) {}

func (NopObserver) StockMoved(string, int) {}

func observe(observer Observer, action string, started time.Time, err *error) {
	observer.CommandHandled(action, *err, time.Since(started))
}
