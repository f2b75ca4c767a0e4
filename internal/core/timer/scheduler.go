package timer

import (
	"sync"
	"time"
)

// Scheduler runs a callback repeatedly until the returned cancel function is called.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// SystemScheduler is the default Scheduler backed by time.Ticker.
var SystemScheduler Scheduler = systemScheduler{}

type systemScheduler struct{}

func (systemScheduler) Every(interval time.Duration, fn func()) func() {
	stopCh := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stopCh) })
	}
}
