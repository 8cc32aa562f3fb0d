package call

import (
	"sync"
	"time"
)

// Scheduler runs a task repeatedly until the returned cancel func is called.
// Cancel must be safe to call more than once and must not wait for a running task.
type Scheduler interface {
	Every(interval time.Duration, task func()) (cancel func())
}

// TickerScheduler runs tasks on a time.Ticker goroutine.
type TickerScheduler struct{}

// Every starts a ticker goroutine for task.
func (TickerScheduler) Every(interval time.Duration, task func()) func() {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// A tick and a cancel can race; prefer the cancel
				select {
				case <-done:
					return
				default:
				}
				task()
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}
