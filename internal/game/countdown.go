package game

import (
	"sync"
	"time"
)

// CountdownSeconds is how long the player waits before each guess.
const CountdownSeconds = 3

// Ticker schedules fn every interval until the returned stop func is called.
// stop must be safe to call more than once and from inside fn.
type Ticker interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// RealTicker runs fn on its own goroutine, driven by a time.Ticker.
type RealTicker struct{}

func (RealTicker) Every(interval time.Duration, fn func()) func() {
	t := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				// A tick and a stop can race; stop wins.
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// startCountdown replaces any running countdown with a fresh one of n
// seconds. Callers hold s.mu.
func (s *Session) startCountdown(n int) {
	s.stopCountdown()
	s.gen++
	s.seconds = n
	if n <= 0 {
		return
	}
	gen := s.gen
	s.stop = s.ticker.Every(time.Second, func() { s.tickFrom(gen) })
}

// stopCountdown cancels the pending ticker, if any. Callers hold s.mu.
func (s *Session) stopCountdown() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// decrement moves the countdown one second forward and reports whether
// anything changed. Callers hold s.mu.
func (s *Session) decrement() bool {
	if s.seconds <= 0 {
		return false
	}
	s.seconds--
	if s.seconds == 0 {
		s.stopCountdown()
	}
	return true
}

// tickFrom is the ticker callback for countdown chain gen. Ticks from a
// chain that has since been replaced are dropped.
func (s *Session) tickFrom(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	changed := s.decrement()
	s.mu.Unlock()

	if changed {
		s.notifier.Publish(Event{Kind: EventTick})
	}
}
