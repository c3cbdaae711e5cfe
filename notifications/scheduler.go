// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notifications

import "time"

// Scheduler delivers poll ticks. The real implementation wraps time.Ticker;
// tests drive ticks by hand so no real time passes.
type Scheduler interface {
	Ticks() <-chan time.Time
	Stop()
}

type tickerScheduler struct {
	t *time.Ticker
}

func newTickerScheduler(interval time.Duration) Scheduler {
	return &tickerScheduler{t: time.NewTicker(interval)}
}

func (s *tickerScheduler) Ticks() <-chan time.Time { return s.t.C }

func (s *tickerScheduler) Stop() { s.t.Stop() }
