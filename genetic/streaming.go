package genetic

import (
	"sync"
	"sync/atomic"
)

// Stream forwards reports to a buffered channel without blocking the engine
// When the consumer lags, the oldest buffered report is replaced by the newest
type Stream struct {
	reports chan Report
	dropped atomic.Uint64

	closeOnce sync.Once
	mu        sync.Mutex
	closed    bool
}

// NewStream creates a stream with the given channel capacity (minimum 1)
func NewStream(buffer int) *Stream {
	return &Stream{reports: make(chan Report, max(1, buffer))}
}

// OnGeneration implements Observer
func (s *Stream) OnGeneration(r Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	for {
		select {
		case s.reports <- r:
			return
		default:
		}
		// Full: discard the oldest and retry
		select {
		case <-s.reports:
			s.dropped.Add(1)
		default:
		}
	}
}

// Reports returns the receive side; closed by Close
func (s *Stream) Reports() <-chan Report {
	return s.reports
}

// Close stops accepting reports and closes the channel
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.reports)
		s.mu.Unlock()
	})
}

// Dropped returns the number of reports discarded because the consumer lagged
func (s *Stream) Dropped() uint64 {
	return s.dropped.Load()
}
