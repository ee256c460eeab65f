package services

import "sync"

// opStatus tracks the loading flag and the last error of a service.
// Loading is true while at least one operation is in flight; every
// operation clears the previous error when it starts.
type opStatus struct {
	mu       sync.Mutex
	inflight int
	err      string
}

func (s *opStatus) begin() {
	s.mu.Lock()
	s.inflight++
	s.err = ""
	s.mu.Unlock()
}

func (s *opStatus) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

func (s *opStatus) fail(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *opStatus) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

func (s *opStatus) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *opStatus) ClearError() {
	s.fail("")
}
