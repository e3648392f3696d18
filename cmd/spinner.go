package cmd

import (
	"fmt"
	"sync"
	"time"
)

type spinner struct {
	chars    []string
	index    int
	message  string
	stop     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	stopped  bool
	disabled bool
}

func newSpinner() *spinner {
	return &spinner{
		chars: []string{"|", "/", "-", "\\"},
		stop:  make(chan struct{}),
	}
}

// Disable prevents the spinner from showing any output
func (s *spinner) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = true
}

func (s *spinner) Start(message string) {
	s.mu.Lock()
	if s.disabled {
		s.mu.Unlock()
		return
	}
	if s.stopped {
		s.stop = make(chan struct{})
		s.stopped = false
	}
	s.message = message
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.stop:
				s.mu.Lock()
				if !s.disabled {
					fmt.Printf("\r%s... Done!     \n", s.message)
				}
				s.mu.Unlock()
				return
			default:
				s.mu.Lock()
				if !s.disabled {
					fmt.Printf("\r%s... %s", s.message, s.chars[s.index])
					s.index = (s.index + 1) % len(s.chars)
				}
				s.mu.Unlock()
				time.Sleep(100 * time.Millisecond)
			}
		}
	}()
}

func (s *spinner) Stop() {
	s.mu.Lock()
	if s.disabled {
		s.mu.Unlock()
		return
	}
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
	s.mu.Unlock()
	s.wg.Wait()
}
