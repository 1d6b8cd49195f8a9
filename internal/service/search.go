package service

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultSearchDebounce = 500 * time.Millisecond

type SearchFunc[T any] func(ctx context.Context, query string) ([]T, error)

type SearchResult[T any] struct {
	Generation uint64
	Query      string
	Items      []T
	Err        error
}

// Searcher debounces queries for one search field. Every Submit starts a new
// generation, cancels the request in flight and only a response belonging
// to the latest generation is delivered.
type Searcher[T any] struct {
	search  SearchFunc[T]
	delay   time.Duration
	deliver func(SearchResult[T])

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewSearcher builds a searcher. deliver runs with the searcher locked and
// must not call back into it.
func NewSearcher[T any](delay time.Duration, search SearchFunc[T], deliver func(SearchResult[T])) *Searcher[T] {
	if delay < 0 {
		delay = 0
	}
	return &Searcher[T]{search: search, delay: delay, deliver: deliver}
}

func (s *Searcher[T]) Submit(ctx context.Context, query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.gen
	}
	s.gen++
	gen := s.gen
	s.stopLocked()
	s.wg.Add(1)
	s.timer = time.AfterFunc(s.delay, func() { s.run(ctx, gen, query) })
	return gen
}

// Generation is the id of the latest submitted query.
func (s *Searcher[T]) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Close drops pending work and waits for in-flight searches to return.
func (s *Searcher[T]) Close() {
	s.mu.Lock()
	s.closed = true
	s.stopLocked()
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Searcher[T]) stopLocked() {
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	s.timer = nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Searcher[T]) run(parent context.Context, gen uint64, query string) {
	defer s.wg.Done()

	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.mu.Unlock()

	items, err := s.search(ctx, query)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		log.Tracef("dropping stale search %d for %q", gen, query)
		return
	}
	s.deliver(SearchResult[T]{Generation: gen, Query: query, Items: items, Err: err})
}

// ListState is the search term and page of a filtered list. Changing the
// term returns to the first page.
type ListState struct {
	Term string
	Page int
}

func (l ListState) WithTerm(term string) ListState {
	if term != l.Term {
		return ListState{Term: term, Page: 1}
	}
	return l
}
