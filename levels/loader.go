package levels

import (
	"context"
	"sync"
)

// LoadResult is delivered once per Load call.
type LoadResult struct {
	Ticket uint64
	Path   string
	Level  *Level
	Err    error
}

// Loader reads and decodes levels off the tick goroutine. Each Load
// supersedes every earlier one; results of superseded loads are discarded by
// Poll so a slow read can never populate over a newer level.
type Loader struct {
	mu      sync.Mutex
	latest  uint64
	results chan LoadResult
	read    func(path string) (*Level, error)
}

func NewLoader() *Loader {
	return NewLoaderWith(LoadLevel)
}

// NewLoaderWith uses read in place of LoadLevel.
func NewLoaderWith(read func(path string) (*Level, error)) *Loader {
	return &Loader{
		results: make(chan LoadResult, 16),
		read:    read,
	}
}

// Load requests path asynchronously and returns its ticket.
func (l *Loader) Load(path string) uint64 {
	l.mu.Lock()
	l.latest++
	ticket := l.latest
	l.mu.Unlock()

	go func() {
		lvl, err := l.read(path)
		l.results <- LoadResult{Ticket: ticket, Path: path, Level: lvl, Err: err}
	}()
	return ticket
}

// Cancel drops any load still in flight.
func (l *Loader) Cancel() {
	l.mu.Lock()
	l.latest++
	l.mu.Unlock()
}

func (l *Loader) current(ticket uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ticket == l.latest
}

// Poll returns the result of the latest load if it has arrived. It never
// blocks.
func (l *Loader) Poll() (LoadResult, bool) {
	for {
		select {
		case res := <-l.results:
			if !l.current(res.Ticket) {
				continue
			}
			return res, true
		default:
			return LoadResult{}, false
		}
	}
}

// Wait blocks until the latest load arrives or ctx is done.
func (l *Loader) Wait(ctx context.Context) (LoadResult, error) {
	for {
		select {
		case res := <-l.results:
			if !l.current(res.Ticket) {
				continue
			}
			return res, nil
		case <-ctx.Done():
			return LoadResult{}, ctx.Err()
		}
	}
}
