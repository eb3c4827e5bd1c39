package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeLevel
)

func (k ChangeKind) String() string {
	if k == ChangeLevel {
		return "level"
	}
	return "prefab"
}

// Change is one debounced write to a prefab spec or level file.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports changes under the watched directories. Events and Errors
// are closed once the watcher stops.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run reports a path once it has gone watchDebounce without another event,
// so a burst of writes surfaces as a single Change after the last one.
func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Events)

	pending := make(map[string]pendingChange)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, ok := classify(event)
			if !ok {
				continue
			}
			pending[change.Path] = pendingChange{Change: change, due: time.Now().Add(watchDebounce)}
			if fire == nil {
				timer.Reset(watchDebounce)
				fire = timer.C
			}
		case <-fire:
			fire = nil
			now := time.Now()
			var next time.Duration
			for path, p := range pending {
				if wait := p.due.Sub(now); wait > 0 {
					if next == 0 || wait < next {
						next = wait
					}
					continue
				}
				delete(pending, path)
				select {
				case w.Events <- p.Change:
				case <-w.closeCh:
					return
				}
			}
			if next > 0 {
				timer.Reset(next)
				fire = timer.C
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Drop errors nobody is reading.
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

type pendingChange struct {
	Change
	due time.Time
}

func classify(event fsnotify.Event) (Change, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return Change{}, false
	}
	switch {
	case IsSpecFile(event.Name):
		return Change{Path: event.Name, Kind: ChangeSpec}, true
	case IsLevelFile(event.Name):
		return Change{Path: event.Name, Kind: ChangeLevel}, true
	}
	return Change{}, false
}

func IsSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func IsLevelFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}
