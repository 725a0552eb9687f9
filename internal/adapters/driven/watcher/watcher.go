// Package watcher reports changes to document files using fsnotify.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/redliner/internal/core/ports/driven"
	"github.com/custodia-labs/redliner/internal/logger"
)

// DefaultSettleDelay is how long a file must be quiet before a modification
// is reported. Editors often write a file in several steps.
const DefaultSettleDelay = 250 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher watches individual files by watching their parent directories.
type Watcher struct {
	settle time.Duration
}

// New creates a watcher. A non-positive settle delay uses DefaultSettleDelay.
func New(settle time.Duration) *Watcher {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Watcher{settle: settle}
}

// Watch starts watching paths. Events carry the path exactly as passed in.
func (w *Watcher) Watch(ctx context.Context, paths []string) (<-chan driven.FileEvent, <-chan error, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	tracked := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		clean := filepath.Clean(p)
		tracked[clean] = p
		dirs[filepath.Dir(clean)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			// A missing folder is not fatal; its documents are already gone.
			logger.Warn("cannot watch %s: %v", dir, err)
			continue
		}
		logger.Debug("watching %s", dir)
	}

	run := &session{
		fsw:     fw,
		settle:  w.settle,
		tracked: tracked,
		pending: make(map[string]*time.Timer),
		events:  make(chan driven.FileEvent, 16),
		errors:  make(chan error, 4),
	}
	go run.loop(ctx)

	return run.events, run.errors, nil
}

// session is one active Watch call.
type session struct {
	fsw     *fsnotify.Watcher
	settle  time.Duration
	tracked map[string]string

	mu      sync.Mutex
	pending map[string]*time.Timer
	wg      sync.WaitGroup

	events chan driven.FileEvent
	errors chan error
}

func (s *session) loop(ctx context.Context) {
	defer s.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.fsw.Events:
			if !ok {
				return
			}
			s.handle(ctx, event)
		case err, ok := <-s.fsw.Errors:
			if !ok {
				return
			}
			select {
			case s.errors <- err:
			default:
				logger.Warn("dropped watcher error: %v", err)
			}
		}
	}
}

func (s *session) handle(ctx context.Context, event fsnotify.Event) {
	original, ok := s.tracked[filepath.Clean(event.Name)]
	if !ok {
		return
	}

	switch {
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		s.cancelPending(original)
		s.emit(ctx, driven.FileEvent{Path: original, Kind: driven.FileRemoved})
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		s.startSettling(ctx, original)
	}
}

// startSettling reports a modification once the file has been quiet for
// the settle delay.
func (s *session) startSettling(ctx context.Context, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, exists := s.pending[path]; exists {
		if t.Stop() {
			s.wg.Done()
		}
	}

	s.wg.Add(1)
	s.pending[path] = time.AfterFunc(s.settle, func() {
		defer s.wg.Done()

		s.mu.Lock()
		delete(s.pending, path)
		s.mu.Unlock()

		s.emit(ctx, driven.FileEvent{Path: path, Kind: driven.FileModified})
	})
}

func (s *session) cancelPending(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, exists := s.pending[path]; exists {
		if t.Stop() {
			s.wg.Done()
		}
		delete(s.pending, path)
	}
}

func (s *session) emit(ctx context.Context, ev driven.FileEvent) {
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}

// shutdown stops pending timers, waits for in-flight sends and closes both
// channels.
func (s *session) shutdown() {
	s.mu.Lock()
	for path, t := range s.pending {
		if t.Stop() {
			s.wg.Done()
		}
		delete(s.pending, path)
	}
	s.mu.Unlock()

	s.wg.Wait()
	if err := s.fsw.Close(); err != nil {
		logger.Debug("closing watcher: %v", err)
	}
	close(s.events)
	close(s.errors)
}
