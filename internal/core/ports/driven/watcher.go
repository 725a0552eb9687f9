package driven

import "context"

// FileEventKind classifies a file system change.
type FileEventKind int

// File event kinds.
const (
	FileModified FileEventKind = iota
	FileRemoved
)

// FileEvent reports a change to a watched file.
type FileEvent struct {
	Path string
	Kind FileEventKind
}

// FileWatcher reports changes to individual files.
type FileWatcher interface {
	// Watch starts watching paths. Events are delivered until ctx is
	// cancelled, after which both channels are closed.
	Watch(ctx context.Context, paths []string) (<-chan FileEvent, <-chan error, error)
}

// FileRevealer shows a file in the operating system's file manager.
type FileRevealer interface {
	Reveal(ctx context.Context, path string) error
}
