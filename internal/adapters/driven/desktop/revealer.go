// Package desktop integrates with the operating system's file manager.
package desktop

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
)

// Ensure Revealer implements the interface.
var _ driven.FileRevealer = (*Revealer)(nil)

// Revealer opens the folder containing a file, selecting the file where the
// platform supports it.
type Revealer struct {
	goos  string
	start func(ctx context.Context, name string, args ...string) error
}

// NewRevealer creates a revealer for the current platform.
func NewRevealer() *Revealer {
	return &Revealer{goos: runtime.GOOS, start: startCommand}
}

// Reveal shows path in the file manager. The file must exist.
func (r *Revealer) Reveal(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("reveal %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("reveal %s: %w", path, domain.ErrFileNotFound)
	}

	name, args, err := revealCommand(r.goos, abs)
	if err != nil {
		return err
	}
	if err := r.start(ctx, name, args...); err != nil {
		return fmt.Errorf("reveal %s: %w", path, err)
	}
	return nil
}

// revealCommand returns the file manager invocation for goos.
func revealCommand(goos, path string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{"-R", path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{filepath.Dir(path)}, nil
	case "windows":
		return "explorer", []string{"/select," + path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform %s: %w", goos, domain.ErrNotImplemented)
	}
}

func startCommand(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Not tied to ctx: the file manager outlives the command that opened it.
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
