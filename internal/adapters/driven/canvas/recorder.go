package canvas

import (
	"sync"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.Canvas = (*Recorder)(nil)

// Recorder is a Canvas that records elements in the order they are added.
type Recorder struct {
	mu       sync.Mutex
	elements []domain.Element
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Clear removes every recorded element.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elements = nil
}

// Add records el.
func (r *Recorder) Add(el domain.Element) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elements = append(r.elements, el)
}

// Elements returns a copy of the recorded elements.
func (r *Recorder) Elements() []domain.Element {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Element, len(r.elements))
	copy(out, r.elements)
	return out
}

// Len returns the number of recorded elements.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.elements)
}
