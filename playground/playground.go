// Package playground holds the state of one interactive editing session: the
// current source buffer and the output of the most recent run.
//
// Both buffers are single values with no history. Every edit replaces the
// source wholesale and every run replaces the output wholesale.
package playground

import (
	"context"
	"sync"

	"github.com/TheTrio/EspressoPlayground/catalog"
	"github.com/TheTrio/EspressoPlayground/execution"
)

// InstallHint is the initial source when the catalog offers no snippet.
const InstallHint = "$ npm install -g espressolang"

// State is a snapshot of both buffers.
type State struct {
	Source string `json:"source"`
	Output string `json:"output"`
}

// Option configures a Playground.
type Option func(*Playground)

// WithSource sets the initial source buffer.
func WithSource(source string) Option {
	return func(p *Playground) { p.source = source }
}

// WithScrollToTop registers the hook LoadAndRun uses to bring the editor
// back into view.
func WithScrollToTop(fn func()) Option {
	return func(p *Playground) { p.scrollToTop = fn }
}

// WithObserver registers a callback invoked with the new state after every
// change. Observers run while the playground is locked and must not call
// back into it.
func WithObserver(fn func(State)) Option {
	return func(p *Playground) {
		if fn != nil {
			p.observers = append(p.observers, fn)
		}
	}
}

// Playground owns a SourceBuffer and an OutputBuffer and runs the former
// through a controller to produce the latter.
//
// A Playground is safe for concurrent use; runs are serialized.
type Playground struct {
	mu          sync.Mutex
	ctrl        execution.Controller
	source      string
	output      string
	scrollToTop func()
	observers   []func(State)
}

// New creates a Playground with an empty output buffer.
func New(ctrl execution.Controller, opts ...Option) *Playground {
	p := &Playground{ctrl: ctrl}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultSource returns the snippet of the catalog's first entry, or
// InstallHint if that entry has none.
func DefaultSource(c *catalog.Catalog) string {
	if c == nil {
		return InstallHint
	}
	if e, ok := c.FirstEntry(); ok && e.Runnable() {
		return e.Code
	}
	return InstallHint
}

// Source returns the current source buffer.
func (p *Playground) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// Output returns the current output buffer.
func (p *Playground) Output() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.output
}

// State returns both buffers as one consistent snapshot.
func (p *Playground) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

// SetSource replaces the source buffer. It does not run anything.
func (p *Playground) SetSource(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = text
	p.notifyLocked()
}

// RunCurrent runs the source buffer and replaces the output buffer with the
// outcome.
func (p *Playground) RunCurrent(ctx context.Context) execution.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runLocked(ctx)
}

// LoadAndRun replaces the source buffer with snippet and runs it. The source
// and output change together, so observers never see one without the other.
func (p *Playground) LoadAndRun(ctx context.Context, snippet string) execution.Result {
	p.mu.Lock()
	p.source = snippet
	result := p.runLocked(ctx)
	scroll := p.scrollToTop
	p.mu.Unlock()

	if scroll != nil {
		scroll()
	}
	return result
}

// LoadEntry runs a catalog entry's snippet through LoadAndRun. Entries
// without a snippet leave the playground untouched and report false.
func (p *Playground) LoadEntry(ctx context.Context, e catalog.Entry) (execution.Result, bool) {
	if !e.Runnable() {
		return execution.Result{}, false
	}
	return p.LoadAndRun(ctx, e.Code), true
}

func (p *Playground) runLocked(ctx context.Context) execution.Result {
	result := p.ctrl.Run(ctx, p.source)
	p.output = result.Text()
	p.notifyLocked()
	return result
}

func (p *Playground) stateLocked() State {
	return State{Source: p.source, Output: p.output}
}

func (p *Playground) notifyLocked() {
	if len(p.observers) == 0 {
		return
	}
	s := p.stateLocked()
	for _, fn := range p.observers {
		fn(s)
	}
}
