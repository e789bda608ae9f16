package engine

import "strings"

// Sink receives the lines a program prints, in order.
type Sink interface {
	// Append records one output line.
	Append(line string)
}

// Collector is an append-only, in-memory Sink.
//
// The zero value is ready to use. A Collector is owned by a single run and
// is not safe for concurrent use.
type Collector struct {
	lines []string
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Append records one output line.
func (c *Collector) Append(line string) {
	c.lines = append(c.lines, line)
}

// Lines returns a copy of the collected lines.
func (c *Collector) Lines() []string {
	if len(c.lines) == 0 {
		return nil
	}
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of collected lines.
func (c *Collector) Len() int {
	return len(c.lines)
}

// String joins the collected lines with newlines.
func (c *Collector) String() string {
	return strings.Join(c.lines, "\n")
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(line string)

// Append calls f(line).
func (f SinkFunc) Append(line string) {
	f(line)
}
