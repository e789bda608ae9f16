// Package process adapts an external interpreter binary to engine.Engine.
//
// The source is written to a temporary file which is passed as the last
// argument to the command. Each line the command prints to stdout becomes an
// output line. A non-zero exit is a failure whose message is the command's
// trimmed stderr, or its stdout when stderr is empty.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/TheTrio/EspressoPlayground/engine"
	"github.com/TheTrio/EspressoPlayground/execution"
)

// ErrNULByte is returned by Parse for sources the interpreter cannot read.
var ErrNULByte = errors.New("SyntaxError: source contains a NUL byte")

// Config selects the interpreter.
type Config struct {
	// Command is the interpreter executable, looked up in PATH. Required.
	Command string

	// Args precede the source file on the command line.
	Args []string

	// Env is appended to the current environment.
	Env []string

	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Command) == "" {
		return fmt.Errorf("%w: missing required fields: Command", execution.ErrConfiguration)
	}
	return nil
}

// Engine runs sources through an external command.
type Engine struct {
	cfg Config
}

// New creates an Engine for cfg.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Args = append([]string(nil), cfg.Args...)
	cfg.Env = append([]string(nil), cfg.Env...)
	return &Engine{cfg: cfg}, nil
}

// NewParser implements engine.Engine.
func (e *Engine) NewParser(source string) engine.Parser {
	return parser{source: source}
}

// NewEvaluator implements engine.Engine.
func (e *Engine) NewEvaluator(tree engine.Tree, opts engine.Options) engine.Evaluator {
	source, _ := tree.(string)
	return &evaluator{cfg: e.cfg, source: source, out: opts.RedirectTo}
}

type parser struct {
	source string
}

func (p parser) Parse() (engine.Tree, error) {
	if strings.IndexByte(p.source, 0) >= 0 {
		return nil, ErrNULByte
	}
	return p.source, nil
}

type evaluator struct {
	cfg    Config
	source string
	out    engine.Sink
}

func (e *evaluator) Evaluate(ctx context.Context) error {
	f, err := os.CreateTemp("", "espresso-*.esp")
	if err != nil {
		return fmt.Errorf("create source file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(e.source); err != nil {
		f.Close()
		return fmt.Errorf("write source file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write source file: %w", err)
	}

	args := append(append([]string(nil), e.cfg.Args...), f.Name())
	cmd := exec.CommandContext(ctx, e.cfg.Command, args...)
	cmd.Dir = e.cfg.Dir
	if len(e.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), e.cfg.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return err
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			msg = fmt.Sprintf("%s exited with status %d", e.cfg.Command, exitErr.ExitCode())
		}
		return errors.New(msg)
	}

	if e.out == nil {
		return nil
	}
	for _, line := range splitLines(stdout.String()) {
		e.out.Append(line)
	}
	return nil
}

// splitLines splits output on newlines, dropping the terminator of the last
// line and any carriage returns before a newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
