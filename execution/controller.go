package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/TheTrio/EspressoPlayground/engine"
)

// Controller runs source text and reports a single outcome.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: passed to the engine's evaluation stage; no deadline is added.
// - Errors: failures are reported in Result.Err, never as a panic.
// - Ownership: the returned Result is caller-owned.
type Controller interface {
	// Run parses and evaluates source.
	Run(ctx context.Context, source string) Result
}

// DefaultController is the standard implementation of Controller.
type DefaultController struct {
	cfg Config
}

// NewDefaultController creates a new DefaultController with the given configuration.
// Returns ErrConfiguration if any required field is missing.
func NewDefaultController(cfg Config) (*DefaultController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &DefaultController{cfg: cfg}, nil
}

// Run parses and evaluates source with a fresh output collector.
func (c *DefaultController) Run(ctx context.Context, source string) Result {
	start := time.Now()
	lines, err := c.run(ctx, source)
	result := Result{Duration: time.Since(start)}

	if err != nil {
		runErr, ok := err.(*RunError)
		if !ok {
			runErr = newRunError(err)
		}
		result.Err = runErr
	} else {
		result.Lines = lines
	}

	if c.cfg.Logger != nil {
		c.cfg.Logger.Logf("run finished ok=%t lines=%d in %dms",
			result.OK(), len(result.Lines), result.Duration.Milliseconds())
	}
	return result
}

// run performs the two engine stages. Output collected before an
// evaluation failure never leaves this function.
func (c *DefaultController) run(ctx context.Context, source string) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = panicError(r)
		}
	}()

	tree, err := c.cfg.Engine.NewParser(source).Parse()
	if err != nil {
		return nil, err
	}

	out := engine.NewCollector()
	if err := c.cfg.Engine.NewEvaluator(tree, engine.Options{RedirectTo: out}).Evaluate(ctx); err != nil {
		return nil, err
	}
	return out.Lines(), nil
}

func panicError(r any) *RunError {
	if err, ok := r.(error); ok {
		return newRunError(err)
	}
	return &RunError{Message: fmt.Sprint(r)}
}
