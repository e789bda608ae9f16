package execution

import (
	"context"
	"fmt"
	"sync"

	"github.com/TheTrio/EspressoPlayground/engine"
)

// mockEngine is a configurable engine.Engine that records calls.
type mockEngine struct {
	mu sync.Mutex

	parseErr  error
	evalErr   error
	evalPanic any
	emit      []string

	parsed    []string
	evaluated int
}

func (m *mockEngine) NewParser(source string) engine.Parser {
	m.mu.Lock()
	m.parsed = append(m.parsed, source)
	m.mu.Unlock()
	return engine.Funcs{
		Parse: func(src string) (engine.Tree, error) {
			if m.parseErr != nil {
				return nil, m.parseErr
			}
			return src, nil
		},
	}.NewParser(source)
}

func (m *mockEngine) NewEvaluator(tree engine.Tree, opts engine.Options) engine.Evaluator {
	return engine.Funcs{
		Eval: func(_ context.Context, _ engine.Tree, out engine.Sink) error {
			m.mu.Lock()
			m.evaluated++
			m.mu.Unlock()
			for _, line := range m.emit {
				out.Append(line)
			}
			if m.evalPanic != nil {
				panic(m.evalPanic)
			}
			return m.evalErr
		},
	}.NewEvaluator(tree, opts)
}

// recordingLogger captures every formatted message.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) Logf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}
