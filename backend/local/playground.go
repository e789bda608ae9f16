package local

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/TheTrio/EspressoPlayground/catalog"
	"github.com/TheTrio/EspressoPlayground/catalog/lessonindex"
	"github.com/TheTrio/EspressoPlayground/execution"
	"github.com/TheTrio/EspressoPlayground/logging"
	"github.com/TheTrio/EspressoPlayground/session"
)

// PlaygroundDeps are the collaborators of the playground tool set.
type PlaygroundDeps struct {
	Sessions *session.Store
	Catalog  *catalog.Catalog
	Lessons  *lessonindex.Index

	// DefaultSession is used when a call omits "session". When empty a new
	// session is created.
	DefaultSession string

	Logger *logging.Logger
}

// Validate checks required dependencies.
func (d PlaygroundDeps) Validate() error {
	var missing []string
	if d.Sessions == nil {
		missing = append(missing, "Sessions")
	}
	if d.Catalog == nil {
		missing = append(missing, "Catalog")
	}
	if d.Lessons == nil {
		missing = append(missing, "Lessons")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", execution.ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// StateResult reports both buffers of a session.
type StateResult struct {
	Session string `json:"session"`
	Source  string `json:"source"`
	Output  string `json:"output"`
}

// RunResult reports the outcome of a run.
type RunResult struct {
	Session    string   `json:"session"`
	OK         bool     `json:"ok"`
	Output     string   `json:"output"`
	Lines      []string `json:"lines,omitempty"`
	Error      string   `json:"error,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

// LessonResult reports a lesson load.
type LessonResult struct {
	Lesson lessonindex.Hit `json:"lesson"`
	Ran    bool            `json:"ran"`
	Run    *RunResult      `json:"run,omitempty"`
}

// SectionEntry is one entry in a section listing.
type SectionEntry struct {
	Index       int    `json:"index"`
	Summary     string `json:"summary"`
	Explanation string `json:"explanation"`
	Code        string `json:"code,omitempty"`
	Runnable    bool   `json:"runnable"`
}

// SectionResult lists the entries of one section.
type SectionResult struct {
	Name    string         `json:"name"`
	Entries []SectionEntry `json:"entries"`
}

type playgroundTools struct {
	deps PlaygroundDeps
	log  *logging.Logger
}

// NewPlayground builds a local backend exposing the playground operations:
// session management, editing, running, catalog navigation and lesson search.
func NewPlayground(name string, deps PlaygroundDeps) (*Backend, string, error) {
	if err := deps.Validate(); err != nil {
		return nil, "", err
	}
	if deps.DefaultSession == "" {
		deps.DefaultSession, _ = deps.Sessions.Create()
	} else if _, err := deps.Sessions.Get(deps.DefaultSession); err != nil {
		return nil, "", err
	}
	log := deps.Logger
	if log == nil {
		log = logging.Nop()
	}

	t := &playgroundTools{deps: deps, log: log.With("backend", name)}
	b := New(name)
	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true}
	sessionProp := stringProp("Session id. Defaults to the startup session.")

	b.RegisterHandler("new_session", ToolDef{
		Description: "Start an isolated session with its own source and output buffers.",
		Tags:        []string{"session"},
		Handler:     t.newSession,
	})
	b.RegisterHandler("set_source", ToolDef{
		Description: "Replace the source buffer without running it.",
		InputSchema: objectSchema(map[string]any{
			"session": sessionProp,
			"source":  stringProp("Full program text."),
		}, "source"),
		Tags:    []string{"editor"},
		Handler: t.setSource,
	})
	b.RegisterHandler("run", ToolDef{
		Description: "Run the current source buffer and replace the output with the result.",
		InputSchema: objectSchema(map[string]any{"session": sessionProp}),
		Tags:        []string{"run"},
		Handler:     t.run,
	})
	b.RegisterHandler("load_and_run", ToolDef{
		Description: "Load a snippet into the source buffer and run it.",
		InputSchema: objectSchema(map[string]any{
			"session": sessionProp,
			"source":  stringProp("Snippet to load."),
		}, "source"),
		Tags:    []string{"run", "editor"},
		Handler: t.loadAndRun,
	})
	b.RegisterHandler("load_lesson", ToolDef{
		Description: "Load a catalog lesson by id and run it. Lessons without code change nothing.",
		InputSchema: objectSchema(map[string]any{
			"session": sessionProp,
			"id":      stringProp("Lesson id as returned by search_lessons."),
		}, "id"),
		Tags:    []string{"catalog", "run"},
		Handler: t.loadLesson,
	})
	b.RegisterHandler("state", ToolDef{
		Description: "Return the source and output buffers of a session.",
		InputSchema: objectSchema(map[string]any{"session": sessionProp}),
		Annotations: readOnly,
		Tags:        []string{"session"},
		Handler:     t.state,
	})
	b.RegisterHandler("table_of_contents", ToolDef{
		Description: "List catalog sections in order with their anchors.",
		Annotations: readOnly,
		Tags:        []string{"catalog"},
		Handler:     t.tableOfContents,
	})
	b.RegisterHandler("section", ToolDef{
		Description: "Return the entries of the section an anchor points to.",
		InputSchema: objectSchema(map[string]any{
			"anchor": stringProp("Anchor from table_of_contents."),
		}, "anchor"),
		Annotations: readOnly,
		Tags:        []string{"catalog"},
		Handler:     t.section,
	})
	b.RegisterHandler("search_lessons", ToolDef{
		Description: "Search catalog lessons by keyword.",
		InputSchema: objectSchema(map[string]any{
			"query": stringProp("Search terms."),
			"limit": integerProp("Maximum number of hits."),
		}, "query"),
		Annotations: readOnly,
		Tags:        []string{"catalog", "search"},
		Handler:     t.searchLessons,
	})

	return b, deps.DefaultSession, nil
}

func (t *playgroundTools) sessionID(args map[string]any) (string, error) {
	id, err := stringArg(args, "session", false)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = t.deps.DefaultSession
	}
	return id, nil
}

func (t *playgroundTools) newSession(_ context.Context, _ map[string]any) (any, error) {
	id, p := t.deps.Sessions.Create()
	t.log.Info("session created", "session", id)
	return StateResult{Session: id, Source: p.Source(), Output: p.Output()}, nil
}

func (t *playgroundTools) setSource(_ context.Context, args map[string]any) (any, error) {
	id, err := t.sessionID(args)
	if err != nil {
		return nil, err
	}
	source, err := stringArg(args, "source", true)
	if err != nil {
		return nil, err
	}
	p, err := t.deps.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	p.SetSource(source)
	st := p.State()
	return StateResult{Session: id, Source: st.Source, Output: st.Output}, nil
}

func (t *playgroundTools) run(ctx context.Context, args map[string]any) (any, error) {
	id, err := t.sessionID(args)
	if err != nil {
		return nil, err
	}
	p, err := t.deps.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return newRunResult(id, p.RunCurrent(ctx)), nil
}

func (t *playgroundTools) loadAndRun(ctx context.Context, args map[string]any) (any, error) {
	id, err := t.sessionID(args)
	if err != nil {
		return nil, err
	}
	source, err := stringArg(args, "source", true)
	if err != nil {
		return nil, err
	}
	p, err := t.deps.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return newRunResult(id, p.LoadAndRun(ctx, source)), nil
}

func (t *playgroundTools) loadLesson(ctx context.Context, args map[string]any) (any, error) {
	id, err := t.sessionID(args)
	if err != nil {
		return nil, err
	}
	lessonID, err := stringArg(args, "id", true)
	if err != nil {
		return nil, err
	}
	hit, entry, err := t.deps.Lessons.Lookup(lessonID)
	if err != nil {
		return nil, err
	}
	p, err := t.deps.Sessions.Get(id)
	if err != nil {
		return nil, err
	}

	res, ran := p.LoadEntry(ctx, entry)
	out := LessonResult{Lesson: hit, Ran: ran}
	if ran {
		rr := newRunResult(id, res)
		out.Run = &rr
	}
	return out, nil
}

func (t *playgroundTools) state(_ context.Context, args map[string]any) (any, error) {
	id, err := t.sessionID(args)
	if err != nil {
		return nil, err
	}
	p, err := t.deps.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	st := p.State()
	return StateResult{Session: id, Source: st.Source, Output: st.Output}, nil
}

func (t *playgroundTools) tableOfContents(_ context.Context, _ map[string]any) (any, error) {
	return t.deps.Catalog.TableOfContents(), nil
}

func (t *playgroundTools) section(_ context.Context, args map[string]any) (any, error) {
	anchor, err := stringArg(args, "anchor", true)
	if err != nil {
		return nil, err
	}
	s, ok := t.deps.Catalog.Resolve(anchor)
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrSectionNotFound, anchor)
	}
	out := SectionResult{Name: s.Name, Entries: make([]SectionEntry, len(s.Entries))}
	for i, e := range s.Entries {
		out.Entries[i] = SectionEntry{
			Index:       i,
			Summary:     e.Summary(),
			Explanation: e.Explanation,
			Code:        e.Code,
			Runnable:    e.Runnable(),
		}
	}
	return out, nil
}

func (t *playgroundTools) searchLessons(_ context.Context, args map[string]any) (any, error) {
	query, err := stringArg(args, "query", true)
	if err != nil {
		return nil, err
	}
	limit, err := intArg(args, "limit", lessonindex.DefaultLimit)
	if err != nil {
		return nil, err
	}
	return t.deps.Lessons.Search(query, limit)
}

func newRunResult(id string, res execution.Result) RunResult {
	rr := RunResult{
		Session:    id,
		OK:         res.OK(),
		Output:     res.Text(),
		Lines:      res.Lines,
		DurationMS: res.Duration.Milliseconds(),
	}
	if res.Err != nil {
		rr.Error = res.Err.Message
	}
	return rr
}
