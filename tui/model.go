// Package tui is the terminal front end of the playground: a source editor
// and the output of the last run, beside the lesson catalog and the details
// of the lesson under the cursor.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TheTrio/EspressoPlayground/catalog"
	"github.com/TheTrio/EspressoPlayground/execution"
	"github.com/TheTrio/EspressoPlayground/logging"
	"github.com/TheTrio/EspressoPlayground/playground"
)

type pane int

const (
	paneEditor pane = iota
	paneLessons
	paneOutput
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneEditor:
		return "editor"
	case paneLessons:
		return "lessons"
	case paneOutput:
		return "output"
	}
	return "unknown"
}

const (
	defaultWidth  = 100
	defaultHeight = 30
)

// Config configures a Model.
type Config struct {
	// Playground holds the buffers the UI edits and runs. Required.
	Playground *playground.Playground

	// Catalog fills the lessons pane. Optional.
	Catalog *catalog.Catalog

	// Context is passed to runs. Defaults to context.Background().
	Context context.Context

	KeyMap KeyMap
	Logger *logging.Logger
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Playground == nil {
		return fmt.Errorf("%w: missing required fields: Playground", execution.ErrConfiguration)
	}
	return nil
}

// Model is the Bubble Tea model of the playground.
type Model struct {
	pg   *playground.Playground
	ctx  context.Context
	keys KeyMap
	log  *logging.Logger

	editor textarea.Model
	output viewport.Model
	detail viewport.Model

	items  []lessonItem
	cursor int

	focus  pane
	status string
	width  int
	height int
}

// New builds the model with the editor focused and showing the current
// source.
func New(cfg Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.KeyMap.Run.Keys() == nil {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}

	ed := textarea.New()
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.ShowLineNumbers = true
	ed.Placeholder = playground.InstallHint
	ed.SetValue(cfg.Playground.Source())
	ed.Focus()

	m := Model{
		pg:     cfg.Playground,
		ctx:    cfg.Context,
		keys:   cfg.KeyMap,
		log:    cfg.Logger,
		editor: ed,
		output: viewport.New(defaultWidth/2, defaultHeight/2),
		detail: viewport.New(defaultWidth/3, defaultHeight/2),
		items:  lessonItems(cfg.Catalog),
		focus:  paneEditor,
	}
	m.output.SetContent(cfg.Playground.Output())
	m.cursor = m.firstEntry()
	m.resize(defaultWidth, defaultHeight)
	m.refreshDetail()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshDetail()
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	if m.focus == paneEditor {
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Run):
		m.apply(m.pg.RunCurrent(m.ctx))
		return m, nil
	case key.Matches(msg, m.keys.NextFocus):
		return m, m.setFocus((m.focus + 1) % paneCount)
	}

	switch m.focus {
	case paneEditor:
		return m.updateEditor(msg)
	case paneLessons:
		return m.updateLessons(msg)
	default:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.pg.SetSource(after)
	}
	return m, cmd
}

func (m Model) updateLessons(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.refreshDetail()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.refreshDetail()
		}
	case key.Matches(msg, m.keys.Select):
		return m.selectLesson()
	}
	return m, nil
}

// selectLesson runs the entry under the cursor. A section heading jumps to
// its first entry; an entry without code does nothing.
func (m Model) selectLesson() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return m, nil
	}
	it := m.items[m.cursor]
	if it.header {
		if m.cursor+1 < len(m.items) && !m.items[m.cursor+1].header {
			m.cursor++
			m.refreshDetail()
		}
		return m, nil
	}

	res, ran := m.pg.LoadEntry(m.ctx, it.entry)
	if !ran {
		return m, nil
	}
	m.log.Debug("lesson loaded", "section", it.section, "entry", it.index)
	m.apply(res)
	return m, m.setFocus(paneEditor)
}

// apply shows the current buffers after a run.
func (m *Model) apply(res execution.Result) {
	st := m.pg.State()
	if m.editor.Value() != st.Source {
		m.editor.SetValue(st.Source)
	}
	m.output.SetContent(st.Output)
	m.output.GotoTop()
	if res.OK() {
		m.status = fmt.Sprintf("ok in %s", res.Duration.Round(time.Millisecond))
	} else {
		m.status = "error"
	}
}

func (m *Model) setFocus(p pane) tea.Cmd {
	m.focus = p
	if p == paneEditor {
		return m.editor.Focus()
	}
	m.editor.Blur()
	return nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	left := width * 2 / 3
	body := height - 4
	if body < 4 {
		body = 4
	}
	m.editor.SetWidth(left - 2)
	m.editor.SetHeight(body/2 - 2)
	m.output.Width = left - 2
	m.output.Height = body - body/2 - 2

	right := width - left - 2
	if right < 10 {
		right = 10
	}
	m.detail.Width = right
	m.detail.Height = body - body/2 - 2
}

// refreshDetail shows the explanation and snippet of the entry under the
// cursor, or a summary of the section for a heading.
func (m *Model) refreshDetail() {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		m.detail.SetContent("")
		return
	}
	it := m.items[m.cursor]

	var b strings.Builder
	if it.header {
		n := 0
		for _, other := range m.items {
			if !other.header && other.section == it.section {
				n++
			}
		}
		fmt.Fprintf(&b, "%s\n%d lessons", it.section, n)
	} else {
		b.WriteString(strings.TrimSpace(it.entry.Explanation))
		if it.entry.Runnable() {
			b.WriteString("\n\nCode:\n")
			b.WriteString(it.entry.Code)
		}
	}
	m.detail.SetContent(wrapStyle.Width(m.detail.Width).Render(b.String()))
	m.detail.GotoTop()
}

func (m Model) firstEntry() int {
	for i, it := range m.items {
		if !it.header {
			return i
		}
	}
	return 0
}

// Focus reports the name of the focused pane.
func (m Model) Focus() string {
	return m.focus.String()
}

// Source returns the editor contents.
func (m Model) Source() string {
	return m.editor.Value()
}

// Status returns the outcome line of the last run.
func (m Model) Status() string {
	return m.status
}

// Run starts the program on the alternate screen and blocks until the user
// quits or ctx is done.
func Run(ctx context.Context, m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) lessonLines(height int) []string {
	if len(m.items) == 0 {
		return []string{mutedStyle.Render("no lessons")}
	}
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	var lines []string
	for i := start; i < len(m.items) && len(lines) < height; i++ {
		it := m.items[i]
		label := it.label()
		switch {
		case i == m.cursor && m.focus == paneLessons:
			label = cursorStyle.Render(label)
		case it.header:
			label = headerStyle.Render(label)
		}
		lines = append(lines, label)
	}
	return lines
}

func (m Model) help() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
