package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheTrio/EspressoPlayground/catalog"
	"github.com/TheTrio/EspressoPlayground/execution"
	"github.com/TheTrio/EspressoPlayground/internal/testutil"
	"github.com/TheTrio/EspressoPlayground/playground"
)

const lessons = `
Blocks:
  - explanation: "# Blocks\nBlocks evaluate to their last value."
    code: 'print("block")'
  - explanation: "Blocks can be nested."
Errors:
  - explanation: "# Division by zero\nIt fails the run."
    code: 'print(1 / 0)'
`

func newModel(t *testing.T, source string) (Model, *playground.Playground) {
	t.Helper()
	c, err := catalog.Parse([]byte(lessons))
	require.NoError(t, err)
	ctrl, err := execution.NewDefaultController(execution.Config{Engine: testutil.NewEngine()})
	require.NoError(t, err)
	pg := playground.New(ctrl, playground.WithSource(source))

	m, err := New(Config{Playground: pg, Catalog: c, Context: context.Background()})
	require.NoError(t, err)
	return m, pg
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestNew_RequiresPlayground(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, execution.ErrConfiguration)
}

func TestNew_ShowsCurrentSource(t *testing.T) {
	m, _ := newModel(t, `print("Hello")`)
	assert.Equal(t, `print("Hello")`, m.Source())
	assert.Equal(t, "editor", m.Focus())
	assert.Equal(t, "", m.Status())
}

func TestUpdate_TypingSetsSource(t *testing.T) {
	m, pg := newModel(t, "print(1)")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(";")})

	assert.Equal(t, "print(1);", m.Source())
	assert.Equal(t, "print(1);", pg.Source())
	assert.Equal(t, "", pg.Output(), "editing never runs")
}

func TestUpdate_RunShowsOutput(t *testing.T) {
	m, pg := newModel(t, `print("Hello")`)

	m, _ = send(t, m, keyMsg(tea.KeyCtrlR))

	assert.Equal(t, "Hello", pg.Output())
	assert.True(t, strings.HasPrefix(m.Status(), "ok"), m.Status())
	assert.Contains(t, m.View(), "Hello")
}

func TestUpdate_RunErrorShowsMessage(t *testing.T) {
	m, pg := newModel(t, "print(1); { print(2)")

	m, _ = send(t, m, keyMsg(tea.KeyCtrlR))

	assert.Equal(t, "SyntaxError: expected '}' but found end of input", pg.Output())
	assert.Equal(t, "error", m.Status())
}

func TestUpdate_TabCyclesFocus(t *testing.T) {
	m, _ := newModel(t, "")

	m, _ = send(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, "lessons", m.Focus())
	m, _ = send(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, "output", m.Focus())
	m, _ = send(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, "editor", m.Focus())
}

func TestUpdate_SelectLessonRunsAndFocusesEditor(t *testing.T) {
	m, pg := newModel(t, `print("mine")`)

	// Cursor starts on the first entry; skip the code-less entry and the
	// Errors heading.
	m, _ = send(t, m, keyMsg(tea.KeyTab), keyMsg(tea.KeyDown), keyMsg(tea.KeyDown), keyMsg(tea.KeyDown))
	m, _ = send(t, m, keyMsg(tea.KeyEnter))

	assert.Equal(t, "print(1 / 0)", pg.Source())
	assert.Equal(t, "RuntimeError: division by zero", pg.Output())
	assert.Equal(t, "print(1 / 0)", m.Source())
	assert.Equal(t, "editor", m.Focus())
	assert.Equal(t, "error", m.Status())
}

func TestUpdate_SelectLessonWithoutCodeDoesNothing(t *testing.T) {
	m, pg := newModel(t, `print("mine")`)

	m, _ = send(t, m, keyMsg(tea.KeyTab), keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))

	assert.Equal(t, `print("mine")`, pg.Source())
	assert.Equal(t, "", pg.Output())
	assert.Equal(t, "lessons", m.Focus())
}

func TestUpdate_SelectHeadingMovesToFirstEntry(t *testing.T) {
	m, pg := newModel(t, `print("mine")`)

	m, _ = send(t, m, keyMsg(tea.KeyTab), keyMsg(tea.KeyUp), keyMsg(tea.KeyEnter))
	assert.Equal(t, "", pg.Output())

	m, _ = send(t, m, keyMsg(tea.KeyEnter))
	assert.Equal(t, `print("block")`, pg.Source())
	assert.Equal(t, "block", pg.Output())
	assert.Equal(t, "editor", m.Focus())
}

func TestUpdate_CursorStaysInBounds(t *testing.T) {
	m, _ := newModel(t, "")
	m, _ = send(t, m, keyMsg(tea.KeyTab))
	for i := 0; i < 10; i++ {
		m, _ = send(t, m, keyMsg(tea.KeyDown))
	}
	assert.Equal(t, len(m.items)-1, m.cursor)
	for i := 0; i < 10; i++ {
		m, _ = send(t, m, keyMsg(tea.KeyUp))
	}
	assert.Equal(t, 0, m.cursor)
}

func TestUpdate_Quit(t *testing.T) {
	m, _ := newModel(t, "")
	_, cmd := send(t, m, keyMsg(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestView_ListsLessons(t *testing.T) {
	m, _ := newModel(t, "")
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	v := m.View()
	assert.Contains(t, v, "Espresso Playground")
	assert.Contains(t, v, "Blocks")
	assert.Contains(t, v, "▶ Division by zero")
	assert.Contains(t, v, "Blocks can be nested.")
}

func TestView_DetailFollowsCursor(t *testing.T) {
	m, _ := newModel(t, `print("mine")`)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})

	v := m.View()
	assert.Contains(t, v, "Blocks evaluate to their last value.")
	assert.Contains(t, v, `print("block")`)
	assert.NotContains(t, v, "print(1 / 0)")

	m, _ = send(t, m,
		keyMsg(tea.KeyTab),
		keyMsg(tea.KeyDown), keyMsg(tea.KeyDown), keyMsg(tea.KeyDown),
	)

	v = m.View()
	assert.Contains(t, v, "It fails the run.")
	assert.Contains(t, v, "print(1 / 0)")
	assert.NotContains(t, v, `print("block")`)
	assert.Equal(t, `print("mine")`, m.Source(), "moving the cursor never loads a lesson")
}

func TestView_DetailForHeading(t *testing.T) {
	m, _ := newModel(t, "")
	m, _ = send(t, m, keyMsg(tea.KeyTab), keyMsg(tea.KeyUp))

	assert.Contains(t, m.View(), "2 lessons")
}

func TestView_ShowsInstallHint(t *testing.T) {
	m, _ := newModel(t, `print("mine")`)

	v := m.View()
	assert.Contains(t, v, playground.InstallHint)
	assert.Contains(t, v, SourceURL)
}

func TestLessonItem_Label(t *testing.T) {
	assert.Equal(t, "Loops", lessonItem{section: "Loops", header: true}.label())
	assert.Equal(t, "▶ Hi", lessonItem{entry: catalog.Entry{Explanation: "Hi", Code: "x"}}.label())
	assert.Equal(t, "  Hi", lessonItem{entry: catalog.Entry{Explanation: "Hi"}}.label())
	assert.Equal(t, "  (untitled)", lessonItem{}.label())
	assert.Nil(t, lessonItems(nil))
}
