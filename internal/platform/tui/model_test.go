package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-chase/internal/core"
	"github.com/vovakirdan/tui-chase/internal/storage"
)

// fakeGame scores a point per tick and ends after limit ticks.
type fakeGame struct {
	resets int
	frames []core.InputFrame
	ticks  uint64
	limit  uint64
	state  core.GameState
	err    error
	saved  string
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) error {
	g.resets++
	g.state = core.GameState{Health: 3}
	return nil
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in)
	if in.Has(core.ActionQuit) {
		g.state.GameOver, g.state.Quit = true, true
		return core.StepResult{State: g.state}
	}
	g.ticks++
	g.state.Score++
	if g.err != nil {
		g.state.GameOver = true
		return core.StepResult{State: g.state, Err: g.err}
	}
	if g.limit > 0 && g.ticks >= g.limit {
		g.state.Health = 0
		g.state.GameOver = true
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake board")
}

func (g *fakeGame) MinScreen() (int, int) { return 10, 4 }

func (g *fakeGame) State() core.GameState       { return g.state }
func (g *fakeGame) TickInterval() time.Duration { return 10 * time.Millisecond }
func (g *fakeGame) Ticks() uint64               { return g.ticks }

func (g *fakeGame) SaveFile(path string) error {
	g.saved = path
	return os.WriteFile(path, []byte("saved"), 0o644)
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12}
}

func newTestModel(t *testing.T, g *fakeGame, store *storage.Store) Model {
	t.Helper()
	m, err := NewModel(g, store, testConfig())
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNewModelResetsGame(t *testing.T) {
	g := &fakeGame{}
	newTestModel(t, g, nil)
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}

	g2 := &fakeGame{}
	ResumeModel(g2, nil, testConfig())
	if g2.resets != 0 {
		t.Error("ResumeModel should not reset the game")
	}
}

func TestTickStepsWithFrame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m, _ = update(t, m, runeKey('d'))
	m, _ = update(t, m, runeKey('a'))
	if len(g.frames) != 0 {
		t.Fatal("keys must not step the game")
	}

	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(g.frames) != 1 || g.frames[0].Command() != core.ActionTurnRight {
		t.Fatalf("frames = %+v, want one TurnRight frame", g.frames)
	}

	update(t, m, TickMsg(time.Now()))
	if len(g.frames) != 2 || !g.frames[1].Empty() {
		t.Error("the frame should be cleared after each step")
	}
}

func TestQuitStepsImmediately(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m, _ = update(t, m, runeKey('w'))
	m, cmd := update(t, m, runeKey('q'))

	if len(g.frames) != 1 {
		t.Fatalf("quit should step at once, got %d steps", len(g.frames))
	}
	f := g.frames[0]
	if !f.Has(core.ActionQuit) || f.Command() != core.ActionAccelerate {
		t.Errorf("quit frame = %v/%v", f.Command(), f.Has(core.ActionQuit))
	}
	if cmd == nil {
		t.Error("standalone quit should return tea.Quit")
	}
	if !m.Done() || m.Result().Outcome != OutcomeQuit {
		t.Errorf("result = %+v", m.Result())
	}

	// Late ticks are ignored.
	update(t, m, TickMsg(time.Now()))
	if len(g.frames) != 1 {
		t.Error("a finished model must not step")
	}
}

func TestGameOverRecordsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := &fakeGame{limit: 3}
	m := newTestModel(t, g, store)
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
	}

	r := m.Result()
	if !r.Finished() || r.Outcome != OutcomeGameOver || r.Score != 3 || r.Ticks != 3 {
		t.Fatalf("result = %+v", r)
	}
	if r.RunID == uuid.Nil {
		t.Fatal("run was not recorded")
	}
	if r.Line() != "Game over!  Score: 3" {
		t.Errorf("Line = %q", r.Line())
	}

	saved, err := store.RunByID(r.RunID)
	if err != nil || saved == nil {
		t.Fatalf("RunByID = %v, %v", saved, err)
	}
	if saved.Scenario != "fake" || saved.Score != 3 || saved.Ticks != 3 || saved.Outcome != OutcomeGameOver {
		t.Errorf("saved run = %+v", saved)
	}
}

func TestQuitBeforeFirstTickIsNotRecorded(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := &fakeGame{}
	m := newTestModel(t, g, store)
	m, _ = update(t, m, runeKey('q'))

	if m.Result().RunID != uuid.Nil {
		t.Error("an empty run should not be recorded")
	}
	runs, _ := store.TopRuns("fake", 10)
	if len(runs) != 0 {
		t.Errorf("stored %d runs", len(runs))
	}
}

func TestResumingFinishedRunIsNotRecordedAgain(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := &fakeGame{ticks: 5, state: core.GameState{GameOver: true, Score: 4}}
	m := ResumeModel(g, store, testConfig())
	if !m.Done() {
		t.Fatal("a finished game should resume as done")
	}
	if cmd := m.Init(); cmd == nil {
		t.Error("Init should quit")
	} else if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Init should quit instead of ticking")
	}
	if m.Embedded().Init() != nil {
		t.Error("embedded Init should wait for a key")
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	if len(g.frames) != 0 {
		t.Errorf("stepped %d times", len(g.frames))
	}
	r := m.Result()
	if r.Outcome != OutcomeGameOver || r.Score != 4 || r.Ticks != 5 || r.RunID != uuid.Nil {
		t.Errorf("result = %+v", r)
	}
	runs, _ := store.TopRuns("fake", 10)
	if len(runs) != 0 {
		t.Errorf("stored %d runs", len(runs))
	}

	quit := &fakeGame{ticks: 2, state: core.GameState{GameOver: true, Quit: true}}
	if r := ResumeModel(quit, store, testConfig()).Result(); r.Outcome != OutcomeQuit {
		t.Errorf("outcome = %q, want %q", r.Outcome, OutcomeQuit)
	}
}

func TestFaultEndsRun(t *testing.T) {
	boom := errors.New("board is full")
	g := &fakeGame{err: boom}
	m := newTestModel(t, g, nil)

	m, _ = update(t, m, TickMsg(time.Now()))
	r := m.Result()
	if r.Outcome != OutcomeFaulted || !errors.Is(r.Err, boom) {
		t.Errorf("result = %+v", r)
	}
	if !strings.Contains(r.Line(), "board is full") {
		t.Errorf("Line = %q", r.Line())
	}
}

func TestEmbeddedModelLeavesOnKey(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil).Embedded()

	m, cmd := update(t, m, runeKey('q'))
	if cmd != nil {
		t.Error("embedded quit must not quit the program")
	}
	if !m.Done() || m.Leave() {
		t.Fatal("embedded model should wait on the result screen")
	}
	if !strings.Contains(m.View(), "Quit.  Score: 0") {
		t.Errorf("view does not show the result:\n%s", m.View())
	}

	m, _ = update(t, m, runeKey('x'))
	if !m.Leave() {
		t.Error("any key should hand control back")
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	g := &fakeGame{}
	m := newTestModel(t, g, nil).WithSaveDir(dir)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if g.saved == "" || filepath.Dir(g.saved) != dir {
		t.Fatalf("saved to %q, want a file in %q", g.saved, dir)
	}
	if !strings.HasPrefix(filepath.Base(g.saved), "fake_") {
		t.Errorf("save name %q", filepath.Base(g.saved))
	}
	if !strings.Contains(m.View(), "saved to") {
		t.Error("save notice missing")
	}
	if len(g.frames) != 0 {
		t.Error("saving must not step the game")
	}
}

func TestSaveDisabled(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if g.saved != "" {
		t.Error("saving should be disabled without a save dir")
	}
	if !strings.Contains(m.View(), "disabled") {
		t.Error("disabled notice missing")
	}
}

func TestViewAndResize(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	if !strings.Contains(m.View(), "fake board") {
		t.Errorf("view missing board:\n%s", m.View())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 6})
	if m.screen.Width() != 20 || m.screen.Height() != 5 {
		t.Errorf("screen = %dx%d, want 20x5", m.screen.Width(), m.screen.Height())
	}
	if g.resets != 1 {
		t.Error("resizing must not reset the world")
	}
}

func TestTooSmallFreezesWorld(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 8, Height: 4})
	m, cmd := update(t, m, TickMsg(time.Now()))
	if len(g.frames) != 0 {
		t.Error("a frozen world must not step")
	}
	if cmd == nil {
		t.Error("ticks should keep coming while frozen")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 6})
	update(t, m, TickMsg(time.Now()))
	if len(g.frames) != 1 {
		t.Error("the world should resume once it fits")
	}
}
