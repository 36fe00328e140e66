package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-chase/internal/core"
	"github.com/vovakirdan/tui-chase/internal/games/chase"
	"github.com/vovakirdan/tui-chase/internal/registry"
	"github.com/vovakirdan/tui-chase/internal/storage"
)

// Run outcomes as stored in the runs table.
const (
	OutcomeGameOver = "game_over"
	OutcomeQuit     = "quit"
	OutcomeFaulted  = "faulted"
)

// RunResult summarizes a finished run for the caller.
type RunResult struct {
	Scenario string
	Score    int
	Health   int
	Ticks    int64
	Outcome  string
	RunID    uuid.UUID // uuid.Nil when the run was not recorded
	Err      error     // set when the world faulted
}

// Finished reports whether the run reached a terminal state.
func (r RunResult) Finished() bool {
	return r.Outcome != ""
}

// Line is the final score line printed on exit.
func (r RunResult) Line() string {
	switch r.Outcome {
	case OutcomeQuit:
		return fmt.Sprintf("Quit.  Score: %d", r.Score)
	case OutcomeFaulted:
		return fmt.Sprintf("Stopped: %v.  Score: %d", r.Err, r.Score)
	default:
		return fmt.Sprintf("Game over!  Score: %d", r.Score)
	}
}

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// Model is the Bubble Tea model that runs one game: key presses fill the
// tick's input frame, every TickMsg runs one Step and View is the draw pass.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	keyMapper *KeyMapper
	help      help.Model
	frame     core.InputFrame
	state     core.GameState
	width     int
	height    int

	// saveDir enables ctrl+s saves; empty disables them.
	saveDir string
	notice  string

	// embedded models live inside a session and hand control back instead
	// of quitting the program.
	embedded bool
	done     bool
	leave    bool
	result   RunResult
}

// NewModel resets game with cfg and wraps it in a model.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	if err := game.Reset(cfg); err != nil {
		return Model{}, err
	}
	return ResumeModel(game, store, cfg), nil
}

// ResumeModel wraps a game that is already initialized, e.g. one loaded
// from a save file. A game that has already ended is shown as finished and
// is not recorded again.
func ResumeModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	h := help.New()
	h.Width = cfg.ScreenW
	m := Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:     store,
		keyMapper: NewKeyMapper(),
		help:      h,
		frame:     core.NewInputFrame(),
		state:     game.State(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
	}
	if m.state.GameOver {
		m.done = true
		m.result = m.summary(OutcomeGameOver)
		if m.state.Quit {
			m.result.Outcome = OutcomeQuit
		}
	}
	return m
}

// WithSaveDir enables ctrl+s saves into dir.
func (m Model) WithSaveDir(dir string) Model {
	m.saveDir = dir
	return m
}

// Embedded makes the model return to its parent when the run ends.
func (m Model) Embedded() Model {
	m.embedded = true
	return m
}

// Init starts the tick loop. A run that is already over exits at once.
func (m Model) Init() tea.Cmd {
	if m.done {
		return m.exitCmd()
	}
	return tickCmd(m.game.TickInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records the key in this tick's frame. Quit is processed at
// once: the pending frame runs and the program exits.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		if m.embedded {
			m.leave = true
		}
		return m, nil
	}

	if m.keyMapper.IsSave(msg) {
		m.save()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.frame) {
		m.step()
		return m, m.exitCmd()
	}
	return m, nil
}

// sizer is implemented by games that need a minimum screen.
type sizer interface {
	MinScreen() (int, int)
}

// tooSmall reports whether the board does not fit; the world is frozen
// until the window grows.
func (m Model) tooSmall() bool {
	s, ok := m.game.(sizer)
	if !ok {
		return false
	}
	w, h := s.MinScreen()
	return m.screen.Width() < w || m.screen.Height() < h
}

// handleTick runs one simulation step and schedules the next.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	if m.tooSmall() {
		m.frame.Clear()
		return m, tickCmd(m.game.TickInterval())
	}
	m.step()
	if m.done {
		return m, m.exitCmd()
	}
	return m, tickCmd(m.game.TickInterval())
}

func (m *Model) step() {
	res := m.game.Step(m.frame)
	m.frame.Clear()
	m.state = res.State
	if res.Err != nil {
		m.result.Err = res.Err
	}
	if m.state.GameOver {
		m.finish()
	}
}

func (m Model) exitCmd() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// finish fills the result and records the run once.
func (m *Model) finish() {
	m.done = true

	outcome := OutcomeGameOver
	switch {
	case m.result.Err != nil:
		outcome = OutcomeFaulted
	case m.state.Quit:
		outcome = OutcomeQuit
	}
	m.result = m.summary(outcome)

	if m.store == nil || m.result.Ticks == 0 {
		return
	}
	id, err := m.store.SaveRun(storage.Run{
		Scenario: m.result.Scenario,
		Score:    m.result.Score,
		Health:   m.result.Health,
		Ticks:    m.result.Ticks,
		Outcome:  outcome,
	})
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.result.RunID = id
}

// summary builds the result from the latest state.
func (m Model) summary(outcome string) RunResult {
	var ticks int64
	if t, ok := m.game.(registry.Ticker); ok {
		ticks = int64(t.Ticks())
	}
	return RunResult{
		Scenario: m.game.ID(),
		Score:    m.state.Score,
		Health:   m.state.Health,
		Ticks:    ticks,
		Outcome:  outcome,
		Err:      m.result.Err,
	}
}

// save writes the world between ticks.
func (m *Model) save() {
	if m.saveDir == "" {
		m.notice = "saving is disabled"
		return
	}
	saver, ok := m.game.(registry.Saver)
	if !ok {
		m.notice = "this game cannot be saved"
		return
	}
	path := chase.SavePath(m.saveDir, m.game.ID(), time.Now())
	if err := saver.SaveFile(path); err != nil {
		m.notice = fmt.Sprintf("save failed: %v", err)
		return
	}
	m.notice = "saved to " + path
}

// View renders the board and a footer line.
func (m Model) View() string {
	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	switch {
	case m.notice != "":
		b.WriteString(noticeStyle.Render(m.notice))
	case m.done && m.embedded:
		b.WriteString(footerStyle.Render(m.result.Line() + "  (any key: menu)"))
	default:
		b.WriteString(m.help.View(m.keyMapper.Keys()))
	}
	return b.String()
}

// Result returns the run summary; Finished is false while it is running.
func (m Model) Result() RunResult {
	return m.result
}

// Done reports whether the run is over.
func (m Model) Done() bool {
	return m.done
}

// Leave reports whether an embedded model wants to hand back control.
func (m Model) Leave() bool {
	return m.leave
}

// Run plays game in the terminal until the run ends.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, saveDir string) (RunResult, error) {
	model, err := NewModel(game, store, cfg)
	if err != nil {
		return RunResult{}, err
	}
	return runProgram(model.WithSaveDir(saveDir))
}

// RunResumed plays an already initialized game, e.g. one loaded from a save.
func RunResumed(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, saveDir string) (RunResult, error) {
	return runProgram(ResumeModel(game, store, cfg).WithSaveDir(saveDir))
}

func runProgram(model Model) (RunResult, error) {
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return RunResult{}, err
	}
	if m, ok := final.(Model); ok {
		return m.Result(), nil
	}
	return RunResult{}, nil
}
