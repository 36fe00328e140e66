// Package chase implements the chase arcade game: the player steers a
// unit around a walled board picking up a collectible while enemies close
// in. The package is pure simulation; the platform layer owns timing,
// input and the terminal.
package chase

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-chase/internal/core"
)

// Status is the run's position in the termination state machine.
type Status int

const (
	StatusRunning Status = iota
	StatusGameOver
	StatusQuit
	StatusFaulted
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusGameOver:
		return "game_over"
	case StatusQuit:
		return "quit"
	case StatusFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name in save files.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{StatusRunning, StatusGameOver, StatusQuit, StatusFaulted} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Game is the world: board, entities and the random source, exclusively
// owned by one run.
type Game struct {
	scenario Scenario

	width, height uint16
	nRandomWalls  uint16
	walls         []Wall
	wallSet       map[core.Point[int]]struct{}
	enemies       []Enemy
	collectible   Collectible
	player        Player
	hud           Hud

	updateInterval time.Duration
	rng            RandomSource
	spawnAttempts  int

	status      Status
	paused      bool
	tick        uint64
	initialized bool
}

// New creates an empty game for a scenario. Reset builds the world.
func New(s Scenario) *Game {
	return &Game{scenario: s, updateInterval: 50 * time.Millisecond}
}

func (g *Game) ID() string    { return g.scenario.ID }
func (g *Game) Title() string { return g.scenario.Title }

// Reset rebuilds the world from configuration and initializes it.
// A zero seed draws one from the clock.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	cc, err := g.scenario.Config(cfg)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	b := FromConfig(cc).Scenario(g.scenario).Rand(rand.New(rand.NewSource(seed)))
	if cfg.TickInterval > 0 {
		b.UpdateInterval(cfg.TickInterval)
	}

	fresh := b.Build()
	if err := fresh.Init(); err != nil {
		return fmt.Errorf("%s: %w", g.scenario.ID, err)
	}
	*g = *fresh
	return nil
}

// Init places every entity: the boundary ring, the random interior walls,
// the enemies and the collectible. Calling it again is a no-op.
func (g *Game) Init() error {
	if g.initialized {
		return nil
	}
	if g.width < 3 || g.height < 3 {
		return fmt.Errorf("%dx%d: %w", g.width, g.height, ErrBoardTooSmall)
	}

	walls := make([]Wall, 0, 2*int(g.width)+2*int(g.height)+len(g.walls)+int(g.nRandomWalls))
	for x := uint16(0); x < g.width; x++ {
		walls = append(walls, NewWall(x, 0), NewWall(x, g.height-1))
	}
	for y := uint16(0); y < g.height; y++ {
		walls = append(walls, NewWall(0, y), NewWall(g.width-1, y))
	}
	walls = append(walls, g.walls...)

	xr, yr := g.interior()
	for i := uint16(0); i < g.nRandomWalls; i++ {
		var w Wall
		RandomizePosition[uint16](&w, g.rng, xr, yr)
		walls = append(walls, w)
	}
	g.walls = walls
	g.indexWalls()

	exr := Range[float64]{1, float64(g.width) - 2}
	eyr := Range[float64]{1, float64(g.height) - 2}
	for i := range g.enemies {
		RandomizePosition[float64](&g.enemies[i], g.rng, exr, eyr)
	}

	if err := g.placeCollectible(); err != nil {
		return err
	}
	g.placePlayer()

	g.status = StatusRunning
	g.paused = false
	g.tick = 0
	g.hud.refresh(g)
	g.initialized = true
	return nil
}

// placePlayer moves a player that starts on a wall or off the board to the
// first free interior cell. placeCollectible has already proven one exists.
func (g *Game) placePlayer() {
	cell := g.player.Cell()
	if g.inBoard(cell) && !g.wallAt(cell) {
		return
	}
	if free := g.freeCells(); len(free) > 0 {
		g.player.position = core.Convert[float64](free[0])
	}
}

func (g *Game) indexWalls() {
	g.wallSet = make(map[core.Point[int]]struct{}, len(g.walls))
	for _, w := range g.walls {
		g.wallSet[w.Cell()] = struct{}{}
	}
}

func (g *Game) wallAt(cell core.Point[int]) bool {
	_, ok := g.wallSet[cell]
	return ok
}

func (g *Game) inBoard(cell core.Point[int]) bool {
	return core.NewRect(0, 0, int(g.width), int(g.height)).Contains(cell.X, cell.Y)
}

// Step runs one tick of the loop: apply the tick's command, advance the
// world unless paused, then check whether the run is over.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.status != StatusRunning {
		return core.StepResult{State: g.State()}
	}

	cmd := in.Command()
	if cmd == core.ActionPause {
		g.paused = !g.paused
	}
	if in.Has(core.ActionQuit) {
		g.player.apply(cmd)
		g.status = StatusQuit
		return core.StepResult{State: g.State()}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.player.apply(cmd)
	if err := g.Update(g.updateInterval); err != nil {
		g.status = StatusFaulted
		return core.StepResult{State: g.State(), Err: err}
	}
	g.tick++
	if !g.player.IsAlive() {
		g.status = StatusGameOver
	}
	return core.StepResult{State: g.State()}
}

// Update advances the world by dt. The order is fixed: player motion,
// pickup, enemy pursuit, enemy contact, HUD.
func (g *Game) Update(dt time.Duration) error {
	secs := dt.Seconds()

	g.movePlayer(secs)

	if g.player.Cell() == g.collectible.Cell() {
		g.player.score++
		if err := g.placeCollectible(); err != nil {
			return err
		}
	}

	for i := range g.enemies {
		g.enemies[i].pursue(g.player.position, secs)
	}

	cell := g.player.Cell()
	for _, e := range g.enemies {
		if e.Cell() == cell {
			g.player.TakeDamage(1)
		}
	}

	g.hud.refresh(g)
	return nil
}

// movePlayer commits the candidate position only when its cell is on the
// board and free of walls. Blocked moves are dropped whole.
func (g *Game) movePlayer(secs float64) {
	p := &g.player
	next := p.position.Add(p.direction.Scale(p.speed * secs))
	cell := core.CellOf(next)
	if !g.inBoard(cell) || g.wallAt(cell) {
		return
	}
	p.position = next
}

// State returns the status for the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(g.player.score),
		Health:   int(g.player.health),
		GameOver: g.status != StatusRunning,
		Quit:     g.status == StatusQuit,
		Paused:   g.paused,
	}
}

// TickInterval is the fixed simulation step.
func (g *Game) TickInterval() time.Duration { return g.updateInterval }

// UpdateInterval is an alias for TickInterval.
func (g *Game) UpdateInterval() time.Duration { return g.updateInterval }

func (g *Game) Width() uint16            { return g.width }
func (g *Game) Height() uint16           { return g.height }
func (g *Game) Player() Player           { return g.player }
func (g *Game) Collectible() Collectible { return g.collectible }
func (g *Game) Hud() Hud                 { return g.hud }
func (g *Game) Status() Status           { return g.status }
func (g *Game) Paused() bool             { return g.paused }
func (g *Game) Ticks() uint64            { return g.tick }
func (g *Game) Enemies() []Enemy         { return append([]Enemy(nil), g.enemies...) }
func (g *Game) Walls() []Wall            { return append([]Wall(nil), g.walls...) }
func (g *Game) Scenario() Scenario       { return g.scenario }

// Equal compares every persisted field. The random source is ignored.
func (g *Game) Equal(o *Game) bool {
	return g.Snapshot().Equal(o.Snapshot())
}
