package chase

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-chase/internal/core"
)

const eps = 1e-9

// newTestGame builds and initializes an open board with the player parked
// at (5,5) and the collectible moved out of the way.
func newTestGame(t *testing.T, enemies ...Enemy) *Game {
	t.Helper()
	g := NewBuilder().
		Width(10).
		Height(10).
		PlayerPosition(5, 5).
		PlayerDirection(1, 0).
		PlayerSpeed(0).
		Enemies(enemies...).
		Seed(1).
		Build()
	if err := g.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	// Init randomizes enemies; put them back where the test asked.
	for i, e := range enemies {
		g.enemies[i].position = e.position
	}
	g.collectible.position = core.Pt[uint16](8, 8)
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestEnemyPursuitStep(t *testing.T) {
	g := newTestGame(t, EnemyAt(1, 1, 1.0))

	if err := g.Update(time.Second); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := 1 + 1/math.Sqrt2
	e := g.enemies[0].position
	if math.Abs(e.X-want) > 1e-6 || math.Abs(e.Y-want) > 1e-6 {
		t.Errorf("enemy at (%.4f, %.4f), want (%.4f, %.4f)", e.X, e.Y, want, want)
	}
	if g.player.position != core.Pt(5.0, 5.0) {
		t.Errorf("player moved to %v", g.player.position)
	}
	if g.player.health != 10 {
		t.Errorf("health = %d, want 10", g.player.health)
	}
	if g.player.score != 0 {
		t.Errorf("score = %d, want 0", g.player.score)
	}
}

func TestPickupRespawnsCollectible(t *testing.T) {
	g := newTestGame(t)
	g.collectible.position = core.Pt[uint16](5, 5)

	if err := g.Update(50 * time.Millisecond); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if g.player.score != 1 {
		t.Errorf("score = %d, want 1", g.player.score)
	}
	if g.wallAt(g.collectible.Cell()) {
		t.Errorf("collectible respawned on a wall at %v", g.collectible.position)
	}
	if g.hud.Score() != 1 {
		t.Errorf("hud score = %d, want 1", g.hud.Score())
	}
}

func TestLastHealthEndsRun(t *testing.T) {
	g := newTestGame(t, EnemyAt(5, 5, 1.0))
	g.player.health = 1

	res := step(g)

	if g.player.health != 0 {
		t.Errorf("health = %d, want 0", g.player.health)
	}
	if g.Status() != StatusGameOver {
		t.Errorf("status = %v, want game_over", g.Status())
	}
	if !res.State.GameOver || res.State.Quit {
		t.Errorf("state = %+v, want GameOver without Quit", res.State)
	}

	// Terminal: further steps change nothing.
	before := g.Snapshot()
	step(g, core.ActionAccelerate)
	if !before.Equal(g.Snapshot()) {
		t.Error("step after game over mutated the world")
	}
}

func TestEachCollidingEnemyCostsHealth(t *testing.T) {
	g := newTestGame(t,
		EnemyAt(5, 5, 0.5),
		EnemyAt(5.2, 4.8, 0.5),
		EnemyAt(4.9, 5.1, 0.5),
		EnemyAt(1, 1, 0.5),
	)

	if err := g.Update(50 * time.Millisecond); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.player.health != 7 {
		t.Errorf("health = %d, want 7", g.player.health)
	}
}

func TestDamageSaturates(t *testing.T) {
	p := Player{health: 2}
	p.TakeDamage(5)
	if p.health != 0 {
		t.Errorf("health = %d, want 0", p.health)
	}
	p.TakeDamage(1)
	if p.health != 0 || p.IsAlive() {
		t.Errorf("health = %d, alive = %v", p.health, p.IsAlive())
	}
}

func TestPlayerBlockedByWall(t *testing.T) {
	g := newTestGame(t)
	g.player.position = core.Pt(1.0, 5.0)
	g.player.direction = core.Pt(-1.0, 0.0)
	g.player.speed = 1

	if err := g.Update(time.Second); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.player.position != core.Pt(1.0, 5.0) {
		t.Errorf("player moved into wall: %v", g.player.position)
	}

	// Open direction commits the unrounded candidate.
	g.player.direction = core.Pt(1.0, 0.0)
	g.player.speed = 0.3
	if err := g.Update(time.Second); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if math.Abs(g.player.position.X-1.3) > eps {
		t.Errorf("player x = %v, want 1.3", g.player.position.X)
	}
}

func TestPlayerStaysOnBoardWithLargeStep(t *testing.T) {
	// No boundary wall in the player's way after a huge dt: the candidate
	// lands off the board and must be rejected.
	g := newTestGame(t)
	g.player.speed = 1
	if err := g.Update(time.Hour); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !g.inBoard(g.player.Cell()) {
		t.Errorf("player left the board: %v", g.player.position)
	}
}

func TestEnemyConvergence(t *testing.T) {
	g := newTestGame(t, EnemyAt(1, 1, 0.3))
	g.player.position = core.Pt(7.0, 4.0)
	g.player.health = 255

	target := core.Round(g.player.position)
	prev := core.Distance(g.enemies[0].position, target)
	for i := 0; i < 10000; i++ {
		if g.enemies[0].Cell() == g.player.Cell() {
			return
		}
		if err := g.Update(50 * time.Millisecond); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		d := core.Distance(g.enemies[0].position, target)
		if d >= prev {
			t.Fatalf("tick %d: distance %.6f did not decrease from %.6f", i, d, prev)
		}
		prev = d
	}
	t.Fatal("enemy never reached the player")
}

func TestEnemyLongTickStopsOnTargetCell(t *testing.T) {
	g := newTestGame(t, EnemyAt(8, 5, 1))
	g.player.position = core.Pt(1.0, 5.0)
	g.player.health = 255

	if err := g.Update(10 * time.Second); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	e := g.enemies[0]
	if !g.inBoard(e.Cell()) {
		t.Fatalf("enemy left the board: %v", e.position)
	}
	if e.Cell() != g.player.Cell() {
		t.Errorf("enemy cell %v, want player cell %v", e.Cell(), g.player.Cell())
	}
}

func TestEnemyLongTicksNeverMoveAway(t *testing.T) {
	g := newTestGame(t, EnemyAt(1.4, 8.2, 3))
	g.player.position = core.Pt(7.0, 2.0)
	g.player.health = 255

	target := core.Round(g.player.position)
	prev := core.Distance(g.enemies[0].position, target)
	for i := 0; i < 5; i++ {
		if err := g.Update(7 * time.Second); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		e := g.enemies[0]
		if !g.inBoard(e.Cell()) {
			t.Fatalf("update %d: enemy left the board: %v", i, e.position)
		}
		d := core.Distance(e.position, target)
		if d > prev+eps {
			t.Fatalf("update %d: distance grew %.6f -> %.6f", i, prev, d)
		}
		prev = d
	}
	if g.enemies[0].Cell() != g.player.Cell() {
		t.Errorf("enemy cell %v, want player cell %v", g.enemies[0].Cell(), g.player.Cell())
	}
}

func TestEnemySharingCellStaysPut(t *testing.T) {
	g := newTestGame(t, EnemyAt(5.3, 4.8, 1))
	g.player.health = 255
	if err := g.Update(time.Second); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.enemies[0].position != core.Pt(5.3, 4.8) {
		t.Errorf("enemy moved to %v", g.enemies[0].position)
	}
}

func TestCommands(t *testing.T) {
	g := newTestGame(t)

	step(g, core.ActionTurnRight)
	d := g.player.direction
	if math.Abs(d.X-math.Sqrt2/2) > eps || math.Abs(d.Y-math.Sqrt2/2) > eps {
		t.Errorf("after right turn direction = %v", d)
	}
	if g.player.Glyph() != '↘' {
		t.Errorf("glyph = %q, want ↘", g.player.Glyph())
	}

	for i := 0; i < 7; i++ {
		step(g, core.ActionTurnRight)
	}
	d = g.player.direction
	if math.Abs(d.X-1) > 1e-6 || math.Abs(d.Y) > 1e-6 {
		t.Errorf("after full circle direction = %v", d)
	}
	if l := core.Length(d); math.Abs(l-1) > eps {
		t.Errorf("direction length = %v, want 1", l)
	}

	step(g, core.ActionTurnLeft)
	if g.player.Glyph() != '↗' {
		t.Errorf("glyph = %q, want ↗", g.player.Glyph())
	}

	for i := 0; i < 12; i++ {
		g.player.apply(core.ActionAccelerate)
	}
	if g.player.speed != 1.0 {
		t.Errorf("speed = %v, want 1.0", g.player.speed)
	}
	g.player.apply(core.ActionDecelerate)
	if g.player.speed != 0.9 {
		t.Errorf("speed = %v, want 0.9", g.player.speed)
	}
	for i := 0; i < 20; i++ {
		g.player.apply(core.ActionDecelerate)
	}
	if g.player.speed != 0 {
		t.Errorf("speed = %v, want 0", g.player.speed)
	}
}

func TestPlayerGlyph(t *testing.T) {
	tests := []struct {
		dir  core.Point[float64]
		want rune
	}{
		{core.Pt(1.0, 0.0), '→'},
		{core.Pt(0.0, 1.0), '↓'},
		{core.Pt(-1.0, 0.0), '←'},
		{core.Pt(0.0, -1.0), '↑'},
		{core.Pt(-1.0, -1.0), '↖'},
		{core.Pt(-1.0, 1.0), '↙'},
		{core.Pt(0.0, 0.0), '@'},
	}
	for _, tc := range tests {
		p := Player{direction: tc.dir}
		if got := p.Glyph(); got != tc.want {
			t.Errorf("Glyph(%v) = %q, want %q", tc.dir, got, tc.want)
		}
	}
}

func TestPauseAndQuit(t *testing.T) {
	g := newTestGame(t, EnemyAt(1, 1, 1))
	before := g.enemies[0].position

	step(g, core.ActionPause)
	if !g.Paused() || !g.State().Paused {
		t.Fatal("expected paused")
	}
	step(g, core.ActionTurnRight)
	if g.enemies[0].position != before || g.Ticks() != 0 {
		t.Error("world advanced while paused")
	}
	if g.player.direction != core.Pt(1.0, 0.0) {
		t.Error("command applied while paused")
	}

	step(g, core.ActionPause)
	if g.Paused() || g.Ticks() != 1 {
		t.Errorf("paused = %v ticks = %d after unpause", g.Paused(), g.Ticks())
	}

	pos := g.enemies[0].position
	res := step(g, core.ActionQuit)
	if g.Status() != StatusQuit || !res.State.Quit || !res.State.GameOver {
		t.Errorf("status = %v state = %+v", g.Status(), res.State)
	}
	if g.enemies[0].position != pos {
		t.Error("world advanced on the quit tick")
	}
}

func TestQuitKeepsFirstCommand(t *testing.T) {
	g := newTestGame(t)
	step(g, core.ActionTurnLeft, core.ActionQuit, core.ActionTurnRight)
	if g.Status() != StatusQuit {
		t.Fatalf("status = %v", g.Status())
	}
	if g.player.Glyph() != '↗' {
		t.Errorf("glyph = %q, want ↗", g.player.Glyph())
	}
}

func TestInitPlacesBoard(t *testing.T) {
	const w, h = 20, 12
	g := NewBuilder().
		Width(w).
		Height(h).
		RandomWalls(15).
		Enemies(NewEnemy(0.5), NewEnemy(0.4), NewEnemy(0.3)).
		Seed(42).
		Build()
	if err := g.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if got, want := len(g.walls), 2*w+2*h+15; got != want {
		t.Errorf("walls = %d, want %d", got, want)
	}
	for x := 0; x < w; x++ {
		for _, y := range []int{0, h - 1} {
			if !g.wallAt(core.Pt(x, y)) {
				t.Errorf("missing boundary wall at (%d,%d)", x, y)
			}
		}
	}
	for y := 0; y < h; y++ {
		for _, x := range []int{0, w - 1} {
			if !g.wallAt(core.Pt(x, y)) {
				t.Errorf("missing boundary wall at (%d,%d)", x, y)
			}
		}
	}
	for _, wall := range g.walls[2*w+2*h:] {
		c := wall.Cell()
		if c.X < 1 || c.X > w-2 || c.Y < 1 || c.Y > h-2 {
			t.Errorf("random wall outside interior: %v", c)
		}
	}
	for _, e := range g.enemies {
		p := e.position
		if p.X < 1 || p.X >= w-2 || p.Y < 1 || p.Y >= h-2 {
			t.Errorf("enemy outside spawn range: %v", p)
		}
	}
	if g.wallAt(g.collectible.Cell()) {
		t.Errorf("collectible on a wall: %v", g.collectible.position)
	}
	if g.wallAt(g.player.Cell()) {
		t.Errorf("player on a wall: %v", g.player.position)
	}
	if g.Status() != StatusRunning {
		t.Errorf("status = %v", g.Status())
	}

	// Second Init is a no-op.
	n := len(g.walls)
	if err := g.Init(); err != nil || len(g.walls) != n {
		t.Errorf("re-Init changed walls: %d -> %d (%v)", n, len(g.walls), err)
	}
}

func TestInitErrors(t *testing.T) {
	t.Run("board too small", func(t *testing.T) {
		g := NewBuilder().Width(2).Height(10).Seed(1).Build()
		if err := g.Init(); !errors.Is(err, ErrBoardTooSmall) {
			t.Errorf("err = %v, want ErrBoardTooSmall", err)
		}
	})

	t.Run("interior fully walled", func(t *testing.T) {
		g := NewBuilder().
			Width(3).
			Height(3).
			Walls(NewWall(1, 1)).
			SpawnAttempts(5).
			Seed(1).
			Build()
		if err := g.Init(); !errors.Is(err, ErrPlacementExhausted) {
			t.Errorf("err = %v, want ErrPlacementExhausted", err)
		}
	})

	t.Run("single free cell", func(t *testing.T) {
		g := NewBuilder().
			Width(4).
			Height(3).
			Walls(NewWall(1, 1)).
			SpawnAttempts(1).
			Seed(3).
			Build()
		if err := g.Init(); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if g.collectible.position != core.Pt[uint16](2, 1) {
			t.Errorf("collectible = %v, want (2,1)", g.collectible.position)
		}
	})
}

func TestPlayerStartOnWallIsMoved(t *testing.T) {
	g := NewBuilder().
		Width(10).
		Height(10).
		Walls(NewWall(1, 1)).
		Enemies().
		Seed(5).
		Build()
	if err := g.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if g.player.position != core.Pt(2.0, 1.0) {
		t.Errorf("player = %v, want (2,1)", g.player.position)
	}
}

func TestRespawnFailureFaults(t *testing.T) {
	g := newTestGame(t)
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			g.wallSet[core.Pt(x, y)] = struct{}{}
		}
	}
	g.spawnAttempts = 3
	g.collectible.position = core.Pt[uint16](5, 5)

	res := step(g)
	if !errors.Is(res.Err, ErrPlacementExhausted) {
		t.Fatalf("err = %v, want ErrPlacementExhausted", res.Err)
	}
	if g.Status() != StatusFaulted || !res.State.GameOver {
		t.Errorf("status = %v state = %+v", g.Status(), res.State)
	}
}

// TestRunInvariants drives a crowded board with random commands and checks
// bounds, wall avoidance, monotonic health and one point per pickup tick.
func TestRunInvariants(t *testing.T) {
	g := NewBuilder().
		Width(24).
		Height(12).
		RandomWalls(30).
		PlayerSpeed(0.5).
		Enemies(NewEnemy(0.05), NewEnemy(0.1), NewEnemy(0.15), NewEnemy(0.2)).
		UpdateInterval(200 * time.Millisecond).
		Seed(99).
		Build()
	if err := g.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	g.player.health = 255

	actions := []core.Action{
		core.ActionNone, core.ActionTurnLeft, core.ActionTurnRight,
		core.ActionAccelerate, core.ActionDecelerate,
	}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 3000 && g.Status() == StatusRunning; i++ {
		health := g.player.health
		score := g.player.score
		onCollectible := false

		res := step(g, actions[rng.Intn(len(actions))])
		if res.Err != nil {
			t.Fatalf("tick %d: %v", i, res.Err)
		}
		if g.player.score != score {
			onCollectible = true
		}

		cell := g.player.Cell()
		if !g.inBoard(cell) || g.wallAt(cell) {
			t.Fatalf("tick %d: player on invalid cell %v", i, cell)
		}
		if g.wallAt(g.collectible.Cell()) {
			t.Fatalf("tick %d: collectible on wall %v", i, g.collectible.position)
		}
		for j, e := range g.enemies {
			if !g.inBoard(e.Cell()) {
				t.Fatalf("tick %d: enemy %d off the board at %v", i, j, e.position)
			}
		}
		if g.player.health > health {
			t.Fatalf("tick %d: health rose %d -> %d", i, health, g.player.health)
		}
		if onCollectible && g.player.score != score+1 {
			t.Fatalf("tick %d: score jumped %d -> %d", i, score, g.player.score)
		}
		if s := g.player.speed; s < MinSpeed || s > MaxSpeed {
			t.Fatalf("tick %d: speed %v out of range", i, s)
		}
		if g.hud.Health() != g.player.health || g.hud.Score() != g.player.score {
			t.Fatalf("tick %d: hud out of sync", i)
		}
	}
}

func TestDeterminism(t *testing.T) {
	build := func() *Game {
		g := NewBuilder().
			Width(30).
			Height(15).
			RandomWalls(20).
			PlayerSpeed(0.6).
			Seed(12345).
			Build()
		if err := g.Init(); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		return g
	}

	g1, g2 := build(), build()
	for i := 0; i < 200; i++ {
		var a core.Action
		switch i % 40 {
		case 10:
			a = core.ActionTurnRight
		case 25:
			a = core.ActionTurnLeft
		}
		step(g1, a)
		step(g2, a)
	}

	if !g1.Equal(g2) {
		t.Errorf("same seed diverged:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, EnemyAt(2, 2, 0))
	g.collectible.position = core.Pt[uint16](7, 3)

	screen := core.NewScreen(10, 12)
	g.Render(screen)

	checks := []struct {
		x, y int
		want rune
	}{
		{0, 0, '#'},
		{9, 9, '#'},
		{5, 5, '→'},
		{2, 2, 'X'},
		{7, 3, '$'},
	}
	for _, c := range checks {
		if got := screen.Get(c.x, c.y); got != c.want {
			t.Errorf("(%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
	if got := screen.GetCell(2, 2).Color; got != core.ColorBrightRed {
		t.Errorf("enemy color = %v", got)
	}
	if got := screen.Row(11); got != "Health: 10" {
		t.Errorf("hud row = %q", got)
	}
}

func TestRenderCollectibleDrawnOverEnemy(t *testing.T) {
	g := newTestGame(t, EnemyAt(7, 3, 0))
	g.collectible.position = core.Pt[uint16](7, 3)

	screen := core.NewScreen(10, 12)
	g.Render(screen)
	if got := screen.Get(7, 3); got != '$' {
		t.Errorf("(7,3) = %q, want $", got)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(30, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too small overlay, got:\n%s", screen.String())
	}
}

func TestHudPosition(t *testing.T) {
	tests := []struct {
		w, h  uint16
		wantX uint16
	}{
		{60, 20, 20},
		{20, 10, 0},
		{10, 10, 0},
		{3, 3, 0},
	}
	for _, tc := range tests {
		g := NewBuilder().Width(tc.w).Height(tc.h).Build()
		pos := g.Hud().Position()
		if pos.X != tc.wantX || pos.Y != tc.h+1 {
			t.Errorf("%dx%d: hud at %v, want (%d,%d)", tc.w, tc.h, pos, tc.wantX, tc.h+1)
		}
	}
	if got := (Hud{score: 3, health: 7}).Text(); got != "Health: 7, Score: 3" {
		t.Errorf("Text() = %q", got)
	}
}

func TestHudPositionSaturatesAtTallestBoard(t *testing.T) {
	g := &Game{width: 60, height: math.MaxUint16}
	var h Hud
	h.refresh(g)
	if want := core.Pt[uint16](20, math.MaxUint16); h.Position() != want {
		t.Errorf("hud at %v, want %v", h.Position(), want)
	}
}
