package chase

import (
	"math"

	"github.com/vovakirdan/tui-chase/internal/core"
)

// Speed bounds and steps for the player's discrete commands.
const (
	MinSpeed  = 0.0
	MaxSpeed  = 1.0
	SpeedStep = 0.1
	TurnAngle = math.Pi / 4
)

// Drawable is anything that occupies a grid cell on the board.
type Drawable interface {
	Cell() core.Point[int]
	Glyph() rune
	Color() core.Color
}

// Wall is an immutable obstacle cell.
type Wall struct {
	position core.Point[uint16]
}

// NewWall creates a wall at (x, y).
func NewWall(x, y uint16) Wall {
	return Wall{position: core.Pt(x, y)}
}

func (w *Wall) Position() core.Point[uint16]     { return w.position }
func (w *Wall) SetPosition(p core.Point[uint16]) { w.position = p }
func (w Wall) Cell() core.Point[int]             { return core.Convert[int](w.position) }
func (w Wall) Glyph() rune                       { return '#' }
func (w Wall) Color() core.Color                 { return core.ColorGray }

// Collectible is the scoring item. It relocates every time it is picked up.
type Collectible struct {
	position core.Point[uint16]
}

func (c *Collectible) Position() core.Point[uint16]     { return c.position }
func (c *Collectible) SetPosition(p core.Point[uint16]) { c.position = p }
func (c Collectible) Cell() core.Point[int]             { return core.Convert[int](c.position) }
func (c Collectible) Glyph() rune                       { return '$' }
func (c Collectible) Color() core.Color                 { return core.ColorBrightGreen }

// Enemy pursues the player in a straight line at a fixed speed.
type Enemy struct {
	position core.Point[float64]
	speed    float64
}

// NewEnemy creates an enemy with the given speed in cells per second.
func NewEnemy(speed float64) Enemy {
	return Enemy{speed: speed}
}

// EnemyAt creates an enemy at a known position, used by tests and restores.
func EnemyAt(x, y, speed float64) Enemy {
	return Enemy{position: core.Pt(x, y), speed: speed}
}

func (e *Enemy) Position() core.Point[float64]     { return e.position }
func (e *Enemy) SetPosition(p core.Point[float64]) { e.position = p }
func (e Enemy) Speed() float64                     { return e.speed }
func (e Enemy) Cell() core.Point[int]              { return core.CellOf(e.position) }
func (e Enemy) Glyph() rune                        { return 'X' }
func (e Enemy) Color() core.Color                  { return core.ColorBrightRed }

// pursue steps toward target's rounded cell. Sharing the target's cell
// leaves a zero direction and the enemy stays put. The step never passes
// the target cell, so a long tick cannot carry the enemy off the board.
func (e *Enemy) pursue(target core.Point[float64], secs float64) {
	from, to := core.Round(e.position), core.Round(target)
	dir := core.Normalize(to.Sub(from))
	step := min(e.speed*secs, core.Distance(from, to))
	e.position = e.position.Add(dir.Scale(step))
}

// Player is the controlled unit. Health only ever goes down after
// construction; direction and speed change only through commands.
type Player struct {
	position  core.Point[float64]
	direction core.Point[float64]
	speed     float64
	health    uint8
	score     uint32
}

func (p *Player) Position() core.Point[float64]     { return p.position }
func (p *Player) SetPosition(q core.Point[float64]) { p.position = q }
func (p Player) Direction() core.Point[float64]     { return p.direction }
func (p Player) Speed() float64                     { return p.speed }
func (p Player) Health() uint8                      { return p.health }
func (p Player) Score() uint32                      { return p.score }
func (p Player) IsAlive() bool                      { return p.health > 0 }
func (p Player) Cell() core.Point[int]              { return core.CellOf(p.position) }
func (p Player) Color() core.Color                  { return core.ColorBrightYellow }

// arrows are indexed by facing octant, clockwise from east on screen.
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Glyph is an arrow for the player's facing.
func (p Player) Glyph() rune {
	if p.direction.IsZero() {
		return '@'
	}
	octant := int(math.Round(math.Atan2(p.direction.Y, p.direction.X) / TurnAngle))
	return arrows[(octant%8+8)%8]
}

// TakeDamage lowers health, saturating at zero.
func (p *Player) TakeDamage(damage uint8) {
	if damage < p.health {
		p.health -= damage
	} else {
		p.health = 0
	}
}

// turn rotates the facing by angle radians and renormalizes to keep the
// direction a unit vector across many turns.
func (p *Player) turn(angle float64) {
	p.direction = core.Normalize(core.Rotate(p.direction, angle))
}

// accelerate changes speed by delta, clamped to [0, 1] and snapped to
// tenths so repeated steps land on exact values.
func (p *Player) accelerate(delta float64) {
	s := core.ClampF(p.speed+delta, MinSpeed, MaxSpeed)
	p.speed = math.Round(s*10) / 10
}

// apply executes one discrete command.
func (p *Player) apply(a core.Action) {
	switch a {
	case core.ActionTurnLeft:
		p.turn(-TurnAngle)
	case core.ActionTurnRight:
		p.turn(TurnAngle)
	case core.ActionAccelerate:
		p.accelerate(SpeedStep)
	case core.ActionDecelerate:
		p.accelerate(-SpeedStep)
	}
}
