package chase

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-chase/internal/core"
)

var (
	// ErrBoardTooSmall is returned when the board has no interior.
	ErrBoardTooSmall = errors.New("board too small")
	// ErrPlacementExhausted is returned when no wall-free cell is left for
	// the collectible.
	ErrPlacementExhausted = errors.New("no free cell for placement")
)

// DefaultSpawnAttempts caps random probing before falling back to a scan.
const DefaultSpawnAttempts = 10000

// RandomSource is the randomness a Game consumes. *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// Positionable is the one capability all entities share.
type Positionable[T core.Number] interface {
	Position() core.Point[T]
	SetPosition(core.Point[T])
}

// Range is a half-open interval [Min, Max).
type Range[T core.Number] struct {
	Min, Max T
}

// Span returns Max - Min.
func (r Range[T]) Span() T { return r.Max - r.Min }

// Contains reports whether v lies in [Min, Max).
func (r Range[T]) Contains(v T) bool { return v >= r.Min && v < r.Max }

// Sample draws a uniform value from r. Empty ranges yield Min.
func Sample[T core.Number](r Range[T], rng RandomSource) T {
	if r.Max <= r.Min {
		return r.Min
	}
	switch any(r.Min).(type) {
	case float32, float64:
		return r.Min + T(rng.Float64()*float64(r.Span()))
	default:
		return r.Min + T(rng.Intn(int(r.Span())))
	}
}

// RandomizePosition assigns p an independent uniform sample per axis.
func RandomizePosition[T core.Number](p Positionable[T], rng RandomSource, xr, yr Range[T]) {
	p.SetPosition(core.Pt(Sample(xr, rng), Sample(yr, rng)))
}

// interior returns the integer ranges covering every non-boundary cell.
func (g *Game) interior() (Range[uint16], Range[uint16]) {
	return Range[uint16]{1, g.width - 1}, Range[uint16]{1, g.height - 1}
}

// placeCollectible moves the collectible to a random wall-free interior
// cell. Random probing is capped; once the cap is hit the free cells are
// enumerated and one is drawn from them, so failure means the interior is
// completely walled.
func (g *Game) placeCollectible() error {
	xr, yr := g.interior()
	for i := 0; i < g.spawnAttempts; i++ {
		RandomizePosition[uint16](&g.collectible, g.rng, xr, yr)
		if !g.wallAt(g.collectible.Cell()) {
			return nil
		}
	}

	free := g.freeCells()
	if len(free) == 0 {
		return fmt.Errorf("collectible on %dx%d board: %w", g.width, g.height, ErrPlacementExhausted)
	}
	g.collectible.SetPosition(free[g.rng.Intn(len(free))])
	return nil
}

// freeCells lists wall-free interior cells in row-major order.
func (g *Game) freeCells() []core.Point[uint16] {
	var free []core.Point[uint16]
	for y := uint16(1); y+1 < g.height; y++ {
		for x := uint16(1); x+1 < g.width; x++ {
			if !g.wallAt(core.Pt(int(x), int(y))) {
				free = append(free, core.Pt(x, y))
			}
		}
	}
	return free
}
