package chase

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-chase/internal/core"
)

// Hud mirrors the player's score and health for display.
type Hud struct {
	score    uint32
	health   uint8
	position core.Point[uint16]
}

// refresh recomputes the HUD from the game. The text sits one row below
// the board, shifted left of center; coordinates saturate at zero and at
// the largest cell coordinate.
func (h *Hud) refresh(g *Game) {
	h.score = g.player.score
	h.health = g.player.health
	x := uint16(0)
	if half := g.width / 2; half > 10 {
		x = half - 10
	}
	y := g.height
	if y < math.MaxUint16 {
		y++
	}
	h.position = core.Pt(x, y)
}

func (h Hud) Score() uint32                { return h.score }
func (h Hud) Health() uint8                { return h.health }
func (h Hud) Position() core.Point[uint16] { return h.position }

// Text is the rendered status line.
func (h Hud) Text() string {
	return fmt.Sprintf("Health: %d, Score: %d", h.health, h.score)
}
