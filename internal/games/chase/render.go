package chase

import (
	"fmt"

	"github.com/vovakirdan/tui-chase/internal/core"
)

// MinScreen is the smallest screen the board and HUD fit on.
func (g *Game) MinScreen() (int, int) {
	return int(g.width), int(g.height) + 2
}

// Render draws walls, then the player, the enemies, the collectible and
// finally the HUD, centered on dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	minW, minH := g.MinScreen()
	if dst.Width() < minW || dst.Height() < minH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	ox := (dst.Width() - minW) / 2
	oy := (dst.Height() - minH) / 2
	draw := func(d Drawable) {
		c := d.Cell()
		dst.SetColor(ox+c.X, oy+c.Y, d.Glyph(), d.Color())
	}

	for _, w := range g.walls {
		draw(w)
	}
	draw(g.player)
	for _, e := range g.enemies {
		draw(e)
	}
	draw(g.collectible)

	hp := g.hud.Position()
	dst.DrawTextColor(ox+int(hp.X), oy+int(hp.Y), g.hud.Text(), core.ColorWhite)

	switch g.status {
	case StatusGameOver:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d", g.player.score))
	case StatusFaulted:
		renderOverlay(dst, "Board is full", "No room for the collectible")
	case StatusRunning:
		if g.paused {
			renderOverlay(dst, "Paused", "Press P to continue")
		}
	}
}

// renderOverlay draws a boxed two-line message in the middle of dst.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.Rect{
		X: (dst.Width() - width) / 2,
		Y: (dst.Height() - 5) / 2,
		W: width,
		H: 5,
	}
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
