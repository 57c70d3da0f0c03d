package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/sim"
)

// Board layout: one tile is two terminal cells wide so squares look square.
const (
	tileWidth   = 2
	hudRows     = 1
	hintRows    = 1
	minHUDWidth = 32
)

// Hint texts shown under the board.
const (
	hintStart = "press ARROW KEYS to START..."
	hintReset = "(esc) reset"
	hintPause = "(space) pause"
)

type tile [tileWidth]rune

var (
	tileEmpty = tile{'·', ' '}
	tileWall  = tile{'▓', '▓'}
	tileBody  = tile{'█', '█'}
	tileFruit = tile{'●', ' '}
)

// ScreenSize returns the character grid needed to draw a board of tileCount tiles.
func ScreenSize(tileCount int) (w, h int) {
	return max(tileCount*tileWidth, minHUDWidth), hudRows + tileCount + hintRows
}

// Draw renders snap into dst, resizing it to fit the board.
func Draw(dst *core.Screen, snap sim.Snapshot, pilot string) {
	w, h := ScreenSize(snap.TileCount)
	if dst.Width() != w || dst.Height() != h {
		dst.Resize(w, h)
	} else {
		dst.Clear()
	}

	n := snap.TileCount
	board := core.NewRect(0, hudRows, n*tileWidth, n)
	inner := board
	if snap.Walls {
		dst.DrawRect(board, tileWall[0], core.ColorWall)
		inner = core.NewRect(tileWidth, hudRows+1, (n-2)*tileWidth, n-2)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if inner.Contains(x*tileWidth, hudRows+y) {
				drawTile(dst, x, y, tileEmpty, core.ColorBoard)
			}
		}
	}

	drawTile(dst, snap.Fruit.X, snap.Fruit.Y, tileFruit, core.ColorFruit)
	for _, p := range snap.Trail {
		drawTile(dst, p.X, p.Y, tileBody, core.ColorSnake)
	}
	drawTile(dst, snap.Player.X, snap.Player.Y, tileBody, core.ColorHead)

	drawHUD(dst, snap, pilot)
	drawHints(dst, snap, hudRows+n)
}

func drawTile(dst *core.Screen, x, y int, t tile, c core.Color) {
	for i, r := range t {
		dst.SetColored(x*tileWidth+i, hudRows+y, r, c)
	}
}

func drawHUD(dst *core.Screen, snap sim.Snapshot, pilot string) {
	dst.DrawText(0, 0, fmt.Sprintf("points: %d", snap.Points), core.ColorHUD)

	top := fmt.Sprintf("top: %d", snap.PointsMax)
	dst.DrawText(dst.Width()-len(top), 0, top, core.ColorHUD)

	if pilot != "" {
		label := "[" + pilot + "]"
		dst.DrawText((dst.Width()-len(label))/2, 0, label, core.ColorHint)
	}
}

func drawHints(dst *core.Screen, snap sim.Snapshot, row int) {
	if snap.Stopped() {
		dst.DrawText(0, row, hintStart, core.ColorHint)
		return
	}
	dst.DrawText(0, row, hintReset, core.ColorHint)
	dst.DrawText(dst.Width()-len(hintPause), row, hintPause, core.ColorHint)
}
