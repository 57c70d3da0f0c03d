package tui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/sim"
)

// pngHUDHeight is the score strip above the board.
const pngHUDHeight = 20

var (
	pngBackground = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	pngFallback   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// RenderPNG draws the score strip and, below it, the board at CellSize pixels
// per tile.
func RenderPNG(snap sim.Snapshot, theme config.ThemeConfig) image.Image {
	cell := snap.CellSize
	if cell <= 0 {
		cell = float64(sim.DefaultCanvasSize) / float64(max(snap.TileCount, 1))
	}
	size := int(math.Round(cell * float64(snap.TileCount)))

	img := image.NewRGBA(image.Rect(0, 0, size, size+pngHUDHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: pngBackground}, image.Point{}, draw.Src)
	drawScore(img, snap, themeColor(theme.HUD))

	fill := func(p core.Point, c color.Color) {
		// One pixel gap between tiles, as on the canvas.
		r := image.Rect(
			int(float64(p.X)*cell), int(float64(p.Y)*cell)+pngHUDHeight,
			int(float64(p.X+1)*cell)-1, int(float64(p.Y+1)*cell)-1+pngHUDHeight,
		)
		draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
	}

	n := snap.TileCount
	if snap.Walls {
		wall := themeColor(theme.Wall)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if p := core.Pt(x, y); !p.Within(1, n-2) {
					fill(p, wall)
				}
			}
		}
	}

	fill(snap.Fruit, themeColor(theme.Fruit))
	body := themeColor(theme.Snake)
	for _, p := range snap.Trail {
		fill(p, body)
	}
	fill(snap.Player, themeColor(theme.Head))

	return img
}

func drawScore(img *image.RGBA, snap sim.Snapshot, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 14),
	}
	d.DrawString(fmt.Sprintf("points: %d", snap.Points))

	top := fmt.Sprintf("top: %d", snap.PointsMax)
	d.Dot = fixed.P(img.Bounds().Dx()-4-d.MeasureString(top).Round(), 14)
	d.DrawString(top)
}

// themeColor parses a "#RRGGBB" theme entry. ANSI numbers and bad values fall back to gray.
func themeColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return pngFallback
	}
	return c
}

// SaveScreenshot writes the text screen and a PNG of the board to dir.
// It returns the base path shared by both files, without extension.
func SaveScreenshot(dir string, screen *core.Screen, snap sim.Snapshot, theme config.ThemeConfig) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	base := freeBase(filepath.Join(dir, "snake_"+timestamp))

	if err := os.WriteFile(base+".txt", []byte(screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}

	f, err := os.Create(base + ".png")
	if err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot: %w", err)
	}
	if err := png.Encode(f, RenderPNG(snap, theme)); err != nil {
		f.Close()
		return "", fmt.Errorf("tui: cannot encode screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return base, nil
}

// freeBase appends _1, _2, ... to base until neither screenshot file exists.
func freeBase(base string) string {
	candidate := base
	for i := 1; exists(candidate+".txt") || exists(candidate+".png"); i++ {
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
	return candidate
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
