// Package tui provides the Bubble Tea front end for the snake game.
// It renders frames published by a session and forwards keyboard input to it.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/sim"
)

// Options configures the game screen.
type Options struct {
	Pilot         string // name shown in the HUD; non-empty detaches keyboard steering
	Theme         config.ThemeConfig
	ScreenshotDir string
	Logger        *log.Logger
}

// Model is the Bubble Tea model for the game screen.
type Model struct {
	sess    *session.Session
	opts    Options
	keys    KeyMap
	help    help.Model
	palette Palette
	screen  *core.Screen
	snap    sim.Snapshot
	status  string
	width   int

	quitting bool
}

// NewModel creates a model that displays sess. The caller starts and disposes
// the session.
func NewModel(sess *session.Session, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	sess.SetInputEnabled(opts.Pilot == "")

	snap := sess.Snapshot()
	w, h := ScreenSize(snap.TileCount)

	return Model{
		sess:    sess,
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		palette: NewPalette(opts.Theme),
		screen:  core.NewScreen(w, h),
		snap:    snap,
	}
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.sess.Frames())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.snap = msg.Snapshot
		if msg.Result.Event.Fatal() {
			m.status = "ouch: " + msg.Result.Event.String()
		} else if msg.Result.Event == sim.EventFruit {
			m.status = ""
		}
		return m, waitForFrame(m.sess.Frames())

	case framesClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()

	case key.Matches(msg, m.keys.Walls):
		on := !m.snap.Walls
		m.sess.Do(func(s *sim.Simulation) { s.SetWalls(on) })
		m.status = fmt.Sprintf("walls %s", onOff(on))

	case key.Matches(msg, m.keys.FixedTail):
		on := !m.snap.FixedTail
		m.sess.Do(func(s *sim.Simulation) { s.SetFixedTail(on) })
		m.status = fmt.Sprintf("fixed tail %s", onOff(on))

	case key.Matches(msg, m.keys.Grow), key.Matches(msg, m.keys.Shrink):
		n := m.snap.TileCount + 1
		if key.Matches(msg, m.keys.Shrink) {
			n = m.snap.TileCount - 1
		}
		m.sess.Do(func(s *sim.Simulation) { s.SetTileCount(n) })
		m.status = fmt.Sprintf("board %d×%d", n, n)
		if n < sim.MinTileCount || n > sim.MaxTileCount {
			m.status = fmt.Sprintf("board size stays within %d..%d", sim.MinTileCount, sim.MaxTileCount)
		}

	case key.Matches(msg, m.keys.ClearTop):
		m.sess.Do(func(s *sim.Simulation) { s.ClearTopScore() })
		m.status = "top score cleared"

	default:
		if cmd := m.keys.Command(msg); cmd != core.CommandNone {
			if !m.sess.Send(cmd) && cmd.IsDirection() {
				m.status = "steered by " + m.opts.Pilot
			}
		}
	}

	return m, nil
}

// saveScreenshot saves the current screen and board image.
func (m *Model) saveScreenshot() {
	Draw(m.screen, m.snap, m.opts.Pilot)
	base, err := SaveScreenshot(m.opts.ScreenshotDir, m.screen, m.snap, m.opts.Theme)
	if err != nil {
		m.opts.Logger.Warn("screenshot failed", "error", err)
		m.status = "screenshot failed"
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", base)
	m.status = "saved " + base + ".{txt,png}"
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	Draw(m.screen, m.snap, m.opts.Pilot)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen, m.palette))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// Run starts the Bubble Tea program for sess and blocks until the user quits.
func Run(sess *session.Session, opts Options) error {
	p := tea.NewProgram(
		NewModel(sess, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
