package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/session"
)

// FrameMsg carries a frame published by the session.
type FrameMsg session.Frame

// framesClosedMsg is sent once the session has been disposed.
type framesClosedMsg struct{}

// waitForFrame returns a command that blocks until the next frame.
// The session ticks on its own schedule, so the UI never drives the simulation.
func waitForFrame(frames <-chan session.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return framesClosedMsg{}
		}
		return FrameMsg(f)
	}
}
