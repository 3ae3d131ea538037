// Package monitor is a terminal diagnostics dashboard for the engine's
// optional debug counters: which region of the frame is being generated,
// the frame counter, and how much slack the DMA completion handler has
// against its real-time deadline. It is purely additive — the engine runs
// identically whether or not a monitor is attached.
package monitor

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Snapshot is a point-in-time read of the counters monitor displays. Callers
// poll engine.Engine.Diagnostics and the scanline index themselves and hand
// over a Snapshot each tick, since the engine has no notion of a monitor.
type Snapshot struct {
	Scanline        int
	RenderingActive bool
	FrameCounter    uint32
	HandlerMargin   time.Duration
}

// Source supplies the latest Snapshot on demand.
type Source interface {
	Snapshot() Snapshot
}

const tickInterval = 100 * time.Millisecond

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type tickMsg time.Time

// Model is a Bubble Tea model rendering the latest Snapshot from Source.
type Model struct {
	source   Source
	snapshot Snapshot
	deadline time.Duration
}

// New builds a monitor Model. deadline is the real-time budget the handler
// must beat (63.4us at the NTSC sample rate — one scanline period); margins
// below a quarter of it are highlighted.
func New(source Source, deadline time.Duration) Model {
	return Model{source: source, deadline: deadline}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tickMsg:
		m.snapshot = m.source.Snapshot()
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	status := idleStyle.Render("vblank")
	if m.snapshot.RenderingActive {
		status = activeStyle.Render("active video")
	}

	marginStyle := activeStyle
	if m.snapshot.HandlerMargin < m.deadline/4 {
		marginStyle = warnStyle
	}

	return fmt.Sprintf(
		"%s %d\n%s %s\n%s %d\n%s %s (budget %s)\n\npress q to quit\n",
		labelStyle.Render("scanline"), m.snapshot.Scanline,
		labelStyle.Render("region"), status,
		labelStyle.Render("frame"), m.snapshot.FrameCounter,
		labelStyle.Render("handler margin"), marginStyle.Render(m.snapshot.HandlerMargin.String()), m.deadline,
	)
}
