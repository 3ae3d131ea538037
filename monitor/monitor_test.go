package monitor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeSource struct{ snap Snapshot }

func (f fakeSource) Snapshot() Snapshot { return f.snap }

func TestUpdateOnTickRefreshesSnapshot(t *testing.T) {
	src := fakeSource{snap: Snapshot{Scanline: 42, FrameCounter: 7}}
	m := New(src, 63400*time.Nanosecond)

	updated, cmd := m.Update(tickMsg(time.Now()))
	mm := updated.(Model)
	if mm.snapshot.Scanline != 42 || mm.snapshot.FrameCounter != 7 {
		t.Errorf("snapshot not refreshed: %+v", mm.snapshot)
	}
	if cmd == nil {
		t.Error("expected a follow-up tick command")
	}
}

func TestUpdateOnQuitReturnsQuitCmd(t *testing.T) {
	m := New(fakeSource{}, time.Second)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
}

func TestViewRendersWithoutPanicking(t *testing.T) {
	m := New(fakeSource{snap: Snapshot{RenderingActive: true}}, 63400*time.Nanosecond)
	out := m.View()
	if out == "" {
		t.Error("expected non-empty view")
	}
}
