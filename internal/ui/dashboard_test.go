package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDashboard_Initial(t *testing.T) {
	d := NewDashboard("aes", []string{"nonlinearity", "sac"})

	if d.Status() != StatusIdle {
		t.Errorf("Expected Idle, got %s", d.Status())
	}
	if d.Done() != 0 {
		t.Errorf("Expected 0 done, got %d", d.Done())
	}
	if d.Init() == nil {
		t.Error("Expected tick command from Init")
	}
}

func TestDashboard_MetricDone(t *testing.T) {
	d := NewDashboard("aes", []string{"nonlinearity", "sac"})

	d.Update(MetricDoneMsg{Metric: "sac", Elapsed: time.Millisecond})

	if d.Status() != StatusRunning {
		t.Errorf("Expected Running, got %s", d.Status())
	}
	if d.Done() != 1 {
		t.Errorf("Expected 1 done, got %d", d.Done())
	}
	if d.progress.percentage != 0.5 {
		t.Errorf("Expected progress 0.5, got %f", d.progress.percentage)
	}
	view := d.View()
	if !strings.Contains(view, "1/2 metrics") {
		t.Error("View should show 1/2 metrics")
	}
	if !strings.Contains(view, "Computing 2 metrics") {
		t.Error("View should show the progress label")
	}
}

func TestDashboard_FinishedQuits(t *testing.T) {
	d := NewDashboard("aes", []string{"sac"})
	d.Update(MetricDoneMsg{Metric: "sac"})

	_, cmd := d.Update(FinishedMsg{})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if d.Status() != StatusCompleted {
		t.Errorf("Expected Completed, got %s", d.Status())
	}
	if d.progress.percentage != 1 {
		t.Errorf("Expected full progress, got %f", d.progress.percentage)
	}
}

func TestDashboard_Failed(t *testing.T) {
	d := NewDashboard("bad", []string{"sac"})
	boom := errors.New("boom")

	d.Update(FinishedMsg{Err: boom})

	if d.Status() != StatusFailed {
		t.Errorf("Expected Failed, got %s", d.Status())
	}
	if !errors.Is(d.Err(), boom) {
		t.Errorf("Expected boom, got %v", d.Err())
	}
	if !strings.Contains(d.View(), "FAILED") {
		t.Error("View should show FAILED")
	}
}

func TestDashboard_TickStopsAfterFinish(t *testing.T) {
	d := NewDashboard("aes", nil)

	if _, cmd := d.Update(TickMsg(time.Now())); cmd == nil {
		t.Error("Expected tick to reschedule while idle")
	}

	d.Update(FinishedMsg{})
	if _, cmd := d.Update(TickMsg(time.Now())); cmd != nil {
		t.Error("Expected no tick after completion")
	}
}

func TestDashboard_LogTrim(t *testing.T) {
	d := NewDashboard("aes", nil)
	for i := 0; i < 20; i++ {
		d.AddLog("INFO", "entry")
	}
	if len(d.logs) != d.maxLogs {
		t.Errorf("Expected %d logs, got %d", d.maxLogs, len(d.logs))
	}
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar(50)
	p.SetProgress(0.5)
	p.SetLabel("Testing")

	rendered := p.Render()
	if rendered == "" {
		t.Error("Render should not be empty")
	}

	withLabel := p.RenderWithLabel()
	if !strings.Contains(withLabel, "Testing") {
		t.Error("RenderWithLabel should include label")
	}
}

func TestProgressBar_Bounds(t *testing.T) {
	p := NewProgressBar(50)

	p.SetProgress(-0.5)
	if p.percentage != 0 {
		t.Errorf("Expected 0, got %f", p.percentage)
	}

	p.SetProgress(1.5)
	if p.percentage != 1 {
		t.Errorf("Expected 1, got %f", p.percentage)
	}
}

func TestSpinnerProgress(t *testing.T) {
	s := NewSpinnerProgress()
	first := s.Frame()
	s.Tick()
	if s.Frame() == first {
		t.Error("Tick should advance the frame")
	}

	s.Stop()
	stopped := s.Frame()
	s.Tick()
	if s.Frame() != stopped {
		t.Error("Stopped spinner should not advance")
	}
}

func TestRenderLevel(t *testing.T) {
	for _, level := range []string{"High", "Medium", "Low"} {
		if !strings.Contains(RenderLevel(level), level) {
			t.Errorf("RenderLevel(%q) lost its text", level)
		}
	}
}
