// Package ui provides a TUI dashboard that follows an S-box analysis live.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Status represents the dashboard state
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusRunning:
		return "Running"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// LogEntry represents a log message
type LogEntry struct {
	Time    time.Time
	Level   string
	Message string
}

// Dashboard is the bubbletea model for a running analysis
type Dashboard struct {
	width int

	status   Status
	name     string
	metrics  []string
	elapsed  map[string]time.Duration
	started  time.Time
	finished time.Duration
	err      error

	progress *ProgressBar
	spinner  *SpinnerProgress

	logs    []LogEntry
	maxLogs int
}

// NewDashboard creates a dashboard tracking the given metric tasks
func NewDashboard(name string, metrics []string) *Dashboard {
	progress := NewProgressBar(60)
	progress.SetLabel(fmt.Sprintf("Computing %d metrics", len(metrics)))

	return &Dashboard{
		width:    80,
		status:   StatusIdle,
		name:     name,
		metrics:  append([]string(nil), metrics...),
		elapsed:  make(map[string]time.Duration, len(metrics)),
		progress: progress,
		spinner:  NewSpinnerProgress(),
		logs:     make([]LogEntry, 0, 16),
		maxLogs:  8,
	}
}

// Status returns the current dashboard state
func (d *Dashboard) Status() Status {
	return d.status
}

// Err returns the failure reported by FinishedMsg, if any
func (d *Dashboard) Err() error {
	return d.err
}

// Done returns how many metric tasks have reported completion
func (d *Dashboard) Done() int {
	return len(d.elapsed)
}

// AddLog adds a log entry
func (d *Dashboard) AddLog(level, message string) {
	d.logs = append(d.logs, LogEntry{Time: time.Now(), Level: level, Message: message})
	if len(d.logs) > d.maxLogs {
		d.logs = d.logs[len(d.logs)-d.maxLogs:]
	}
}

// Start marks the analysis as running
func (d *Dashboard) Start() {
	d.status = StatusRunning
	d.started = time.Now()
	d.AddLog("INFO", "Analysis started: "+d.name)
}

func (d *Dashboard) markDone(metric string, elapsed time.Duration) {
	if d.status == StatusIdle {
		d.Start()
	}
	d.elapsed[metric] = elapsed
	if len(d.metrics) > 0 {
		d.progress.SetProgress(float64(len(d.elapsed)) / float64(len(d.metrics)))
	}
	d.AddLog("DEBUG", fmt.Sprintf("%s done in %s", metric, elapsed.Round(time.Microsecond)))
}

func (d *Dashboard) finish(err error) {
	d.spinner.Stop()
	if !d.started.IsZero() {
		d.finished = time.Since(d.started)
	}
	if err != nil {
		d.status = StatusFailed
		d.err = err
		d.AddLog("ERROR", err.Error())
		return
	}
	d.status = StatusCompleted
	d.progress.SetProgress(1)
	d.AddLog("INFO", "Analysis completed")
}

// --- Bubbletea Model interface ---

// TickMsg is sent on each animation tick
type TickMsg time.Time

// MetricDoneMsg reports that one metric task has finished
type MetricDoneMsg struct {
	Metric  string
	Elapsed time.Duration
}

// FinishedMsg is sent once the whole analysis has returned
type FinishedMsg struct {
	Err error
}

// Init initializes the model
func (d *Dashboard) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that ticks periodically
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return d, tea.Quit
		}

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.progress.SetWidth(d.width - 4)

	case MetricDoneMsg:
		d.markDone(msg.Metric, msg.Elapsed)

	case FinishedMsg:
		d.finish(msg.Err)
		return d, tea.Quit

	case TickMsg:
		d.spinner.Tick()
		if d.status == StatusIdle || d.status == StatusRunning {
			return d, tickCmd()
		}
	}

	return d, nil
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var b strings.Builder

	b.WriteString(d.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(d.renderMetrics())
	b.WriteString("\n")
	b.WriteString(d.progress.RenderWithLabel())
	b.WriteString("\n")
	b.WriteString(d.renderLog())
	b.WriteString(d.renderFooter())
	b.WriteString("\n")

	return b.String()
}

func (d *Dashboard) renderHeader() string {
	title := TitleStyle.Render("sboxscope")

	var statusText string
	switch d.status {
	case StatusRunning:
		statusText = d.spinner.Frame() + " " + RunningStyle.Render("RUNNING")
	case StatusCompleted:
		statusText = SuccessStyle.Render("✓ COMPLETED")
	case StatusFailed:
		statusText = ErrorStyle.Render("✗ FAILED")
	default:
		statusText = HelpStyle.Render("○ IDLE")
	}

	left := title + "  " + statusText
	right := InfoStyle.Render(d.name)
	padding := d.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + right
}

func (d *Dashboard) renderMetrics() string {
	var b strings.Builder
	for _, m := range d.metrics {
		if el, ok := d.elapsed[m]; ok {
			b.WriteString(SuccessStyle.Render("✓ "))
			b.WriteString(LabelStyle.Render(m))
			b.WriteString(HelpStyle.Render(el.Round(time.Microsecond).String()))
		} else {
			b.WriteString(HelpStyle.Render("· "))
			b.WriteString(LabelStyle.Render(m))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (d *Dashboard) renderLog() string {
	var b strings.Builder
	for _, entry := range d.logs {
		var levelStyle lipgloss.Style
		switch entry.Level {
		case "ERROR":
			levelStyle = ErrorStyle
		case "WARN":
			levelStyle = WarningStyle
		case "INFO":
			levelStyle = InfoStyle
		default:
			levelStyle = HelpStyle
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			HelpStyle.Render(entry.Time.Format("15:04:05")),
			levelStyle.Render(fmt.Sprintf("%-5s", entry.Level)),
			entry.Message,
		))
	}
	return b.String()
}

func (d *Dashboard) renderFooter() string {
	parts := []string{
		HelpStyle.Render(fmt.Sprintf("%d/%d metrics", len(d.elapsed), len(d.metrics))),
	}
	if d.finished > 0 {
		parts = append(parts, HelpStyle.Render("in "+d.finished.Round(time.Microsecond).String()))
	}
	parts = append(parts, RenderHelp("q", "quit"))
	return FooterStyle.Render(strings.Join(parts, "  "))
}

// Run shows the dashboard while work executes in its own goroutine.
// work reports progress through send and must finish by sending FinishedMsg.
func Run(d *Dashboard, work func(send func(tea.Msg))) error {
	p := tea.NewProgram(d)
	go work(p.Send)
	_, err := p.Run()
	return err
}
