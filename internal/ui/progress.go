package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProgressItem represents a single file transfer's progress.
type ProgressItem struct {
	ID         int
	Name       string
	Total      int64
	Current    int64
	StartTime  time.Time
	Started    bool
	Speed      float64 // bytes per second
	IsComplete bool
	HasError   bool
	ErrorMsg   string
}

// ProgressModel handles multiple file progress bars.
type ProgressModel struct {
	items      []*ProgressItem
	progresses []progress.Model
	width      int
	mu         sync.RWMutex
}

// NewProgressModel creates a multi-file progress model, one bar per
// file.
func NewProgressModel(fileNames []string, fileSizes []int64) *ProgressModel {
	items := make([]*ProgressItem, len(fileNames))
	progresses := make([]progress.Model, len(fileNames))

	for i := range fileNames {
		items[i] = &ProgressItem{
			ID:    i,
			Name:  fileNames[i],
			Total: fileSizes[i],
		}

		progresses[i] = progress.New(
			progress.WithGradient(ProgressStart, ProgressEnd),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		)
	}

	return &ProgressModel{
		items:      items,
		progresses: progresses,
		width:      80,
	}
}

func (m *ProgressModel) Init() tea.Cmd {
	return tickCmd()
}

// TickMsg is sent periodically to update the progress display.
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// UpdateProgress updates a specific file's progress.
func (m *ProgressModel) UpdateProgress(id int, current int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id < 0 || id >= len(m.items) {
		return
	}
	item := m.items[id]
	// Time the transfer from its first byte, not from model creation.
	if !item.Started && current > 0 {
		item.Started = true
		item.StartTime = time.Now()
	}
	if item.Started {
		elapsed := time.Since(item.StartTime).Seconds()
		if elapsed > 0 {
			item.Speed = float64(current) / elapsed
		}
	}
	item.Current = current
	if current >= item.Total {
		item.IsComplete = true
	}
}

// MarkComplete marks a file as complete.
func (m *ProgressModel) MarkComplete(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id >= 0 && id < len(m.items) {
		m.items[id].IsComplete = true
		m.items[id].Current = m.items[id].Total
	}
}

// MarkError marks a file as having an error.
func (m *ProgressModel) MarkError(id int, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id >= 0 && id < len(m.items) {
		m.items[id].HasError = true
		m.items[id].ErrorMsg = errMsg
	}
}

// AllComplete returns true once every file completed or errored.
func (m *ProgressModel) AllComplete() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, item := range m.items {
		if !item.IsComplete && !item.HasError {
			return false
		}
	}
	return true
}

func (m *ProgressModel) Update(msg tea.Msg) (*ProgressModel, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if !m.AllComplete() {
			return m, tickCmd()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.progresses {
			m.progresses[i].Width = min(30, msg.Width-50)
		}
		return m, nil

	case progress.FrameMsg:
		var cmds []tea.Cmd
		for i := range m.progresses {
			newModel, cmd := m.progresses[i].Update(msg)
			m.progresses[i] = newModel.(progress.Model)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *ProgressModel) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b strings.Builder

	for i, item := range m.items {
		var icon string
		var nameStyle lipgloss.Style

		switch {
		case item.HasError:
			icon = IconError
			nameStyle = ErrorStyle
		case item.IsComplete:
			icon = IconSuccess
			nameStyle = SuccessStyle
		default:
			icon = IconFile
			nameStyle = lipgloss.NewStyle()
		}

		name := TruncateString(item.Name, 30)
		b.WriteString(fmt.Sprintf("%s %s ", icon, nameStyle.Render(name)))

		if item.Total > 0 {
			percent := float64(item.Current) / float64(item.Total)
			b.WriteString(m.progresses[i].ViewAs(percent))
			b.WriteString(fmt.Sprintf(" %5.1f%%", percent*100))
		}

		if !item.IsComplete && !item.HasError && item.Speed > 0 {
			b.WriteString(MutedStyle.Render(" " + FormatSpeed(item.Speed)))
			if remaining := item.Total - item.Current; remaining > 0 {
				eta := float64(remaining) / item.Speed
				b.WriteString(MutedStyle.Render(fmt.Sprintf(" ETA: %.0fs", eta)))
			}
		}

		b.WriteString(MutedStyle.Render(fmt.Sprintf(" (%s/%s)",
			FormatBytes(item.Current),
			FormatBytes(item.Total))))

		b.WriteString("\n")
	}

	return b.String()
}

// TruncateString shortens s to maxLen runes-of-bytes with an ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// FormatBytes formats a byte count as a human readable string.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatSpeed formats a transfer rate as a human readable string.
func FormatSpeed(bytesPerSecond float64) string {
	const (
		KB = 1024.0
		MB = KB * 1024
	)

	switch {
	case bytesPerSecond >= MB:
		return fmt.Sprintf("%.2f MB/s", bytesPerSecond/MB)
	case bytesPerSecond >= KB:
		return fmt.Sprintf("%.2f KB/s", bytesPerSecond/KB)
	default:
		return fmt.Sprintf("%.0f B/s", bytesPerSecond)
	}
}

// FormatDuration formats a duration as h/m/s components.
func FormatDuration(d time.Duration) string {
	seconds := int(d.Seconds()) % 60
	minutes := int(d.Minutes()) % 60
	hours := int(d.Hours())

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
