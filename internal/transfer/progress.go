package transfer

import (
	"fmt"
	"time"

	"github.com/shreyansh0727/datasync/internal/ui"
)

// ProgressTracker drives the multi-file progress display for a batch of
// transfers, one bar per file.
type ProgressTracker struct {
	Model     *ui.ProgressModel
	FileNames []string
	FileSizes []int64
	StartTime int64
}

func NewProgressTracker(fileNames []string, fileSizes []int64) *ProgressTracker {
	return &ProgressTracker{
		Model:     ui.NewProgressModel(fileNames, fileSizes),
		FileNames: fileNames,
		FileSizes: fileSizes,
	}
}

func (p *ProgressTracker) Start() {
	p.StartTime = time.Now().UnixMilli()
}

func (p *ProgressTracker) Update(index int, current int64) {
	if p.Model != nil {
		p.Model.UpdateProgress(index, current)
	}
}

func (p *ProgressTracker) Complete(index int) {
	if p.Model != nil {
		p.Model.MarkComplete(index)
	}
}

func (p *ProgressTracker) Error(index int, msg string) {
	if p.Model != nil {
		p.Model.MarkError(index, msg)
	}
}

func (p *ProgressTracker) View() string {
	if p.Model != nil {
		return p.Model.View()
	}
	return ""
}

func (p *ProgressTracker) TotalSize() int64 {
	var total int64
	for _, s := range p.FileSizes {
		total += s
	}
	return total
}

func (p *ProgressTracker) Duration() time.Duration {
	return time.Since(time.UnixMilli(p.StartTime))
}

// RunProgressLoop redraws the progress view every 100ms until done is
// closed, then paints the final state once more.
func RunProgressLoop(done <-chan struct{}, numLines int, view func() string) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	firstPrint := true
	for {
		select {
		case <-done:
			if !firstPrint {
				ui.ClearLines(numLines)
			}
			fmt.Print(view())
			return
		case <-ticker.C:
			if !firstPrint {
				ui.ClearLines(numLines)
			}
			firstPrint = false
			fmt.Print(view())
		}
	}
}

// RenderSummary prints the post-transfer stats table.
func RenderSummary(filesCount int, totalSize int64, duration time.Duration) {
	fmt.Println()
	ui.RenderTransferSummary(ui.TransferSummary{
		Status:    "Complete",
		Files:     filesCount,
		TotalSize: ui.FormatBytes(totalSize),
		Duration:  ui.FormatDuration(duration),
		Speed:     ui.FormatSpeed(float64(totalSize) / duration.Seconds()),
	})
}
