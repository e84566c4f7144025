package logger

import (
	"fmt"
	"strings"
	"sync"
)

// ProgressBar renders "[===   ] 3/6 (50%)" text for embedding in a message.
// It carries no styling of its own; the severity style is applied by Emit.
type ProgressBar struct {
	current int
	total   int
	width   int
	mu      sync.RWMutex
}

// NewProgressBar creates a bar for total steps drawn width characters wide.
func NewProgressBar(total, width int) *ProgressBar {
	if width < 1 {
		width = 10
	}
	return &ProgressBar{total: total, width: width}
}

// Increment advances the bar by one step.
func (pb *ProgressBar) Increment() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.current++
}

// percentage returns completion clamped to 0-100.
func (pb *ProgressBar) percentage() int {
	if pb.total <= 0 {
		return 0
	}
	perc := (pb.current * 100) / pb.total
	if perc > 100 {
		perc = 100
	}
	if perc < 0 {
		perc = 0
	}
	return perc
}

// Render returns the bar text.
func (pb *ProgressBar) Render() string {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	perc := pb.percentage()
	filled := (perc * pb.width) / 100

	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", pb.width-filled) + "]"
	return fmt.Sprintf("%s %d/%d (%d%%)", bar, pb.current, pb.total, perc)
}
