package util

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists
func DirExists(dirname string) bool {
	info, err := os.Stat(dirname)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureParentDir creates the directory that will hold filePath if it doesn't exist
func EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if DirExists(dir) {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// FrameTimer keeps a rolling average over the last N frame durations
type FrameTimer struct {
	window  []time.Duration
	next    int
	filled  bool
	frames  int64
	started time.Time
}

// NewFrameTimer creates a timer averaging over windowSize frames
func NewFrameTimer(windowSize int) *FrameTimer {
	if windowSize <= 0 {
		windowSize = 1
	}
	return &FrameTimer{
		window:  make([]time.Duration, windowSize),
		started: time.Now(),
	}
}

// Add records the duration of one frame
func (ft *FrameTimer) Add(d time.Duration) {
	ft.window[ft.next] = d
	ft.next++
	if ft.next == len(ft.window) {
		ft.next = 0
		ft.filled = true
	}
	ft.frames++
}

// Frames returns how many frames were recorded in total
func (ft *FrameTimer) Frames() int64 {
	return ft.frames
}

// Average returns the mean duration over the recorded window
func (ft *FrameTimer) Average() time.Duration {
	count := ft.next
	if ft.filled {
		count = len(ft.window)
	}
	if count == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range ft.window[:count] {
		sum += d
	}
	return sum / time.Duration(count)
}

// FPS returns frames per second derived from Average
func (ft *FrameTimer) FPS() float64 {
	avg := ft.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
