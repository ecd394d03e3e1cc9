package app

import (
	"os"
	"time"
)

// TemplateWatcher polls the open template file for external changes
// and triggers a callback when a newer version is detected, so the
// designer can offer to reload a template edited outside the app.
type TemplateWatcher struct {
	path          string
	baseline      time.Time
	checkInterval time.Duration
	stopCh        chan struct{}
	onChanged     func()
}

// NewTemplateWatcher creates a watcher for the given template file.
// Returns nil if the file cannot be inspected.
func NewTemplateWatcher(path string, checkInterval time.Duration) *TemplateWatcher {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	return &TemplateWatcher{
		path:          path,
		baseline:      info.ModTime(),
		checkInterval: checkInterval,
		stopCh:        make(chan struct{}),
	}
}

// OnChanged sets the callback invoked when the file changes on disk.
// The callback runs on a background goroutine.
func (w *TemplateWatcher) OnChanged(callback func()) {
	w.onChanged = callback
}

// Start begins watching in a background goroutine.
func (w *TemplateWatcher) Start() {
	w.stopCh = make(chan struct{})
	go w.watchLoop()
}

// Stop stops the watcher goroutine.
func (w *TemplateWatcher) Stop() {
	close(w.stopCh)
}

func (w *TemplateWatcher) watchLoop() {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.checkForUpdate() && w.onChanged != nil {
				w.onChanged()
				return
			}
		}
	}
}

func (w *TemplateWatcher) checkForUpdate() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	return info.ModTime().After(w.baseline)
}

// ResetBaseline updates the baseline to the file's current mod time.
// Call this when the user declines a reload to avoid repeated prompts.
func (w *TemplateWatcher) ResetBaseline() {
	if info, err := os.Stat(w.path); err == nil {
		w.baseline = info.ModTime()
	}
}

// Path returns the watched file path.
func (w *TemplateWatcher) Path() string { return w.path }
