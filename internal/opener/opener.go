// Package opener launches a generated document in the desktop viewer.
//
// Opening is a best-effort side effect: Open returns at once, the launch
// runs in the background, and failures are only logged.
package opener

import (
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// Opener starts the platform's "open with default application" command.
type Opener struct {
	logger *zap.Logger
	goos   string
	start  func(name string, args ...string) error
}

// New creates an Opener for the current platform.
func New(logger *zap.Logger) *Opener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Opener{logger: logger, goos: runtime.GOOS, start: startDetached}
}

// Command returns the program and arguments that open path on goos.
func Command(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		// The empty argument is the window title expected by start.
		return "cmd", []string{"/c", "start", "", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open launches the viewer for path without waiting for it.
func (o *Opener) Open(path string) {
	name, args := Command(o.goos, path)
	go func() {
		if err := o.start(name, args...); err != nil {
			o.logger.Warn("opening document failed",
				zap.String("path", path),
				zap.String("command", name),
				zap.Error(err),
			)
			return
		}
		o.logger.Debug("opened document", zap.String("path", path), zap.String("command", name))
	}()
}

// startDetached runs the command to completion. It is always called from
// a goroutine, so the caller never blocks on the viewer.
func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}
