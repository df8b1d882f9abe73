// Package viewer hands a written file to the platform's default viewer.
package viewer

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrUnsupported is returned on platforms without a known opener.
var ErrUnsupported = errors.New("no viewer known for this platform")

// Open starts the default viewer for path and returns without waiting for
// it to exit.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	cmd, err := Command(runtime.GOOS, abs)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	// the viewer outlives us; release its resources without blocking
	return cmd.Process.Release()
}

// Command builds the opener invocation for goos.
func Command(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	case "darwin":
		return exec.Command("open", target), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, goos)
	}
}
