package pdf

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// BrowserLauncher abstracts how a disposable browser instance is obtained.
// Two strategies exist: a desktop-class browser for workstations, and a
// minimal packaged binary for constrained runtimes. Selection is by
// configuration, never by runtime platform detection, so tests can inject a
// fake launcher.
type BrowserLauncher interface {
	Launch() (*rod.Browser, error)
}

// Compile-time interface checks
var (
	_ BrowserLauncher = (*DesktopLauncher)(nil)
	_ BrowserLauncher = (*PackagedLauncher)(nil)
)

// DesktopLauncher launches a locally installed browser. Rod downloads a
// Chromium build on first use when no binary is configured.
type DesktopLauncher struct {
	// Bin overrides the browser binary path when non-empty.
	Bin string
}

// Launch starts a headless browser and connects to it.
func (d *DesktopLauncher) Launch() (*rod.Browser, error) {
	l := launcher.New()
	if d.Bin != "" {
		l = l.Bin(d.Bin)
	}
	return connect(l)
}

// PackagedLauncher launches a statically packaged minimal browser binary,
// suited to containerized or serverless runtimes where no display or sandbox
// support exists.
type PackagedLauncher struct {
	// Bin is the path to the packaged binary. Required.
	Bin string
}

// Launch starts the packaged browser with sandboxing disabled.
func (p *PackagedLauncher) Launch() (*rod.Browser, error) {
	if p.Bin == "" {
		return nil, fmt.Errorf("%w: packaged browser binary path not configured", ErrBrowserLaunch)
	}
	l := launcher.New().
		Bin(p.Bin).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage")
	return connect(l)
}

// NewLauncher selects a launcher implementation by strategy name.
func NewLauncher(strategy, bin string) BrowserLauncher {
	if strategy == "packaged" {
		return &PackagedLauncher{Bin: bin}
	}
	return &DesktopLauncher{Bin: bin}
}

func connect(l *launcher.Launcher) (*rod.Browser, error) {
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}
	return browser, nil
}
