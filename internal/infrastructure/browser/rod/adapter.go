package rod

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"editor-verify/internal/application/port/output"
	"editor-verify/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var (
	_ output.BrowserLauncher = (*Launcher)(nil)
	_ output.BrowserPort     = (*BrowserAdapter)(nil)
)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidSelector = errors.New("invalid selector")
)

const (
	defaultTimeout        = 10 * time.Second
	defaultSlowMotion     = 0
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
)

type BrowserConfig struct {
	Headless       bool
	NoSandbox      bool
	DevTools       bool
	Trace          bool
	Bin            string
	SlowMotion     time.Duration
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:       true,
		NoSandbox:      false,
		DevTools:       false,
		SlowMotion:     defaultSlowMotion,
		Timeout:        defaultTimeout,
		ViewportWidth:  defaultViewportWidth,
		ViewportHeight: defaultViewportHeight,
	}
}

// Launcher starts one Chromium process per Launch call.
type Launcher struct {
	cfg    BrowserConfig
	logger output.LoggerPort
}

func NewLauncher(cfg BrowserConfig, logger output.LoggerPort) *Launcher {
	return &Launcher{cfg: cfg, logger: logger}
}

func (l *Launcher) Launch(ctx context.Context) (output.BrowserPort, error) {
	l.logger.Debug("launching browser", "headless", l.cfg.Headless, "bin", l.cfg.Bin)

	b, err := NewBrowserAdapter(ctx, l.cfg)
	if err != nil {
		return nil, err
	}

	l.logger.Info("browser launched", "control_url", b.controlURL)
	return b, nil
}

type BrowserAdapter struct {
	browser    *rod.Browser
	launcher   *launcher.Launcher
	controlURL string
	cfg        BrowserConfig

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = defaultViewportWidth
	}
	if cfg.ViewportHeight <= 0 {
		cfg.ViewportHeight = defaultViewportHeight
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	url, err := l.Launch()
	if err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		Trace(cfg.Trace).
		SlowMotion(cfg.SlowMotion)

	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &BrowserAdapter{
		browser:    browser,
		launcher:   l,
		controlURL: url,
		cfg:        cfg,
	}, nil
}

func (b *BrowserAdapter) NewPage(ctx context.Context) (output.PagePort, error) {
	if !b.IsReady() {
		return nil, entity.ErrBrowserClosed
	}

	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page = page.Context(context.Background())

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             b.cfg.ViewportWidth,
		Height:            b.cfg.ViewportHeight,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("failed to set viewport: %w", err)
	}

	return newPageAdapter(page, b.cfg.Timeout), nil
}

func (b *BrowserAdapter) IsReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed && b.browser != nil
}

// Close shuts the browser down and kills the process. Safe to call more than once.
func (b *BrowserAdapter) Close() error {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()

		if b.browser != nil {
			b.closeErr = b.browser.Close()
		}
		if b.launcher != nil {
			b.launcher.Kill()
			b.launcher.Cleanup()
		}
	})
	return b.closeErr
}
