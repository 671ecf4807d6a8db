package di

import (
	"fmt"

	"editor-verify/internal/application/port/input"
	"editor-verify/internal/application/port/output"
	"editor-verify/internal/infrastructure/browser/rod"
	"editor-verify/internal/infrastructure/imagefile"
	"editor-verify/internal/infrastructure/logger"
	"editor-verify/internal/usecase/runner"
	"editor-verify/internal/usecase/verifier"

	"github.com/google/uuid"
)

type Container struct {
	RunID    string
	Logger   output.LoggerPort
	Launcher output.BrowserLauncher
	Verifier input.Verifier
	Runner   input.VerificationRunner
}

type Config struct {
	Browser         rod.BrowserConfig
	Verify          verifier.Config
	Log             logger.Config
	ScreenshotWidth int
}

func DefaultConfig() Config {
	return Config{
		Browser: rod.DefaultConfig(),
		Verify:  verifier.DefaultConfig(),
		Log:     logger.DefaultConfig(),
	}
}

func NewContainer(cfg Config) (*Container, error) {
	runID := uuid.NewString()

	log, err := logger.NewLoggerAdapter("verify_"+runID[:8], cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	runLog := log.WithField("run_id", runID)

	launcher := rod.NewLauncher(cfg.Browser, runLog.WithField("component", "browser"))
	v := verifier.New(cfg.Verify, imagefile.NewWriter(cfg.ScreenshotWidth), runLog.WithField("component", "verifier"))
	r := runner.New(launcher, v, runLog.WithField("component", "runner"))

	runLog.Info("container ready",
		"url", cfg.Verify.URL,
		"control", cfg.Verify.Button.String(),
		"wait", cfg.Verify.Wait,
		"screenshot", cfg.Verify.ScreenshotPath,
		"headless", cfg.Browser.Headless,
	)

	return &Container{
		RunID:    runID,
		Logger:   log,
		Launcher: launcher,
		Verifier: v,
		Runner:   r,
	}, nil
}

func (c *Container) Close() error {
	if c.Logger == nil {
		return nil
	}
	if err := c.Logger.Close(); err != nil {
		return fmt.Errorf("close logger: %w", err)
	}
	return nil
}
