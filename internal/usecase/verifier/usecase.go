package verifier

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"editor-verify/internal/application/port/input"
	"editor-verify/internal/application/port/output"
	"editor-verify/internal/domain/entity"
	"editor-verify/internal/infrastructure/htmltext"
)

var _ input.Verifier = (*UseCase)(nil)

const (
	DefaultURL            = "http://localhost:5070"
	DefaultRole           = "button"
	DefaultName           = "test btn"
	DefaultWait           = 1000 * time.Millisecond
	DefaultScreenshotPath = "/home/jules/verification/monaco_editor.png"
)

type Config struct {
	URL            string
	Button         entity.RoleQuery
	Wait           time.Duration
	ScreenshotPath string

	// RegionSelector, if set, is inspected after the wait and reported.
	RegionSelector   string
	RequirePopulated bool
}

func DefaultConfig() Config {
	return Config{
		URL:            DefaultURL,
		Button:         entity.RoleQuery{Role: DefaultRole, Name: DefaultName},
		Wait:           DefaultWait,
		ScreenshotPath: DefaultScreenshotPath,
	}
}

type UseCase struct {
	cfg    Config
	writer output.ScreenshotWriter
	logger output.LoggerPort
}

func New(cfg Config, writer output.ScreenshotWriter, logger output.LoggerPort) *UseCase {
	return &UseCase{
		cfg:    cfg,
		writer: writer,
		logger: logger,
	}
}

// Verify opens the target, clicks the button, waits and writes the screenshot.
// Nothing is retried; the first failing step ends the run.
func (uc *UseCase) Verify(ctx context.Context, page output.PagePort) (*entity.VerificationResult, error) {
	start := time.Now()
	result := &entity.VerificationResult{URL: uc.cfg.URL}

	uc.logger.Info("navigating", "url", uc.cfg.URL)
	if err := page.Navigate(ctx, uc.cfg.URL); err != nil {
		return nil, fmt.Errorf("open %s: %w", uc.cfg.URL, err)
	}

	uc.logger.Debug("looking up control", "query", uc.cfg.Button.String())
	matched, err := page.ClickByRole(ctx, uc.cfg.Button)
	if err != nil {
		return nil, fmt.Errorf("click %s: %w", uc.cfg.Button, err)
	}
	result.Element = *matched
	uc.logger.Info("control clicked", "role", matched.Role, "name", matched.Name)

	if err := sleep(ctx, uc.cfg.Wait); err != nil {
		return nil, fmt.Errorf("wait: %w", err)
	}
	result.Waited = uc.cfg.Wait

	var regionErr error
	if uc.cfg.RegionSelector != "" {
		report, err := uc.inspectRegion(ctx, page)
		if err != nil {
			return nil, err
		}
		result.Region = report
		if !report.Populated && uc.cfg.RequirePopulated {
			regionErr = fmt.Errorf("%w: %s", entity.ErrRegionEmpty, uc.cfg.RegionSelector)
		}
	}

	shot, err := page.Screenshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	n, err := uc.writer.Write(uc.cfg.ScreenshotPath, shot)
	if err != nil {
		return nil, fmt.Errorf("write screenshot: %w", err)
	}

	result.ScreenshotPath = uc.cfg.ScreenshotPath
	result.Width = shot.Width
	result.Height = shot.Height
	result.BytesWritten = n
	result.Duration = time.Since(start)

	uc.logger.Info("screenshot written",
		"path", uc.cfg.ScreenshotPath,
		"bytes", n,
		"width", shot.Width,
		"height", shot.Height,
	)

	if regionErr != nil {
		return result, regionErr
	}
	return result, nil
}

func (uc *UseCase) inspectRegion(ctx context.Context, page output.PagePort) (*entity.RegionReport, error) {
	raw, err := page.RegionHTML(ctx, uc.cfg.RegionSelector)
	if err != nil {
		return nil, fmt.Errorf("inspect region: %w", err)
	}

	text, err := htmltext.VisibleText(raw)
	if err != nil {
		return nil, fmt.Errorf("parse region: %w", err)
	}

	report := &entity.RegionReport{
		Selector:   uc.cfg.RegionSelector,
		TextLength: utf8.RuneCountInString(text),
		Populated:  text != "",
	}
	uc.logger.Info("region inspected", "selector", report.Selector, "text_length", report.TextLength)
	return report, nil
}

// sleep is a fixed pause; it only ends early when ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
