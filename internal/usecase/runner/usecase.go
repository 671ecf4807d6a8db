package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"editor-verify/internal/application/port/input"
	"editor-verify/internal/application/port/output"
	"editor-verify/internal/domain/entity"
)

var _ input.VerificationRunner = (*UseCase)(nil)

// UseCase owns the browser for the duration of one verification.
type UseCase struct {
	launcher output.BrowserLauncher
	verifier input.Verifier
	logger   output.LoggerPort
}

func New(launcher output.BrowserLauncher, verifier input.Verifier, logger output.LoggerPort) *UseCase {
	return &UseCase{
		launcher: launcher,
		verifier: verifier,
		logger:   logger,
	}
}

// Run launches a browser, opens a page and verifies it. Page and browser are
// released on every return path; release errors are joined to the result.
func (uc *UseCase) Run(ctx context.Context) (result *entity.VerificationResult, err error) {
	start := time.Now()

	browser, err := uc.launcher.Launch(ctx)
	if err != nil {
		uc.logger.Error("browser launch failed", "error", err)
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			uc.logger.Warn("browser close failed", "error", cerr)
			err = errors.Join(err, fmt.Errorf("close browser: %w", cerr))
		}
		uc.logger.Debug("browser released", "elapsed", time.Since(start))
	}()

	page, err := browser.NewPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			uc.logger.Warn("page close failed", "error", cerr)
			err = errors.Join(err, fmt.Errorf("close page: %w", cerr))
		}
	}()

	result, err = uc.verifier.Verify(ctx, page)
	if err != nil {
		uc.logger.Error("verification failed", "error", err, "url", page.CurrentURL())
		return result, err
	}

	uc.logger.Info("verification passed", "screenshot", result.ScreenshotPath, "duration", time.Since(start))
	return result, nil
}
