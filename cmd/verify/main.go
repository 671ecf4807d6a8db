package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"editor-verify/internal/di"
	"editor-verify/internal/infrastructure/env"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(env.NewEnvService()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(envService *env.EnvService) *cobra.Command {
	cfg := loadConfig(envService)

	cmd := &cobra.Command{
		Use:           "verify",
		Short:         "Check that the editor populates after clicking the test button",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Verify.URL, "url", cfg.Verify.URL, "page to open")
	f.StringVar(&cfg.Verify.Button.Role, "role", cfg.Verify.Button.Role, "accessible role of the control")
	f.StringVar(&cfg.Verify.Button.Name, "name", cfg.Verify.Button.Name, "accessible name of the control")
	f.BoolVar(&cfg.Verify.Button.Exact, "exact", cfg.Verify.Button.Exact, "match the name exactly")
	f.DurationVar(&cfg.Verify.Wait, "wait", cfg.Verify.Wait, "pause after the click")
	f.StringVarP(&cfg.Verify.ScreenshotPath, "out", "o", cfg.Verify.ScreenshotPath, "screenshot path")
	f.StringVar(&cfg.Verify.RegionSelector, "region", cfg.Verify.RegionSelector, "CSS selector of the display region to report on")
	f.BoolVar(&cfg.Verify.RequirePopulated, "require-populated", cfg.Verify.RequirePopulated, "fail when the region has no text")
	f.BoolVar(&cfg.Browser.Headless, "headless", cfg.Browser.Headless, "run the browser headless")
	f.BoolVar(&cfg.Browser.NoSandbox, "no-sandbox", cfg.Browser.NoSandbox, "disable the Chromium sandbox")
	f.BoolVar(&cfg.Browser.DevTools, "devtools", cfg.Browser.DevTools, "open DevTools for each tab (headful only)")
	f.DurationVar(&cfg.Browser.SlowMotion, "slow-motion", cfg.Browser.SlowMotion, "delay between browser actions")
	f.StringVar(&cfg.Browser.Bin, "browser-bin", cfg.Browser.Bin, "path to a Chromium binary")
	f.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug, info, warn or error")

	return cmd
}

func run(ctx context.Context, cfg di.Config) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		return err
	}
	defer func() {
		if cerr := container.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "shutdown: %v\n", cerr)
			err = errors.Join(err, cerr)
		}
	}()

	result, err := container.Runner.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return err
	}

	fmt.Printf("screenshot: %s (%dx%d, %d bytes)\n", result.ScreenshotPath, result.Width, result.Height, result.BytesWritten)
	if result.Region != nil {
		fmt.Printf("region %s: %d chars\n", result.Region.Selector, result.Region.TextLength)
	}
	return nil
}
