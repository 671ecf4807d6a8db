package main

import (
	"editor-verify/internal/application/port/output"
	"editor-verify/internal/di"
	"editor-verify/internal/infrastructure/browser/rod"
	"editor-verify/internal/usecase/verifier"
)

// loadConfig reads the environment on top of the built-in defaults.
func loadConfig(env output.ConfigPort) di.Config {
	cfg := di.DefaultConfig()

	cfg.Verify.URL = env.GetWithDefault("VERIFY_URL", verifier.DefaultURL)
	cfg.Verify.Button.Role = env.GetWithDefault("VERIFY_ROLE", verifier.DefaultRole)
	cfg.Verify.Button.Name = env.GetWithDefault("VERIFY_NAME", verifier.DefaultName)
	cfg.Verify.Button.Exact = env.GetBool("VERIFY_EXACT", false)
	cfg.Verify.Wait = env.GetDuration("VERIFY_WAIT_MS", verifier.DefaultWait)
	cfg.Verify.ScreenshotPath = env.GetWithDefault("VERIFY_SCREENSHOT_PATH", verifier.DefaultScreenshotPath)
	cfg.Verify.RegionSelector = env.Get("VERIFY_REGION_SELECTOR")
	cfg.Verify.RequirePopulated = env.GetBool("VERIFY_REQUIRE_POPULATED", false)
	cfg.ScreenshotWidth = env.GetInt("VERIFY_SCREENSHOT_MAX_WIDTH", 0)

	def := rod.DefaultConfig()
	cfg.Browser.Headless = env.GetBool("BROWSER_HEADLESS", def.Headless)
	cfg.Browser.NoSandbox = env.GetBool("BROWSER_NO_SANDBOX", def.NoSandbox)
	cfg.Browser.DevTools = env.GetBool("BROWSER_DEVTOOLS", def.DevTools)
	cfg.Browser.SlowMotion = env.GetDuration("BROWSER_SLOW_MOTION_MS", def.SlowMotion)
	cfg.Browser.Trace = env.GetBool("BROWSER_TRACE", false)
	cfg.Browser.Bin = env.Get("BROWSER_BIN")
	cfg.Browser.Timeout = env.GetDuration("BROWSER_TIMEOUT_MS", def.Timeout)
	cfg.Browser.ViewportWidth = env.GetInt("BROWSER_VIEWPORT_WIDTH", def.ViewportWidth)
	cfg.Browser.ViewportHeight = env.GetInt("BROWSER_VIEWPORT_HEIGHT", def.ViewportHeight)

	cfg.Log.Dir = env.GetWithDefault("LOG_DIR", cfg.Log.Dir)
	cfg.Log.Level = env.GetWithDefault("LOG_LEVEL", cfg.Log.Level)

	return cfg
}
