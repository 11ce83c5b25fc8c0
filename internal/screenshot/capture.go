// Package screenshot captures full-page PNG screenshots of URLs with a
// headless browser. Each capture launches its own browser process and
// guarantees its release on every exit path. A failed capture is retried once
// on a second, more permissive engine configuration before giving up.
package screenshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Fixed viewport so screenshots are comparable across captures.
const (
	viewportWidth  = 1200
	viewportHeight = 800
)

// CaptureError reports a capture failure with the engine that produced it.
// Both engines must fail before a CaptureError escapes Capture.
type CaptureError struct {
	Engine string
	Err    error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("screenshot capture failed (engine %s): %v", e.Engine, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// Config holds capture settings.
type Config struct {
	NavigationTimeout time.Duration // Per-attempt navigation timeout (default 30s)
	SettleDelay       time.Duration // Wait after load before screenshotting (default 2s)
	ChromePath        string        // Optional path to a Chrome/Chromium binary
}

// Capturer takes screenshots of web pages.
type Capturer struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Capturer.
func New(cfg Config, logger *slog.Logger) *Capturer {
	if cfg.NavigationTimeout == 0 {
		cfg.NavigationTimeout = 30 * time.Second
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = 2 * time.Second
	}
	return &Capturer{cfg: cfg, logger: logger}
}

// Capture renders url at the fixed viewport and returns a full-page PNG.
// The standard engine is tried first; on any failure a permissive engine
// (relaxed sandboxing and certificate checks, stealth page) gets one attempt.
func (c *Capturer) Capture(ctx context.Context, url string) ([]byte, error) {
	png, err := c.captureWith(ctx, url, "chromium", false)
	if err == nil {
		return png, nil
	}

	c.logger.Warn("standard engine capture failed, retrying with permissive engine",
		"url", url,
		"error", err,
	)

	png, fallbackErr := c.captureWith(ctx, url, "chromium-permissive", true)
	if fallbackErr == nil {
		return png, nil
	}
	return nil, &CaptureError{Engine: "chromium-permissive", Err: fallbackErr}
}

// captureWith performs one capture attempt on a dedicated browser process.
// The browser and page are released on every exit path.
func (c *Capturer) captureWith(ctx context.Context, url, engine string, permissive bool) ([]byte, error) {
	l := launcher.New().Headless(true)
	if c.cfg.ChromePath != "" {
		l = l.Bin(c.cfg.ChromePath)
	}

	l = l.
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("window-size", fmt.Sprintf("%d,%d", viewportWidth, viewportHeight)).
		Set("lang", "en-US,en")

	if permissive {
		l = l.
			Set("no-sandbox").
			Set("disable-setuid-sandbox").
			Set("ignore-certificate-errors").
			Set("disable-web-security").
			Set("disable-blink-features", "AutomationControlled")
	}
	defer l.Cleanup()

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch %s: %w", engine, err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", engine, err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			c.logger.Warn("error closing browser", "engine", engine, "error", err)
		}
	}()

	var page *rod.Page
	if permissive {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	nav := page.Timeout(c.cfg.NavigationTimeout)
	if err := nav.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	if err := nav.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	// Give dynamic content a moment to render before the screenshot.
	select {
	case <-time.After(c.cfg.SettleDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	png, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}

	c.logger.Debug("screenshot captured",
		"engine", engine,
		"url", url,
		"bytes", len(png),
	)

	return png, nil
}
