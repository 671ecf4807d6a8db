package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"net/url"
	"strings"
	"sync"
	"time"

	"editor-verify/internal/application/port/output"
	"editor-verify/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

var _ output.PagePort = (*PageAdapter)(nil)

const rolePollInterval = 100 * time.Millisecond

type PageAdapter struct {
	page    *rod.Page
	timeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

func newPageAdapter(page *rod.Page, timeout time.Duration) *PageAdapter {
	return &PageAdapter{
		page:    page,
		timeout: timeout,
	}
}

func (p *PageAdapter) Navigate(ctx context.Context, rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	page := p.page.Context(ctx)

	if err := page.Navigate(rawURL); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load failed: %w", err)
	}
	return nil
}

// ClickByRole waits until the query matches, then clicks the control.
// More than one match fails immediately.
func (p *PageAdapter) ClickByRole(ctx context.Context, query entity.RoleQuery) (*entity.MatchedElement, error) {
	if strings.TrimSpace(query.Role) == "" {
		return nil, fmt.Errorf("%w: empty role", ErrInvalidSelector)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	page := p.page.Context(ctx)

	matches, err := pollRole(ctx, query, func() ([]axMatch, error) {
		return queryByRole(page, query)
	})
	if err != nil {
		return nil, err
	}

	if len(matches) > 1 {
		return nil, fmt.Errorf("%w: %s resolved to %d elements", entity.ErrAmbiguousElement, query, len(matches))
	}

	m := matches[0]
	el, err := page.ElementFromNode(&proto.DOMNode{BackendNodeID: m.backendID})
	if err != nil {
		return nil, fmt.Errorf("resolve element %s: %w", query, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, fmt.Errorf("click failed: %w", err)
	}

	return &entity.MatchedElement{Role: m.role, Name: m.name}, nil
}

// pollRole repeats lookup until it returns at least one match or ctx is done.
// A deadline hit inside lookup counts as no match.
func pollRole(ctx context.Context, query entity.RoleQuery, lookup func() ([]axMatch, error)) ([]axMatch, error) {
	for {
		matches, err := lookup()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s: %w", entity.ErrElementNotFound, query, ctx.Err())
			}
			return nil, fmt.Errorf("role query %s: %w", query, err)
		}
		if len(matches) > 0 {
			return matches, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", entity.ErrElementNotFound, query, ctx.Err())
		case <-time.After(rolePollInterval):
		}
	}
}

func (p *PageAdapter) RegionHTML(ctx context.Context, selector string) (string, error) {
	if strings.TrimSpace(selector) == "" {
		return "", ErrInvalidSelector
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	el, err := p.page.Context(ctx).Element(selector)
	if err != nil {
		return "", fmt.Errorf("region not found: %s: %w", selector, err)
	}

	html, err := el.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}
	return html, nil
}

// Screenshot captures the visible viewport as PNG.
func (p *PageAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	imgBytes, err := p.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   imgBytes,
		Format: "png",
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

func (p *PageAdapter) CurrentURL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (p *PageAdapter) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.page.Close()
	})
	return p.closeErr
}

func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}
