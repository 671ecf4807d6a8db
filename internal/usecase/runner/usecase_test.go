package runner

import (
	"context"
	"errors"
	"testing"

	"editor-verify/internal/application/port/output"
	"editor-verify/internal/domain/entity"
	"editor-verify/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakePage struct {
	closes   int
	closeErr error
}

func (p *fakePage) Navigate(ctx context.Context, url string) error { return nil }
func (p *fakePage) ClickByRole(ctx context.Context, q entity.RoleQuery) (*entity.MatchedElement, error) {
	return &entity.MatchedElement{Role: q.Role, Name: q.Name}, nil
}
func (p *fakePage) RegionHTML(ctx context.Context, selector string) (string, error) { return "", nil }
func (p *fakePage) Screenshot(ctx context.Context) (*entity.Screenshot, error)      { return nil, nil }
func (p *fakePage) CurrentURL() string                                              { return "http://localhost:5070/" }
func (p *fakePage) Close() error {
	p.closes++
	return p.closeErr
}

type fakeBrowser struct {
	page     *fakePage
	pageErr  error
	closes   int
	closeErr error
}

func (b *fakeBrowser) NewPage(ctx context.Context) (output.PagePort, error) {
	if b.pageErr != nil {
		return nil, b.pageErr
	}
	return b.page, nil
}

func (b *fakeBrowser) Close() error {
	b.closes++
	return b.closeErr
}

type fakeLauncher struct {
	browser  *fakeBrowser
	err      error
	launches int
}

func (l *fakeLauncher) Launch(ctx context.Context) (output.BrowserPort, error) {
	l.launches++
	if l.err != nil {
		return nil, l.err
	}
	return l.browser, nil
}

type verifyFunc func(ctx context.Context, page output.PagePort) (*entity.VerificationResult, error)

func (f verifyFunc) Verify(ctx context.Context, page output.PagePort) (*entity.VerificationResult, error) {
	return f(ctx, page)
}

func newFixture() (*fakeLauncher, *fakeBrowser, *fakePage) {
	page := &fakePage{}
	browser := &fakeBrowser{page: page}
	return &fakeLauncher{browser: browser}, browser, page
}

func TestRun_Success(t *testing.T) {
	launcher, browser, page := newFixture()
	var got output.PagePort
	verifier := verifyFunc(func(ctx context.Context, p output.PagePort) (*entity.VerificationResult, error) {
		got = p
		return &entity.VerificationResult{ScreenshotPath: "/tmp/editor.png"}, nil
	})

	result, err := New(launcher, verifier, logger.NewNop()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/editor.png", result.ScreenshotPath)
	assert.Same(t, page, got)
	assert.Equal(t, 1, launcher.launches)
	assert.Equal(t, 1, page.closes)
	assert.Equal(t, 1, browser.closes)
}

func TestRun_VerificationFailureReleasesBrowserOnce(t *testing.T) {
	launcher, browser, page := newFixture()
	verifier := verifyFunc(func(ctx context.Context, p output.PagePort) (*entity.VerificationResult, error) {
		return nil, errors.New("navigation failed: net::ERR_CONNECTION_REFUSED")
	})

	_, err := New(launcher, verifier, logger.NewNop()).Run(context.Background())
	assert.ErrorContains(t, err, "ERR_CONNECTION_REFUSED")
	assert.Equal(t, 1, page.closes)
	assert.Equal(t, 1, browser.closes)
}

func TestRun_PanicReleasesBrowserOnce(t *testing.T) {
	launcher, browser, page := newFixture()
	verifier := verifyFunc(func(ctx context.Context, p output.PagePort) (*entity.VerificationResult, error) {
		panic("boom")
	})

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = New(launcher, verifier, logger.NewNop()).Run(context.Background())
	})
	assert.Equal(t, 1, page.closes)
	assert.Equal(t, 1, browser.closes)
}

func TestRun_LaunchFailure(t *testing.T) {
	launchErr := errors.New("chromium not found")
	launcher := &fakeLauncher{err: launchErr}
	called := false
	verifier := verifyFunc(func(ctx context.Context, p output.PagePort) (*entity.VerificationResult, error) {
		called = true
		return nil, nil
	})

	_, err := New(launcher, verifier, logger.NewNop()).Run(context.Background())
	assert.ErrorIs(t, err, launchErr)
	assert.False(t, called)
}

func TestRun_PageFailureReleasesBrowser(t *testing.T) {
	launcher, browser, page := newFixture()
	browser.pageErr = entity.ErrBrowserClosed

	_, err := New(launcher, verifyFunc(nil), logger.NewNop()).Run(context.Background())
	assert.ErrorIs(t, err, entity.ErrBrowserClosed)
	assert.Equal(t, 0, page.closes)
	assert.Equal(t, 1, browser.closes)
}

func TestRun_CloseErrorsAreJoined(t *testing.T) {
	launcher, browser, page := newFixture()
	page.closeErr = errors.New("target closed")
	browser.closeErr = errors.New("process already exited")

	verifyErr := entity.ErrElementNotFound
	verifier := verifyFunc(func(ctx context.Context, p output.PagePort) (*entity.VerificationResult, error) {
		return nil, verifyErr
	})

	_, err := New(launcher, verifier, logger.NewNop()).Run(context.Background())
	assert.ErrorIs(t, err, verifyErr, "the verification error is never masked")
	assert.ErrorContains(t, err, "target closed")
	assert.ErrorContains(t, err, "process already exited")
	assert.Equal(t, 1, browser.closes)
}

func TestRun_CloseErrorFailsSuccessfulRun(t *testing.T) {
	launcher, browser, _ := newFixture()
	browser.closeErr = errors.New("kill failed")
	verifier := verifyFunc(func(ctx context.Context, p output.PagePort) (*entity.VerificationResult, error) {
		return &entity.VerificationResult{}, nil
	})

	result, err := New(launcher, verifier, logger.NewNop()).Run(context.Background())
	assert.NotNil(t, result)
	assert.ErrorContains(t, err, "close browser: kill failed")
}
