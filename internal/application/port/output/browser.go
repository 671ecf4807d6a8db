package output

import (
	"context"

	"editor-verify/internal/domain/entity"
)

type BrowserLauncher interface {
	Launch(ctx context.Context) (BrowserPort, error)
}

type BrowserPort interface {
	NewPage(ctx context.Context) (PagePort, error)
	Close() error
}

type PagePort interface {
	Navigate(ctx context.Context, url string) error
	ClickByRole(ctx context.Context, query entity.RoleQuery) (*entity.MatchedElement, error)
	RegionHTML(ctx context.Context, selector string) (string, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	CurrentURL() string
	Close() error
}
